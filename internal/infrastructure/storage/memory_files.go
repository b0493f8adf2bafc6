package storage

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yourusername/tgmock/internal/domain/entity"
)

// memoryFiles kontent -> content id va foydalanuvchi bo'yicha local id <-> content id jadvallari
type memoryFiles struct {
	contentIDs   map[string]string
	contentSizes map[string]int
	localByUser  map[int64]map[string]string // user -> content id -> local id
	contentByID  map[int64]map[string]string // user -> local id -> content id
}

func newMemoryFiles() memoryFiles {
	return memoryFiles{
		contentIDs:   make(map[string]string),
		contentSizes: make(map[string]int),
		localByUser:  make(map[int64]map[string]string),
		contentByID:  make(map[int64]map[string]string),
	}
}

// ResolveOrCreateFile kontent yoki local id bo'yicha fayl yozuvini olish/yaratish
func (f *memoryFiles) ResolveOrCreateFile(userID int64, input entity.FileInput) (entity.FileRecord, error) {
	if !input.IsBytes() {
		contentID, ok := f.contentByID[userID][input.LocalID]
		if !ok {
			return entity.FileRecord{}, fmt.Errorf("file %q was never issued to user %d: %w", input.LocalID, userID, entity.ErrNotFound)
		}
		return entity.FileRecord{
			LocalID:   input.LocalID,
			ContentID: contentID,
			Size:      f.contentSizes[contentID],
		}, nil
	}

	contentID := f.contentID(input.Bytes)
	return entity.FileRecord{
		LocalID:   f.localID(userID, contentID),
		ContentID: contentID,
		Name:      input.Name,
		Size:      len(input.Bytes),
	}, nil
}

// contentID bir xil baytlar uchun bir xil id (birinchi yozgan yutadi)
func (f *memoryFiles) contentID(content []byte) string {
	key := string(content)
	if id, ok := f.contentIDs[key]; ok {
		return id
	}

	id := uuid.New().String()
	f.contentIDs[key] = id
	f.contentSizes[id] = len(content)
	return id
}

// localID foydalanuvchi uchun content id ga mos local id
func (f *memoryFiles) localID(userID int64, contentID string) string {
	byContent, ok := f.localByUser[userID]
	if !ok {
		byContent = make(map[string]string)
		f.localByUser[userID] = byContent
		f.contentByID[userID] = make(map[string]string)
	}
	if id, ok := byContent[contentID]; ok {
		return id
	}

	id := fmt.Sprintf("%d-%s", userID, uuid.New().String())
	byContent[contentID] = id
	f.contentByID[userID][id] = contentID
	return id
}
