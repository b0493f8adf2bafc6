package storage

import (
	"context"
	"maps"
	"sync"

	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
)

type memoryFSMStorage struct {
	mu     sync.RWMutex
	states map[entity.StorageKey]string
	data   map[entity.StorageKey]map[string]any
}

// NewMemoryFSMStorage in-memory suhbat holati storage yaratish
func NewMemoryFSMStorage() repository.FSMStorage {
	return &memoryFSMStorage{
		states: make(map[entity.StorageKey]string),
		data:   make(map[entity.StorageKey]map[string]any),
	}
}

// SetState holatni saqlash; bo'sh holat o'chiradi
func (m *memoryFSMStorage) SetState(ctx context.Context, key entity.StorageKey, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key = normalizeKey(key)
	if state == "" {
		delete(m.states, key)
		return nil
	}
	m.states[key] = state
	return nil
}

// GetState holatni olish
func (m *memoryFSMStorage) GetState(ctx context.Context, key entity.StorageKey) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.states[normalizeKey(key)], nil
}

// SetData ma'lumotlarni to'liq almashtirish
func (m *memoryFSMStorage) SetData(ctx context.Context, key entity.StorageKey, data map[string]any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key = normalizeKey(key)
	if len(data) == 0 {
		delete(m.data, key)
		return nil
	}
	m.data[key] = maps.Clone(data)
	return nil
}

// GetData ma'lumotlar nusxasini olish
func (m *memoryFSMStorage) GetData(ctx context.Context, key entity.StorageKey) (map[string]any, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data := maps.Clone(m.data[normalizeKey(key)])
	if data == nil {
		data = make(map[string]any)
	}
	return data, nil
}

// Close hech narsa qilmaydi
func (m *memoryFSMStorage) Close() error {
	return nil
}

func normalizeKey(key entity.StorageKey) entity.StorageKey {
	if key.Destiny == "" {
		key.Destiny = entity.DefaultDestiny
	}
	return key
}
