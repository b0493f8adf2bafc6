package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"

	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
)

type pebbleFSMStorage struct {
	db *pebble.DB
}

// NewPebbleFSMStorage Pebble asosidagi suhbat holati storage yaratish.
// dir bo'sh bo'lsa ma'lumotlar faqat xotirada (vfs.NewMem) turadi.
func NewPebbleFSMStorage(dir string) (repository.FSMStorage, error) {
	opts := &pebble.Options{}
	if dir == "" {
		opts.FS = vfs.NewMem()
	}

	db, err := pebble.Open(dir, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open pebble at %q: %w", dir, err)
	}
	return &pebbleFSMStorage{db: db}, nil
}

// SetState holatni saqlash; bo'sh holat kalitni o'chiradi
func (p *pebbleFSMStorage) SetState(ctx context.Context, key entity.StorageKey, state string) error {
	k := pebbleKey("state", key)
	if state == "" {
		return p.delete(k)
	}
	if err := p.db.Set(k, []byte(state), pebble.Sync); err != nil {
		return fmt.Errorf("failed to set state %s: %w", k, err)
	}
	return nil
}

// GetState holatni olish
func (p *pebbleFSMStorage) GetState(ctx context.Context, key entity.StorageKey) (string, error) {
	value, err := p.get(pebbleKey("state", key))
	if err != nil || value == nil {
		return "", err
	}
	return string(value), nil
}

// SetData ma'lumotlarni JSON qilib saqlash
func (p *pebbleFSMStorage) SetData(ctx context.Context, key entity.StorageKey, data map[string]any) error {
	k := pebbleKey("data", key)
	if len(data) == 0 {
		return p.delete(k)
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data for %s: %w", k, err)
	}
	if err := p.db.Set(k, payload, pebble.Sync); err != nil {
		return fmt.Errorf("failed to set data %s: %w", k, err)
	}
	return nil
}

// GetData ma'lumotlarni olish
func (p *pebbleFSMStorage) GetData(ctx context.Context, key entity.StorageKey) (map[string]any, error) {
	k := pebbleKey("data", key)
	payload, err := p.get(k)
	if err != nil {
		return nil, err
	}

	data := make(map[string]any)
	if payload == nil {
		return data, nil
	}
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data %s: %w", k, err)
	}
	return data, nil
}

// Close bazani yopish
func (p *pebbleFSMStorage) Close() error {
	return p.db.Close()
}

// get qiymat nusxasini olish; kalit yo'q bo'lsa nil
func (p *pebbleFSMStorage) get(k []byte) ([]byte, error) {
	value, closer, err := p.db.Get(k)
	if errors.Is(err, pebble.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", k, err)
	}
	defer closer.Close()

	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

func (p *pebbleFSMStorage) delete(k []byte) error {
	if err := p.db.Delete(k, pebble.Sync); err != nil {
		return fmt.Errorf("failed to delete %s: %w", k, err)
	}
	return nil
}

func pebbleKey(part string, key entity.StorageKey) []byte {
	return []byte(part + ":" + key.String())
}
