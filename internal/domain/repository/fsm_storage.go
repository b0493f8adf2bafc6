package repository

import (
	"context"

	"github.com/yourusername/tgmock/internal/domain/entity"
)

// FSMStorage suhbat holati (state + data) uchun key-value storage.
// Bo'sh state "holat yo'q" degani.
type FSMStorage interface {
	SetState(ctx context.Context, key entity.StorageKey, state string) error
	GetState(ctx context.Context, key entity.StorageKey) (string, error)
	SetData(ctx context.Context, key entity.StorageKey, data map[string]any) error
	GetData(ctx context.Context, key entity.StorageKey) (map[string]any, error)
	Close() error
}
