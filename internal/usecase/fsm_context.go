package usecase

import (
	"context"
	"fmt"
	"maps"

	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
)

// FSMContext bitta kalit bo'yicha suhbat holati
type FSMContext struct {
	storage repository.FSMStorage
	key     entity.StorageKey
}

// NewFSMContext storage va kalitdan kontekst yaratish
func NewFSMContext(storage repository.FSMStorage, key entity.StorageKey) *FSMContext {
	if key.Destiny == "" {
		key.Destiny = entity.DefaultDestiny
	}
	return &FSMContext{storage: storage, key: key}
}

// Key kontekst kaliti
func (f *FSMContext) Key() entity.StorageKey {
	return f.key
}

// State joriy holat ("" - holat yo'q)
func (f *FSMContext) State(ctx context.Context) (string, error) {
	state, err := f.storage.GetState(ctx, f.key)
	if err != nil {
		return "", fmt.Errorf("failed to get state for %s: %w", f.key, err)
	}
	return state, nil
}

// SetState holatni o'rnatish
func (f *FSMContext) SetState(ctx context.Context, state string) error {
	if err := f.storage.SetState(ctx, f.key, state); err != nil {
		return fmt.Errorf("failed to set state for %s: %w", f.key, err)
	}
	return nil
}

// Data saqlangan ma'lumotlar
func (f *FSMContext) Data(ctx context.Context) (map[string]any, error) {
	data, err := f.storage.GetData(ctx, f.key)
	if err != nil {
		return nil, fmt.Errorf("failed to get data for %s: %w", f.key, err)
	}
	return data, nil
}

// SetData ma'lumotlarni to'liq almashtirish
func (f *FSMContext) SetData(ctx context.Context, data map[string]any) error {
	if err := f.storage.SetData(ctx, f.key, data); err != nil {
		return fmt.Errorf("failed to set data for %s: %w", f.key, err)
	}
	return nil
}

// UpdateData mavjud ma'lumotlarga patch qo'shish va natijani qaytarish
func (f *FSMContext) UpdateData(ctx context.Context, patch map[string]any) (map[string]any, error) {
	data, err := f.Data(ctx)
	if err != nil {
		return nil, err
	}
	if data == nil {
		data = make(map[string]any, len(patch))
	}
	maps.Copy(data, patch)

	if err := f.SetData(ctx, data); err != nil {
		return nil, err
	}
	return data, nil
}

// Clear holat va ma'lumotlarni tozalash
func (f *FSMContext) Clear(ctx context.Context) error {
	if err := f.SetState(ctx, ""); err != nil {
		return err
	}
	return f.SetData(ctx, nil)
}
