package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/yourusername/tgmock/internal/domain/entity"
	"github.com/yourusername/tgmock/internal/domain/repository"
)

// DefaultRedisPrefix Redis kalitlari uchun standart prefiks
const DefaultRedisPrefix = "tgmock:fsm"

type redisFSMStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisFSMStorage Redis asosidagi suhbat holati storage yaratish.
// Data JSON ko'rinishida saqlanadi, shuning uchun sonlar float64 bo'lib qaytadi.
func NewRedisFSMStorage(client *redis.Client, prefix string) repository.FSMStorage {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &redisFSMStorage{client: client, prefix: prefix}
}

// SetState holatni saqlash; bo'sh holat kalitni o'chiradi
func (r *redisFSMStorage) SetState(ctx context.Context, key entity.StorageKey, state string) error {
	redisKey := r.key("state", key)
	if state == "" {
		if err := r.client.Del(ctx, redisKey).Err(); err != nil {
			return fmt.Errorf("failed to delete state %s: %w", redisKey, err)
		}
		return nil
	}
	if err := r.client.Set(ctx, redisKey, state, 0).Err(); err != nil {
		return fmt.Errorf("failed to set state %s: %w", redisKey, err)
	}
	return nil
}

// GetState holatni olish
func (r *redisFSMStorage) GetState(ctx context.Context, key entity.StorageKey) (string, error) {
	redisKey := r.key("state", key)
	state, err := r.client.Get(ctx, redisKey).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get state %s: %w", redisKey, err)
	}
	return state, nil
}

// SetData ma'lumotlarni JSON qilib saqlash
func (r *redisFSMStorage) SetData(ctx context.Context, key entity.StorageKey, data map[string]any) error {
	redisKey := r.key("data", key)
	if len(data) == 0 {
		if err := r.client.Del(ctx, redisKey).Err(); err != nil {
			return fmt.Errorf("failed to delete data %s: %w", redisKey, err)
		}
		return nil
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data for %s: %w", redisKey, err)
	}
	if err := r.client.Set(ctx, redisKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to set data %s: %w", redisKey, err)
	}
	return nil
}

// GetData ma'lumotlarni olish
func (r *redisFSMStorage) GetData(ctx context.Context, key entity.StorageKey) (map[string]any, error) {
	redisKey := r.key("data", key)
	payload, err := r.client.Get(ctx, redisKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return make(map[string]any), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get data %s: %w", redisKey, err)
	}

	data := make(map[string]any)
	if err := json.Unmarshal(payload, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal data %s: %w", redisKey, err)
	}
	return data, nil
}

// Close Redis klientini yopish
func (r *redisFSMStorage) Close() error {
	return r.client.Close()
}

func (r *redisFSMStorage) key(part string, key entity.StorageKey) string {
	return r.prefix + ":" + part + ":" + key.String()
}
