package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBlobRepository хранит blob под обычным строковым ключом Redis
type RedisBlobRepository struct {
	client *redis.Client
}

func NewRedisBlobRepository(client *redis.Client) *RedisBlobRepository {
	return &RedisBlobRepository{client: client}
}

// Get получает значение по ключу, nil если ключа нет
func (r *RedisBlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get blob %q: %w", key, err)
	}
	return data, nil
}

// Put перезаписывает значение без TTL
func (r *RedisBlobRepository) Put(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return fmt.Errorf("put blob %q: %w", key, err)
	}
	return nil
}
