package cache

import (
	"context"
	"errors"
	"fmt"

	"er-finder/internal/service"

	"github.com/redis/go-redis/v9"
)

// redisKVStore backs service.KVStore with Redis.
type redisKVStore struct {
	client *redis.Client
}

func NewRedisKVStore(client *redis.Client) service.KVStore {
	return &redisKVStore{client: client}
}

func (s *redisKVStore) Get(ctx context.Context, key string) (string, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", service.ErrKeyNotFound
		}
		return "", fmt.Errorf("kv get %q: %w", key, err)
	}
	return value, nil
}

func (s *redisKVStore) Set(ctx context.Context, key, value string) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("kv set %q: %w", key, err)
	}
	return nil
}
