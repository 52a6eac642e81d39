package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Compile-time check that RedisStorage implements Backend.
var _ Backend = (*RedisStorage)(nil)

// RedisStorage implements Backend on top of plain Redis strings.
// Values are stored without expiry.
type RedisStorage struct {
	client *redis.Client
	prefix string
}

// NewRedisStorage parses redisURL, verifies connectivity and returns a
// backend whose keys are namespaced by prefix (may be empty).
func NewRedisStorage(ctx context.Context, redisURL, prefix string) (*RedisStorage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis.ParseURL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return NewRedisStorageFromClient(client, prefix), nil
}

// NewRedisStorageFromClient wraps an existing client.
func NewRedisStorageFromClient(client *redis.Client, prefix string) *RedisStorage {
	return &RedisStorage{client: client, prefix: prefix}
}

// Read returns the string stored under key.
func (s *RedisStorage) Read(ctx context.Context, key string) ([]byte, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

// Write sets key to data.
func (s *RedisStorage) Write(ctx context.Context, key string, data []byte) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	if err := s.client.Set(ctx, s.redisKey(key), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Remove deletes key. DEL on a missing key succeeds.
func (s *RedisStorage) Remove(ctx context.Context, key string) error {
	if err := checkContext(ctx); err != nil {
		return err
	}

	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}

func (s *RedisStorage) redisKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}
