package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists records in a hosted Redis keyspace.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps a connected Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(owner, entityType, id string) string {
	return fmt.Sprintf("%s:%s:%s", entityType, owner, id)
}

// Get retrieves a single record payload.
func (s *RedisStore) Get(ctx context.Context, owner, entityType, id string) ([]byte, error) {
	value, err := s.client.Get(ctx, redisKey(owner, entityType, id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

// Put writes a record payload, overwriting any previous value.
func (s *RedisStore) Put(ctx context.Context, owner, entityType, id string, value []byte) error {
	if err := s.client.Set(ctx, redisKey(owner, entityType, id), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes a record. Deleting a missing record reports ErrNotFound.
func (s *RedisStore) Delete(ctx context.Context, owner, entityType, id string) error {
	removed, err := s.client.Del(ctx, redisKey(owner, entityType, id)).Result()
	if err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns every record payload for the owner's entity collection.
func (s *RedisStore) List(ctx context.Context, owner, entityType string) ([][]byte, error) {
	pattern := fmt.Sprintf("%s:%s:*", entityType, owner)

	var keys []string
	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}

	if len(keys) == 0 {
		return nil, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("redis mget: %w", err)
	}

	payloads := make([][]byte, 0, len(values))
	for _, value := range values {
		// A key may expire between SCAN and MGET.
		if value == nil {
			continue
		}
		if text, ok := value.(string); ok {
			payloads = append(payloads, []byte(text))
		}
	}

	return payloads, nil
}
