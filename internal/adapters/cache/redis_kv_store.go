package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisKVStore stores values as plain redis strings.
// A positive TTL is set on every write as a backstop; freshness is still
// decided by the reader.
type RedisKVStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisKVStore(client *redis.Client, ttl time.Duration) *RedisKVStore {
	return &RedisKVStore{Client: client, TTL: ttl}
}

func (s *RedisKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.Client == nil {
		return nil, false, errors.New("kv store: redis client is nil")
	}

	value, err := s.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get kv key=%q: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisKVStore) Set(ctx context.Context, key string, value []byte) error {
	if s.Client == nil {
		return errors.New("kv store: redis client is nil")
	}

	if err := s.Client.Set(ctx, key, value, s.TTL).Err(); err != nil {
		return fmt.Errorf("set kv key=%q: %w", key, err)
	}
	return nil
}

func (s *RedisKVStore) Delete(ctx context.Context, key string) error {
	if s.Client == nil {
		return errors.New("kv store: redis client is nil")
	}

	if err := s.Client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete kv key=%q: %w", key, err)
	}
	return nil
}
