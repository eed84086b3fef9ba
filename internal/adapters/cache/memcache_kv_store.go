package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// MemcacheKVStore stores values in memcached.
// The memcache client has no context support; ctx is only checked before each call.
type MemcacheKVStore struct {
	Client *memcache.Client
	TTL    time.Duration
}

func NewMemcacheKVStore(client *memcache.Client, ttl time.Duration) *MemcacheKVStore {
	return &MemcacheKVStore{Client: client, TTL: ttl}
}

func (s *MemcacheKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	item, err := s.Client.Get(key)
	if errors.Is(err, memcache.ErrCacheMiss) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get kv key=%q: %w", key, err)
	}
	return item.Value, true, nil
}

func (s *MemcacheKVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	item := &memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(s.TTL / time.Second),
	}
	if err := s.Client.Set(item); err != nil {
		return fmt.Errorf("set kv key=%q: %w", key, err)
	}
	return nil
}

func (s *MemcacheKVStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	err := s.Client.Delete(key)
	if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
		return fmt.Errorf("delete kv key=%q: %w", key, err)
	}
	return nil
}
