package ports

import (
	"context"
	"store-locator-service/internal/domain"
)

// Persistent key-value capability backing the locator cache.
// Writes to a single key are atomic; concurrent writers are last-write-wins.
type KeyValueStore interface {
	// Get returns ok=false when the key does not exist.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Single-slot cache of the last nearest-store lookup.
// It never returns errors: failures degrade to a miss.
type LookupCache interface {
	Read(ctx context.Context) (domain.NearestStoreResult, bool)
	Write(ctx context.Context, result domain.NearestStoreResult)
	Clear(ctx context.Context)
}
