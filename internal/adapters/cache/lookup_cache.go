package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/geo"
	"store-locator-service/internal/ports"
	"time"

	"go.uber.org/zap"
)

// DefaultLookupKey is the fixed slot the locator cache lives in.
const DefaultLookupKey = "nearestStore"

var errCorruptLookup = errors.New("corrupt cached lookup")

// LookupCache persists the last nearest-store lookup in a single key-value slot.
//
// State machine: empty -> cached(result, timestamp) on Write; cached -> empty when
// a read finds the entry stale (age >= TTL) or unparseable. Errors from the
// underlying store are logged and degrade to a miss; they never reach the caller.
type LookupCache struct {
	store ports.KeyValueStore
	key   string
	ttl   time.Duration
	now   func() time.Time
}

func NewLookupCache(store ports.KeyValueStore, key string, ttl time.Duration) *LookupCache {
	if key == "" {
		key = DefaultLookupKey
	}
	if ttl <= 0 {
		ttl = domain.LookupTTL
	}
	return &LookupCache{store: store, key: key, ttl: ttl, now: time.Now}
}

// WithClock overrides the time source; used by tests.
func (c *LookupCache) WithClock(now func() time.Time) *LookupCache {
	c.now = now
	return c
}

// Key returns the slot this cache reads and writes.
func (c *LookupCache) Key() string { return c.key }

// lookupRecord is the persisted shape: {store, distanceKm, timestampMillis}.
// Pointers distinguish missing fields from zero values.
type lookupRecord struct {
	Store           *domain.StoreLocation `json:"store"`
	DistanceKm      *float64              `json:"distanceKm"`
	TimestampMillis *int64                `json:"timestampMillis"`
}

func (c *LookupCache) Read(ctx context.Context) (domain.NearestStoreResult, bool) {
	raw, ok, err := c.store.Get(ctx, c.key)
	if err != nil {
		zap.L().Warn("lookup cache read failed", zap.String("key", c.key), zap.Error(err))
		return domain.NearestStoreResult{}, false
	}
	if !ok {
		return domain.NearestStoreResult{}, false
	}

	entry, err := decodeLookup(raw)
	if err != nil {
		zap.L().Warn("discarding corrupt lookup cache entry", zap.String("key", c.key), zap.Error(err))
		c.Clear(ctx)
		return domain.NearestStoreResult{}, false
	}

	now := c.now()
	if entry.Timestamp.After(now) {
		zap.L().Warn("discarding lookup cache entry from the future", zap.String("key", c.key))
		c.Clear(ctx)
		return domain.NearestStoreResult{}, false
	}
	if entry.Stale(now, c.ttl) {
		c.Clear(ctx)
		return domain.NearestStoreResult{}, false
	}

	return entry.Result, true
}

func (c *LookupCache) Write(ctx context.Context, result domain.NearestStoreResult) {
	raw, err := encodeLookup(domain.CachedLookup{Result: result, Timestamp: c.now()})
	if err != nil {
		zap.L().Warn("lookup cache encode failed", zap.Error(err))
		return
	}

	if err := c.store.Set(ctx, c.key, raw); err != nil {
		zap.L().Warn("lookup cache write failed", zap.String("key", c.key), zap.Error(err))
	}
}

func (c *LookupCache) Clear(ctx context.Context) {
	if err := c.store.Delete(ctx, c.key); err != nil {
		zap.L().Warn("lookup cache delete failed", zap.String("key", c.key), zap.Error(err))
	}
}

func encodeLookup(entry domain.CachedLookup) ([]byte, error) {
	store := entry.Result.Store
	distance := entry.Result.DistanceKm
	ts := entry.Timestamp.UnixMilli()

	b, err := json.Marshal(lookupRecord{
		Store:           &store,
		DistanceKm:      &distance,
		TimestampMillis: &ts,
	})
	if err != nil {
		return nil, fmt.Errorf("encode lookup: %w", err)
	}
	return b, nil
}

func decodeLookup(raw []byte) (domain.CachedLookup, error) {
	var rec lookupRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.CachedLookup{}, fmt.Errorf("%w: %v", errCorruptLookup, err)
	}

	switch {
	case rec.Store == nil:
		return domain.CachedLookup{}, fmt.Errorf("%w: missing store", errCorruptLookup)
	case rec.DistanceKm == nil:
		return domain.CachedLookup{}, fmt.Errorf("%w: missing distanceKm", errCorruptLookup)
	case rec.TimestampMillis == nil:
		return domain.CachedLookup{}, fmt.Errorf("%w: missing timestampMillis", errCorruptLookup)
	case rec.Store.ID <= 0 || rec.Store.Name == "":
		return domain.CachedLookup{}, fmt.Errorf("%w: store without id or name", errCorruptLookup)
	}

	d := *rec.DistanceKm
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return domain.CachedLookup{}, fmt.Errorf("%w: invalid distanceKm %v", errCorruptLookup, d)
	}
	if err := rec.Store.Position.Validate(); err != nil {
		return domain.CachedLookup{}, fmt.Errorf("%w: store position: %v", errCorruptLookup, err)
	}

	return domain.CachedLookup{
		Result: domain.NearestStoreResult{
			Store:             *rec.Store,
			DistanceKm:        d,
			FormattedDistance: geo.FormatDistance(d),
		},
		Timestamp: time.UnixMilli(*rec.TimestampMillis),
	}, nil
}
