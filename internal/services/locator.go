package services

import (
	"context"
	"errors"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/platform/obs"
	"store-locator-service/internal/ports"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// LocateOptions controls a single lookup.
type LocateOptions struct {
	// Position supplied by the caller (e.g. typed or device-provided).
	// When set, no acquisition happens and the cache is not consulted, but the
	// fresh result is still written back.
	Position *domain.GeoPosition
	// Refresh skips the cache read and forces a fresh acquisition.
	Refresh bool
}

// Locator runs the nearest-store flow for one caller:
// cache read -> position acquisition -> nearest selection -> cache write.
//
// Every Locate call takes a new generation number. A lookup that finishes after
// a newer one has started is discarded with domain.ErrSuperseded, so a slow
// acquisition can never overwrite a newer result.
type Locator struct {
	directory ports.StoreDirectory
	acquirer  *PositionAcquirer
	cache     ports.LookupCache

	gen atomic.Uint64

	mu      sync.Mutex
	current *domain.NearestStoreResult
}

func NewLocator(directory ports.StoreDirectory, acquirer *PositionAcquirer, cache ports.LookupCache) *Locator {
	return &Locator{
		directory: directory,
		acquirer:  acquirer,
		cache:     cache,
	}
}

// Locate returns the nearest store, or (nil, nil) when the directory is empty.
// Only position acquisition failures and domain.ErrSuperseded are returned as errors.
func (l *Locator) Locate(ctx context.Context, opts LocateOptions) (_ *domain.NearestStoreResult, err error) {
	defer obs.Time(ctx, "locator.Locate")(&err)

	gen := l.gen.Add(1)

	var position domain.GeoPosition
	switch {
	case opts.Position != nil:
		position = *opts.Position

	default:
		// Cache must be consulted before asking the platform for a position.
		if !opts.Refresh && l.cache != nil {
			if cached, ok := l.cache.Read(ctx); ok {
				cached.FromCache = true
				if !l.apply(gen, &cached) {
					return nil, domain.ErrSuperseded
				}
				return &cached, nil
			}
		}

		position, err = l.acquirer.Acquire(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// Abandoned by the caller: drop silently, keep current state.
				return nil, err
			}
			// A failed lookup clears the current result, unless a newer lookup owns it.
			l.apply(gen, nil)
			return nil, err
		}
	}

	if l.gen.Load() != gen {
		return nil, domain.ErrSuperseded
	}

	result, ok := FindNearest(l.directory.Stores(), position)
	if !ok {
		l.apply(gen, nil)
		return nil, nil
	}

	if !l.commit(ctx, gen, result) {
		return nil, domain.ErrSuperseded
	}

	zap.L().Debug("nearest store located",
		zap.Int("store_id", result.Store.ID),
		zap.Float64("distance_km", result.DistanceKm),
	)

	return &result, nil
}

// Current returns the result of the most recent lookup that was applied.
func (l *Locator) Current() (domain.NearestStoreResult, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return domain.NearestStoreResult{}, false
	}
	return *l.current, true
}

// commit records result as current and writes it to the cache, both under mu,
// if gen is still the newest generation. A newer lookup cannot commit in between,
// so the cache slot never holds an older result than Current.
func (l *Locator) commit(ctx context.Context, gen uint64, result domain.NearestStoreResult) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.gen.Load() != gen {
		return false
	}
	r := result
	l.current = &r

	if l.cache != nil {
		l.cache.Write(ctx, result)
	}
	return true
}

// retire invalidates every lookup in flight on l.
func (l *Locator) retire() {
	l.gen.Add(1)
}

// apply records result as current if gen is still the newest generation.
func (l *Locator) apply(gen uint64, result *domain.NearestStoreResult) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.gen.Load() != gen {
		return false
	}
	if result == nil {
		l.current = nil
		return true
	}
	r := *result
	l.current = &r
	return true
}
