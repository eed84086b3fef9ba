package services

import (
	"context"
	"store-locator-service/internal/adapters/cache"
	"store-locator-service/internal/adapters/position"
	"store-locator-service/internal/adapters/repositories"
	"store-locator-service/internal/domain"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type locatorFixture struct {
	source  *position.FixedSource
	kv      *cache.MemoryKVStore
	lookups *cache.LookupCache
	locator *Locator
}

func newLocatorFixture(stores ...domain.StoreLocation) *locatorFixture {
	f := &locatorFixture{
		source: position.NewFixedSource(downtownHouston),
		kv:     cache.NewMemoryKVStore(),
	}
	f.lookups = cache.NewLookupCache(f.kv, cache.DefaultLookupKey, domain.LookupTTL)
	f.locator = NewLocator(
		repositories.NewStaticDirectory(stores),
		NewPositionAcquirer(f.source, time.Second),
		f.lookups,
	)
	return f
}

func TestLocateAcquiresAndCaches(t *testing.T) {
	f := newLocatorFixture(miamiStore, houstonStore)
	ctx := context.Background()

	res, err := f.locator.Locate(ctx, LocateOptions{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, houstonStore.ID, res.Store.ID)
	assert.False(t, res.FromCache)
	assert.EqualValues(t, 1, f.source.Calls())

	cached, ok := f.lookups.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, houstonStore.ID, cached.Store.ID)

	current, ok := f.locator.Current()
	require.True(t, ok)
	assert.Equal(t, houstonStore.ID, current.Store.ID)
}

func TestLocateServesFreshCacheWithoutAcquiring(t *testing.T) {
	f := newLocatorFixture(miamiStore, houstonStore)
	ctx := context.Background()

	f.lookups.Write(ctx, domain.NearestStoreResult{Store: miamiStore, DistanceKm: 2.5})

	res, err := f.locator.Locate(ctx, LocateOptions{})
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, miamiStore.ID, res.Store.ID)
	assert.True(t, res.FromCache)
	assert.Equal(t, "2.5 km", res.FormattedDistance)
	assert.Zero(t, f.source.Calls())
}

func TestLocateRefreshBypassesCache(t *testing.T) {
	f := newLocatorFixture(miamiStore, houstonStore)
	ctx := context.Background()

	f.lookups.Write(ctx, domain.NearestStoreResult{Store: miamiStore, DistanceKm: 2.5})

	res, err := f.locator.Locate(ctx, LocateOptions{Refresh: true})
	require.NoError(t, err)
	assert.Equal(t, houstonStore.ID, res.Store.ID)
	assert.False(t, res.FromCache)
	assert.EqualValues(t, 1, f.source.Calls())

	cached, ok := f.lookups.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, houstonStore.ID, cached.Store.ID, "fresh result overwrites the slot")
}

func TestLocateSuppliedPosition(t *testing.T) {
	f := newLocatorFixture(miamiStore, houstonStore)
	ctx := context.Background()

	f.lookups.Write(ctx, domain.NearestStoreResult{Store: houstonStore, DistanceKm: 1})

	nearMiami := domain.GeoPosition{Lat: 25.77, Lon: -80.19}
	res, err := f.locator.Locate(ctx, LocateOptions{Position: &nearMiami})
	require.NoError(t, err)
	assert.Equal(t, miamiStore.ID, res.Store.ID)
	assert.False(t, res.FromCache)
	assert.Zero(t, f.source.Calls())

	cached, ok := f.lookups.Read(ctx)
	require.True(t, ok)
	assert.Equal(t, miamiStore.ID, cached.Store.ID)
}

func TestLocateEmptyDirectory(t *testing.T) {
	f := newLocatorFixture()

	res, err := f.locator.Locate(context.Background(), LocateOptions{})
	require.NoError(t, err)
	assert.Nil(t, res)

	_, ok := f.lookups.Read(context.Background())
	assert.False(t, ok, "nothing is cached without a result")
}

func TestLocateFailureClearsCurrent(t *testing.T) {
	f := newLocatorFixture(houstonStore)
	ctx := context.Background()

	_, err := f.locator.Locate(ctx, LocateOptions{})
	require.NoError(t, err)
	_, ok := f.locator.Current()
	require.True(t, ok)

	f.source.Err = domain.ErrPositionDenied
	_, err = f.locator.Locate(ctx, LocateOptions{Refresh: true})
	assert.ErrorIs(t, err, domain.ErrPositionDenied)

	_, ok = f.locator.Current()
	assert.False(t, ok)
}

func TestLocateCanceledKeepsCurrent(t *testing.T) {
	f := newLocatorFixture(houstonStore)

	_, err := f.locator.Locate(context.Background(), LocateOptions{})
	require.NoError(t, err)

	f.source.Delay = 100 * time.Millisecond
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err = f.locator.Locate(ctx, LocateOptions{Refresh: true})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	current, ok := f.locator.Current()
	require.True(t, ok)
	assert.Equal(t, houstonStore.ID, current.Store.ID)

	// Let the detached reading finish before leak checks.
	require.Eventually(t, func() bool {
		_, err := f.locator.acquirer.Acquire(context.Background())
		return err == nil
	}, time.Second, 10*time.Millisecond)
}

func TestLocateSupersededByNewerLookup(t *testing.T) {
	f := newLocatorFixture(miamiStore, houstonStore)
	f.source.Delay = 100 * time.Millisecond

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = f.locator.Locate(context.Background(), LocateOptions{Refresh: true})
	}()

	require.Eventually(t, func() bool { return f.source.Calls() == 1 }, time.Second, time.Millisecond)

	nearMiami := domain.GeoPosition{Lat: 25.77, Lon: -80.19}
	res, err := f.locator.Locate(context.Background(), LocateOptions{Position: &nearMiami})
	require.NoError(t, err)
	assert.Equal(t, miamiStore.ID, res.Store.ID)

	wg.Wait()
	assert.ErrorIs(t, slowErr, domain.ErrSuperseded)

	current, ok := f.locator.Current()
	require.True(t, ok)
	assert.Equal(t, miamiStore.ID, current.Store.ID, "stale lookup must not overwrite the newer result")

	cached, ok := f.lookups.Read(context.Background())
	require.True(t, ok)
	assert.Equal(t, miamiStore.ID, cached.Store.ID)
}

// gatedLookupCache blocks the first Write until release is closed.
type gatedLookupCache struct {
	*cache.LookupCache
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

func (g *gatedLookupCache) Write(ctx context.Context, result domain.NearestStoreResult) {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	g.LookupCache.Write(ctx, result)
}

func TestLocateCacheNeverOlderThanCurrent(t *testing.T) {
	kv := cache.NewMemoryKVStore()
	gated := &gatedLookupCache{
		LookupCache: cache.NewLookupCache(kv, cache.DefaultLookupKey, domain.LookupTTL),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	locator := NewLocator(
		repositories.NewStaticDirectory([]domain.StoreLocation{miamiStore, houstonStore}),
		NewPositionAcquirer(position.NewFixedSource(downtownHouston), time.Second),
		gated,
	)

	nearHouston := downtownHouston
	nearMiami := domain.GeoPosition{Lat: 25.77, Lon: -80.19}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = locator.Locate(context.Background(), LocateOptions{Position: &nearHouston})
	}()
	<-gated.entered

	go func() {
		defer wg.Done()
		_, _ = locator.Locate(context.Background(), LocateOptions{Position: &nearMiami})
	}()
	require.Eventually(t, func() bool { return locator.gen.Load() == 2 }, time.Second, time.Millisecond)
	// Give the newer lookup the chance to reach its commit.
	time.Sleep(20 * time.Millisecond)
	close(gated.release)
	wg.Wait()

	current, ok := locator.Current()
	require.True(t, ok)
	cached, ok := gated.Read(context.Background())
	require.True(t, ok)

	assert.Equal(t, miamiStore.ID, current.Store.ID)
	assert.Equal(t, current.Store.ID, cached.Store.ID)
}
