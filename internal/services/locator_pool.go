package services

import (
	"store-locator-service/internal/ports"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMaxCallers bounds the pool when no size is configured.
const DefaultMaxCallers = 1024

// CallerDeps builds the per-caller collaborators of a Locator.
type CallerDeps func(callerID string) (ports.PositionSource, ports.LookupCache)

// LocatorPool keeps one Locator per caller so that coalescing, the generation
// counter and the single cache slot all apply per caller.
//
// When the pool is full the least recently used locator is evicted and retired:
// lookups still running on it end with domain.ErrSuperseded and never touch the
// caller's cache slot. The caller's next request gets a fresh locator.
type LocatorPool struct {
	directory ports.StoreDirectory
	deps      CallerDeps
	timeout   time.Duration

	// mu makes get-or-create atomic; the cache itself is already goroutine safe.
	mu       sync.Mutex
	locators *lru.Cache[string, *Locator]
}

func NewLocatorPool(directory ports.StoreDirectory, deps CallerDeps, timeout time.Duration, max int) *LocatorPool {
	if max <= 0 {
		max = DefaultMaxCallers
	}

	locators, err := lru.NewWithEvict[string, *Locator](max, func(_ string, l *Locator) {
		l.retire()
	})
	if err != nil {
		// Only reachable with a non-positive size, ruled out above.
		panic(err)
	}

	return &LocatorPool{
		directory: directory,
		deps:      deps,
		timeout:   timeout,
		locators:  locators,
	}
}

// Get returns the caller's Locator, creating it on first use.
func (p *LocatorPool) Get(callerID string) *Locator {
	p.mu.Lock()
	defer p.mu.Unlock()

	if l, ok := p.locators.Get(callerID); ok {
		return l
	}

	source, cache := p.deps(callerID)
	l := NewLocator(p.directory, NewPositionAcquirer(source, p.timeout), cache)
	p.locators.Add(callerID, l)
	return l
}

// Len reports the number of pooled locators.
func (p *LocatorPool) Len() int {
	return p.locators.Len()
}
