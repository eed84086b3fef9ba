package domain

import "time"

// LookupTTL is the freshness window of a cached nearest-store lookup.
const LookupTTL = 24 * time.Hour

// Result of a nearest-store computation.
// FromCache is transport metadata and is never persisted.
type NearestStoreResult struct {
	Store             StoreLocation
	DistanceKm        float64
	FormattedDistance string
	FromCache         bool
}

// A previously computed result paired with the time it was computed.
type CachedLookup struct {
	Result    NearestStoreResult
	Timestamp time.Time
}

// Stale reports whether the entry has reached the freshness window at now.
func (c CachedLookup) Stale(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.Timestamp) >= ttl
}
