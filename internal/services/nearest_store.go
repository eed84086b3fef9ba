package services

import (
	"math"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/geo"
)

// FindNearest selects the store closest to position by great-circle distance.
//
// It is a single linear scan; at tens to hundreds of stores no spatial index is needed.
// Ties keep the first store in input order so the result is deterministic.
// An empty directory yields ok=false rather than an error.
func FindNearest(stores []domain.StoreLocation, position domain.GeoPosition) (_ domain.NearestStoreResult, ok bool) {
	if len(stores) == 0 {
		return domain.NearestStoreResult{}, false
	}

	bestIdx := -1
	minDistance := math.Inf(1)

	for i, s := range stores {
		d := geo.DistanceKm(position, s.Position)
		// Strict comparison: a later store never displaces an equally distant earlier one.
		if d < minDistance {
			minDistance = d
			bestIdx = i
		}
	}

	if bestIdx < 0 {
		return domain.NearestStoreResult{}, false
	}

	return domain.NearestStoreResult{
		Store:             stores[bestIdx],
		DistanceKm:        minDistance,
		FormattedDistance: geo.FormatDistance(minDistance),
	}, true
}
