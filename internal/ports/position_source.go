package ports

import (
	"context"
	"store-locator-service/internal/domain"
)

// Contract for the host platform's location capability.
// Implementations always take a fresh reading and must honor ctx cancellation.
// Failures are reported as domain.ErrPositionUnavailable, domain.ErrPositionDenied
// or domain.ErrPositionTimeout (optionally wrapped).
type PositionSource interface {
	CurrentPosition(ctx context.Context) (domain.GeoPosition, error)
}
