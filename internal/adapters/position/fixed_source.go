package position

import (
	"context"
	"store-locator-service/internal/domain"
	"sync/atomic"
	"time"
)

// FixedSource reports a preset position (or error) after an optional delay.
// It stands in for a device-provided reading in the CLI and in tests.
type FixedSource struct {
	Position domain.GeoPosition
	Err      error
	Delay    time.Duration

	calls atomic.Int64
}

func NewFixedSource(pos domain.GeoPosition) *FixedSource {
	return &FixedSource{Position: pos}
}

func (s *FixedSource) CurrentPosition(ctx context.Context) (domain.GeoPosition, error) {
	s.calls.Add(1)

	if s.Delay > 0 {
		timer := time.NewTimer(s.Delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return domain.GeoPosition{}, ctx.Err()
		case <-timer.C:
		}
	}

	if s.Err != nil {
		return domain.GeoPosition{}, s.Err
	}
	return s.Position, nil
}

// Calls reports how many readings were requested.
func (s *FixedSource) Calls() int64 { return s.calls.Load() }
