package services

import (
	"context"
	"errors"
	"fmt"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/platform/obs"
	"store-locator-service/internal/ports"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultPositionTimeout bounds a single acquisition.
const DefaultPositionTimeout = 5 * time.Second

// PositionAcquirer turns a PositionSource into a bounded, coalescing suspending call.
//
// At most one acquisition is in flight per acquirer. Callers arriving while one
// is pending share its result instead of issuing a second platform request.
// Each acquisition takes a fresh reading; nothing is reused across calls.
//
// The in-flight request runs detached from any single caller so that one
// caller giving up does not fail the others; it is still bounded by the timeout.
type PositionAcquirer struct {
	source  ports.PositionSource
	timeout time.Duration
	group   singleflight.Group
}

func NewPositionAcquirer(source ports.PositionSource, timeout time.Duration) *PositionAcquirer {
	if timeout <= 0 {
		timeout = DefaultPositionTimeout
	}
	return &PositionAcquirer{source: source, timeout: timeout}
}

// Acquire resolves to the caller's current position or one of
// domain.ErrPositionUnavailable, domain.ErrPositionDenied, domain.ErrPositionTimeout.
// If ctx is canceled first, Acquire returns ctx.Err() and the pending reading is
// discarded for this caller.
func (a *PositionAcquirer) Acquire(ctx context.Context) (_ domain.GeoPosition, err error) {
	defer obs.Time(ctx, "position.Acquire")(&err)

	if a == nil || a.source == nil {
		return domain.GeoPosition{}, domain.ErrPositionUnavailable
	}

	ch := a.group.DoChan("position", func() (any, error) {
		acqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.timeout)
		defer cancel()

		pos, err := a.source.CurrentPosition(acqCtx)
		if err != nil {
			return nil, classifyPositionError(acqCtx, err)
		}
		if err := pos.Validate(); err != nil {
			return nil, fmt.Errorf("%w: source returned invalid position: %v", domain.ErrPositionUnavailable, err)
		}
		return pos, nil
	})

	select {
	case <-ctx.Done():
		return domain.GeoPosition{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.GeoPosition{}, res.Err
		}
		return res.Val.(domain.GeoPosition), nil
	}
}

// classifyPositionError maps source failures onto the three acquisition error kinds.
func classifyPositionError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrPositionUnavailable),
		errors.Is(err, domain.ErrPositionDenied),
		errors.Is(err, domain.ErrPositionTimeout):
		return err
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrPositionTimeout, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrPositionUnavailable, err)
	}
}
