package services

import (
	"context"
	"errors"
	"store-locator-service/internal/adapters/position"
	"store-locator-service/internal/domain"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireReturnsPosition(t *testing.T) {
	src := position.NewFixedSource(downtownHouston)
	a := NewPositionAcquirer(src, time.Second)

	got, err := a.Acquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, downtownHouston, got)

	// Each call takes a fresh reading.
	_, err = a.Acquire(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, src.Calls())
}

func TestAcquireCoalescesConcurrentCalls(t *testing.T) {
	src := position.NewFixedSource(downtownHouston)
	src.Delay = 100 * time.Millisecond
	a := NewPositionAcquirer(src, time.Second)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]domain.GeoPosition, callers)
	errs := make([]error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = a.Acquire(context.Background())
		}(i)
	}
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, downtownHouston, results[i])
	}
	assert.EqualValues(t, 1, src.Calls())
}

func TestAcquireTimeout(t *testing.T) {
	src := position.NewFixedSource(downtownHouston)
	src.Delay = time.Second
	a := NewPositionAcquirer(src, 20*time.Millisecond)

	_, err := a.Acquire(context.Background())
	assert.ErrorIs(t, err, domain.ErrPositionTimeout)
}

func TestAcquireNoSource(t *testing.T) {
	_, err := NewPositionAcquirer(nil, time.Second).Acquire(context.Background())
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)

	var nilAcquirer *PositionAcquirer
	_, err = nilAcquirer.Acquire(context.Background())
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
}

func TestAcquireClassifiesSourceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"denied", domain.ErrPositionDenied, domain.ErrPositionDenied},
		{"unavailable", domain.ErrPositionUnavailable, domain.ErrPositionUnavailable},
		{"unknown", errors.New("gps exploded"), domain.ErrPositionUnavailable},
		{"deadline", context.DeadlineExceeded, domain.ErrPositionTimeout},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := position.NewFixedSource(downtownHouston)
			src.Err = tc.err

			_, err := NewPositionAcquirer(src, time.Second).Acquire(context.Background())
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestAcquireRejectsInvalidReading(t *testing.T) {
	src := position.NewFixedSource(domain.GeoPosition{Lat: 91, Lon: 0})

	_, err := NewPositionAcquirer(src, time.Second).Acquire(context.Background())
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
}

func TestAcquireCallerCancelDoesNotFailOthers(t *testing.T) {
	src := position.NewFixedSource(downtownHouston)
	src.Delay = 100 * time.Millisecond
	a := NewPositionAcquirer(src, time.Second)

	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	var otherPos domain.GeoPosition
	var otherErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		otherPos, otherErr = a.Acquire(context.Background())
	}()

	require.Eventually(t, func() bool { return src.Calls() == 1 }, time.Second, time.Millisecond)

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	_, err := a.Acquire(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	wg.Wait()
	require.NoError(t, otherErr)
	assert.Equal(t, downtownHouston, otherPos)
	assert.EqualValues(t, 1, src.Calls())
}
