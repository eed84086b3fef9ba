package position

import (
	"context"
	"net/http"
	"net/http/httptest"
	"store-locator-service/internal/domain"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*IPAPIClient, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := NewIPAPIClient(srv.URL+"/", 0, WithRetry(3, time.Millisecond))
	require.NoError(t, err)
	return c, &hits
}

func publicIP(ctx context.Context) context.Context {
	return WithClientIP(ctx, "8.8.8.8")
}

func TestIPAPIClientSuccess(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/json/8.8.8.8", r.URL.Path)
		assert.Equal(t, "status,message,lat,lon", r.URL.Query().Get("fields"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Write([]byte(`{"status":"success","lat":29.76,"lon":-95.36}`))
	})

	pos, err := c.CurrentPosition(publicIP(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, domain.GeoPosition{Lat: 29.76, Lon: -95.36}, pos)
	assert.EqualValues(t, 1, hits.Load())
}

func TestIPAPIClientSendsAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":"success","lat":1,"lon":2}`))
	}))
	t.Cleanup(srv.Close)

	c, err := NewIPAPIClient(srv.URL, 0, WithAPIKey("secret"), WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	_, err = c.CurrentPosition(publicIP(context.Background()))
	require.NoError(t, err)
}

func TestIPAPIClientDenied(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	})

	_, err := c.CurrentPosition(publicIP(context.Background()))
	assert.ErrorIs(t, err, domain.ErrPositionDenied)
	assert.EqualValues(t, 1, hits.Load(), "4xx is not retried")
}

func TestIPAPIClientNotFoundIsNotRetried(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such route", http.StatusNotFound)
	})

	_, err := c.CurrentPosition(publicIP(context.Background()))
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
	assert.NotErrorIs(t, err, domain.ErrPositionDenied)
	assert.Contains(t, err.Error(), "ip lookup returned 404: no such route")
	assert.EqualValues(t, 1, hits.Load())
}

func TestIPAPIClientRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int64
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, "busy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"status":"success","lat":25.76,"lon":-80.19}`))
	})

	pos, err := c.CurrentPosition(publicIP(context.Background()))
	require.NoError(t, err)
	assert.Equal(t, 25.76, pos.Lat)
	assert.EqualValues(t, 3, hits.Load())
}

func TestIPAPIClientGivesUpAfterMaxAttempts(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	_, err := c.CurrentPosition(publicIP(context.Background()))
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
	assert.EqualValues(t, 3, hits.Load())
}

func TestIPAPIClientLookupFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"fail","message":"reserved range"}`))
	})

	_, err := c.CurrentPosition(publicIP(context.Background()))
	assert.ErrorIs(t, err, domain.ErrPositionUnavailable)
	assert.Contains(t, err.Error(), "reserved range")
}

func TestIPAPIClientUnroutableCaller(t *testing.T) {
	c, hits := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	for _, ip := range []string{"", "not-an-ip", "127.0.0.1", "::1", "10.1.2.3", "192.168.1.10", "0.0.0.0", "169.254.1.1"} {
		ctx := context.Background()
		if ip != "" {
			ctx = WithClientIP(ctx, ip)
		}
		_, err := c.CurrentPosition(ctx)
		assert.ErrorIs(t, err, domain.ErrPositionUnavailable, "ip %q", ip)
	}
	assert.Zero(t, hits.Load())
}

func TestIPAPIClientTimeout(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(publicIP(context.Background()), 20*time.Millisecond)
	defer cancel()

	_, err := c.CurrentPosition(ctx)
	assert.ErrorIs(t, err, domain.ErrPositionTimeout)
}

func TestNewIPAPIClientRequiresBaseURL(t *testing.T) {
	_, err := NewIPAPIClient("  ", 45)
	assert.Error(t, err)

	c, err := NewIPAPIClient("http://ip-api.com", 45)
	require.NoError(t, err)
	assert.NotNil(t, c.limiter)
}
