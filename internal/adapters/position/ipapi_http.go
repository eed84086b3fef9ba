package position

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// Lookup responses are a handful of fields; anything larger is not ip-api.
const maxLookupBody = 64 << 10

// lookupStatusError is a non-2xx answer from the geolocation service.
type lookupStatusError struct {
	status int
	body   string
}

func (e *lookupStatusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("ip lookup returned %d", e.status)
	}
	return fmt.Sprintf("ip lookup returned %d: %s", e.status, e.body)
}

// fetch GETs endpoint and returns the response body. Network errors, 429 and
// 5xx answers are retried with doubling backoff until maxAttempts is reached.
// Each attempt waits on the rate limiter first.
func (c *IPAPIClient) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	delay := c.initialBackoff

	for attempt := 1; ; attempt++ {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limit wait: %w", err)
			}
		}

		body, err := c.fetchOnce(ctx, endpoint)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil || !transient(err) || attempt >= c.maxAttempts {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}

func (c *IPAPIClient) fetchOnce(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build ip lookup request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxLookupBody))
	if err != nil {
		return nil, fmt.Errorf("read ip lookup response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &lookupStatusError{status: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}
	return body, nil
}

func transient(err error) bool {
	var se *lookupStatusError
	if errors.As(err, &se) {
		return se.status == http.StatusTooManyRequests || se.status >= 500
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
