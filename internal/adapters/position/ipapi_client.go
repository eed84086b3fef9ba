package position

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"net/url"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/platform/obs"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

type clientIPKey struct{}

// WithClientIP attaches the caller's IP address to ctx for IPAPIClient.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, clientIPKey{}, ip)
}

// ClientIPFromContext returns the IP attached by WithClientIP.
func ClientIPFromContext(ctx context.Context) (string, bool) {
	ip, ok := ctx.Value(clientIPKey{}).(string)
	return ip, ok && ip != ""
}

type ipLookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// IPAPIClient implements PositionSource by geolocating the caller's IP address
// with an ip-api compatible service (GET {base}/json/{ip}).
//
// The caller IP is read from the context (see WithClientIP). Loopback, private
// and unparseable addresses have no location and report ErrPositionUnavailable.
// The client is safe for concurrent use.
type IPAPIClient struct {
	session        *http.Client
	baseURL        string
	apiKey         string
	limiter        *rate.Limiter
	maxAttempts    int
	initialBackoff time.Duration
}

type Option func(*IPAPIClient)

// WithAPIKey sends key in the Authorization header.
func WithAPIKey(key string) Option {
	return func(c *IPAPIClient) { c.apiKey = key }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *IPAPIClient) { c.session = h }
}

// WithRetry overrides attempt count and first backoff delay.
func WithRetry(maxAttempts int, initialBackoff time.Duration) Option {
	return func(c *IPAPIClient) {
		if maxAttempts > 0 {
			c.maxAttempts = maxAttempts
		}
		c.initialBackoff = initialBackoff
	}
}

// NewIPAPIClient builds a client limited to ratePerMinute outbound lookups
// (0 disables the limiter).
func NewIPAPIClient(baseURL string, ratePerMinute int, opts ...Option) (*IPAPIClient, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("ip geolocation base url is empty")
	}

	c := &IPAPIClient{
		session:        &http.Client{Timeout: 10 * time.Second},
		baseURL:        baseURL,
		maxAttempts:    4,
		initialBackoff: 200 * time.Millisecond,
	}
	if ratePerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMinute)), 1)
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

func (c *IPAPIClient) CurrentPosition(ctx context.Context) (_ domain.GeoPosition, err error) {
	defer obs.Time(ctx, "ipapi.CurrentPosition")(&err)

	ip, ok := ClientIPFromContext(ctx)
	if !ok {
		return domain.GeoPosition{}, fmt.Errorf("%w: caller ip unknown", domain.ErrPositionUnavailable)
	}

	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return domain.GeoPosition{}, fmt.Errorf("%w: invalid caller ip %q", domain.ErrPositionUnavailable, ip)
	}
	if addr.IsLoopback() || addr.IsPrivate() || addr.IsUnspecified() || addr.IsLinkLocalUnicast() {
		return domain.GeoPosition{}, fmt.Errorf("%w: caller ip %s is not routable", domain.ErrPositionUnavailable, ip)
	}

	endpoint := c.baseURL + "/json/" + addr.String() + "?fields=" + url.QueryEscape("status,message,lat,lon")

	body, err := c.fetch(ctx, endpoint)
	if err != nil {
		return domain.GeoPosition{}, classify(ctx, err)
	}

	var decoded ipLookupResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return domain.GeoPosition{}, fmt.Errorf("%w: decode ip lookup response: %v", domain.ErrPositionUnavailable, err)
	}

	if decoded.Status != "success" {
		return domain.GeoPosition{}, fmt.Errorf("%w: ip lookup failed: %s", domain.ErrPositionUnavailable, decoded.Message)
	}

	return domain.GeoPosition{Lat: decoded.Lat, Lon: decoded.Lon}, nil
}

// classify maps transport failures onto the position error kinds.
func classify(ctx context.Context, err error) error {
	var se *lookupStatusError
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded):
		return fmt.Errorf("%w: %v", domain.ErrPositionTimeout, err)
	case errors.Is(err, context.Canceled):
		return err
	case errors.As(err, &se) && (se.status == http.StatusUnauthorized || se.status == http.StatusForbidden):
		return fmt.Errorf("%w: %v", domain.ErrPositionDenied, err)
	default:
		return fmt.Errorf("%w: %v", domain.ErrPositionUnavailable, err)
	}
}
