package services

import (
	"net/url"
	"store-locator-service/internal/domain"
	"strings"
	"time"
)

// NativeFallbackDelay is how long a caller waits before opening the web fallback
// of a native maps link. Platforms do not report an unresolved scheme synchronously.
const NativeFallbackDelay = 300 * time.Millisecond

// DirectionsLink is a deep link for turn-by-turn directions to a store.
type DirectionsLink struct {
	Platform domain.Platform
	URI      string
	// Web URL to open after FallbackDelay when URI uses a native scheme; empty otherwise.
	FallbackURI   string
	FallbackDelay time.Duration
	// NewContext asks the caller to open URI in a new window/tab.
	NewContext bool
}

// BuildDirectionsLink produces a platform-appropriate directions link.
//   - iOS: Apple Maps scheme carrying the store name and full address.
//   - Android: geo URI carrying the full address.
//   - Desktop or anything else: Google Maps web search in a new context.
func BuildDirectionsLink(store domain.StoreLocation, platform domain.Platform) DirectionsLink {
	address := store.FullAddress()
	web := WebMapsURL(address)

	switch platform {
	case domain.PlatformIOS:
		return DirectionsLink{
			Platform:      platform,
			URI:           "maps://maps.apple.com/?q=" + encodeComponent(store.Name) + "&address=" + encodeComponent(address),
			FallbackURI:   web,
			FallbackDelay: NativeFallbackDelay,
		}
	case domain.PlatformAndroid:
		return DirectionsLink{
			Platform:      platform,
			URI:           "geo:0,0?q=" + encodeComponent(address),
			FallbackURI:   web,
			FallbackDelay: NativeFallbackDelay,
		}
	default:
		return DirectionsLink{
			Platform:   domain.PlatformDesktop,
			URI:        web,
			NewContext: true,
		}
	}
}

// WebMapsURL is the browser map-search URL for an address.
func WebMapsURL(address string) string {
	return "https://maps.google.com/?q=" + encodeComponent(address)
}

// BuildCallLink strips every non-digit from the store phone and returns a tel: URI.
func BuildCallLink(store domain.StoreLocation) string {
	var b strings.Builder
	b.WriteString("tel:")
	for _, r := range store.Phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// encodeComponent percent-encodes s for use inside a query value,
// with spaces as %20 rather than '+' so native schemes parse it.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
