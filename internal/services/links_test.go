package services

import (
	"store-locator-service/internal/domain"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildDirectionsLink(t *testing.T) {
	const web = "https://maps.google.com/?q=1234%20Westheimer%20Rd%2C%20Houston%2C%20TX%2077098"

	tests := []struct {
		platform domain.Platform
		want     DirectionsLink
	}{
		{
			platform: domain.PlatformIOS,
			want: DirectionsLink{
				Platform:      domain.PlatformIOS,
				URI:           "maps://maps.apple.com/?q=RBFC%20Houston%20-%20Westheimer&address=1234%20Westheimer%20Rd%2C%20Houston%2C%20TX%2077098",
				FallbackURI:   web,
				FallbackDelay: 300 * time.Millisecond,
			},
		},
		{
			platform: domain.PlatformAndroid,
			want: DirectionsLink{
				Platform:      domain.PlatformAndroid,
				URI:           "geo:0,0?q=1234%20Westheimer%20Rd%2C%20Houston%2C%20TX%2077098",
				FallbackURI:   web,
				FallbackDelay: 300 * time.Millisecond,
			},
		},
		{
			platform: domain.PlatformDesktop,
			want: DirectionsLink{
				Platform:   domain.PlatformDesktop,
				URI:        web,
				NewContext: true,
			},
		},
		{
			platform: domain.Platform("smart-fridge"),
			want: DirectionsLink{
				Platform:   domain.PlatformDesktop,
				URI:        web,
				NewContext: true,
			},
		},
	}

	for _, tc := range tests {
		t.Run(string(tc.platform), func(t *testing.T) {
			assert.Equal(t, tc.want, BuildDirectionsLink(houstonStore, tc.platform))
		})
	}
}

func TestBuildCallLink(t *testing.T) {
	assert.Equal(t, "tel:7135551234", BuildCallLink(houstonStore))
	assert.Equal(t, "tel:18005551234", BuildCallLink(domain.StoreLocation{Phone: "+1 800.555.1234"}))
	assert.Equal(t, "tel:", BuildCallLink(domain.StoreLocation{}))
}
