package domain

import "strings"

// Platform is the runtime environment a deep link is built for.
type Platform string

const (
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformDesktop Platform = "desktop"
)

// ParsePlatform maps a free-form hint to a Platform. Unknown values map to desktop.
func ParsePlatform(s string) Platform {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ios", "iphone", "ipad":
		return PlatformIOS
	case "android":
		return PlatformAndroid
	default:
		return PlatformDesktop
	}
}

// Native reports whether links for this platform use a native app scheme.
func (p Platform) Native() bool {
	return p == PlatformIOS || p == PlatformAndroid
}
