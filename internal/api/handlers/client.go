package handlers

import (
	"net"
	"net/http"
	"regexp"
	"store-locator-service/internal/domain"
	"strings"

	"github.com/google/uuid"
)

const (
	ClientIDHeader = "X-Client-ID"
	ClientIDCookie = "client_id"
)

var (
	iosUA     = regexp.MustCompile(`(?i)iPhone|iPad|iPod`)
	androidUA = regexp.MustCompile(`(?i)Android`)
)

// DetectPlatform guesses the runtime platform from a User-Agent string.
func DetectPlatform(userAgent string) domain.Platform {
	switch {
	case iosUA.MatchString(userAgent):
		return domain.PlatformIOS
	case androidUA.MatchString(userAgent):
		return domain.PlatformAndroid
	default:
		return domain.PlatformDesktop
	}
}

// requestPlatform prefers an explicit ?platform= hint over the User-Agent.
func requestPlatform(r *http.Request) domain.Platform {
	if p := strings.TrimSpace(r.URL.Query().Get("platform")); p != "" {
		return domain.ParsePlatform(p)
	}
	return DetectPlatform(r.UserAgent())
}

// callerID identifies the caller by header or cookie. Unknown callers get a new
// ID, returned in a cookie so subsequent lookups share the same locator.
// Only UUIDs are accepted so IDs are safe to embed in cache keys.
func callerID(w http.ResponseWriter, r *http.Request) string {
	if id, err := uuid.Parse(r.Header.Get(ClientIDHeader)); err == nil {
		return id.String()
	}
	if c, err := r.Cookie(ClientIDCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     ClientIDCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// clientIP returns the host part of RemoteAddr (already rewritten by middleware.RealIP).
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
