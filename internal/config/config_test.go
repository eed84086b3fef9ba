package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "CACHE_BACKEND", "CACHE_TTL", "POSITION_TIMEOUT", "IPGEO_RATE_PER_MIN"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "sqlite", cfg.CacheBackend)
	assert.Equal(t, 24*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 5*time.Second, cfg.PositionTimeout)
	assert.Equal(t, 45, cfg.IPGeoRatePerMin)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_BACKEND", "Redis")
	t.Setenv("POSITION_TIMEOUT", "2s")
	t.Setenv("MAX_CALLERS", "16")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis", cfg.CacheBackend)
	assert.Equal(t, 2*time.Second, cfg.PositionTimeout)
	assert.Equal(t, 16, cfg.MaxCallers)
}

func TestGetters(t *testing.T) {
	t.Run("invalid values fall back", func(t *testing.T) {
		t.Setenv("X_INT", "ten")
		t.Setenv("X_DUR", "-1s")
		t.Setenv("X_BOOL", "maybe")
		t.Setenv("X_FLOAT", "")

		assert.Equal(t, 3, GetInt("X_INT", 3))
		assert.Equal(t, time.Minute, GetDuration("X_DUR", time.Minute))
		assert.True(t, GetBool("X_BOOL", true))
		assert.Equal(t, 1.5, GetFloat("X_FLOAT", 1.5))
	})

	t.Run("valid values parse", func(t *testing.T) {
		t.Setenv("X_FLOAT", "29.76")
		t.Setenv("X_BOOL", "false")

		assert.Equal(t, 29.76, GetFloat("X_FLOAT", 0))
		assert.False(t, GetBool("X_BOOL", true))
	})
}
