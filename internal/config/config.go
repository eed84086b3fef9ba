package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the runtime settings of the locator service.
type Config struct {
	Port     string
	LogLevel string

	DBDriver    string
	DBPath      string
	DatabaseURL string
	SeedPath    string

	// One of sqlite, postgres, redis, memcache, memory.
	CacheBackend string
	CacheTTL     time.Duration
	RedisAddr    string
	MemcacheAddr string

	IPGeoBaseURL    string
	IPGeoRatePerMin int
	PositionTimeout time.Duration
	MaxCallers      int
}

// Load reads Config from the environment, applying defaults for unset keys.
func Load() Config {
	return Config{
		Port:     Get("PORT", "8080"),
		LogLevel: Get("LOG_LEVEL", "info"),

		DBDriver:    Get("DB_DRIVER", "sqlite"),
		DBPath:      Get("DB_PATH", "data/app.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		SeedPath:    Get("SEED_PATH", "data/seeds/stores.yaml"),

		CacheBackend: strings.ToLower(Get("CACHE_BACKEND", "sqlite")),
		CacheTTL:     GetDuration("CACHE_TTL", 24*time.Hour),
		RedisAddr:    Get("REDIS_ADDR", "127.0.0.1:6379"),
		MemcacheAddr: Get("MEMCACHE_ADDR", "127.0.0.1:11211"),

		IPGeoBaseURL:    Get("IPGEO_BASE_URL", "http://ip-api.com"),
		IPGeoRatePerMin: GetInt("IPGEO_RATE_PER_MIN", 45),
		PositionTimeout: GetDuration("POSITION_TIMEOUT", 5*time.Second),
		MaxCallers:      GetInt("MAX_CALLERS", 1024),
	}
}

// Get returns the value of key, or fallback when it is unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v, err := strconv.Atoi(Get(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func GetFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(Get(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

func GetBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(Get(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

// GetDuration parses Go duration syntax ("5s", "24h").
func GetDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(Get(key, ""))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
