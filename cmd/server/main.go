package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"store-locator-service/internal/adapters/cache"
	"store-locator-service/internal/adapters/position"
	"store-locator-service/internal/adapters/repositories"
	"store-locator-service/internal/api"
	"store-locator-service/internal/config"
	"store-locator-service/internal/platform/db"
	"store-locator-service/internal/platform/logging"
	"store-locator-service/internal/ports"
	"store-locator-service/internal/services"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (SQL, KV cache, IP geolocation) behind ports and starts the HTTP server.
func main() {
	envErr := godotenv.Load()

	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if envErr != nil {
		logger.Info("no .env file found (using environment variables)")
	}

	if err := run(cfg); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config) error {
	conn, err := db.OpenDriver(cfg.DBDriver, cfg.DBPath, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	// Initialize schema and seed the store directory on startup.
	if err := initAndSeed(conn, cfg); err != nil {
		return err
	}

	seed, err := repositories.LoadSeedFile(cfg.SeedPath)
	if err != nil {
		return err
	}

	storeRepo, contactRepo := repositoriesFor(conn, cfg.DBDriver)

	ctx := context.Background()
	directory, err := repositories.LoadDirectory(ctx, storeRepo)
	if err != nil {
		return err
	}
	zap.L().Info("store directory loaded", zap.Int("stores", directory.Len()))

	kv, closeKV, err := newKVStore(conn, cfg)
	if err != nil {
		return err
	}
	defer closeKV()

	ipgeo, err := position.NewIPAPIClient(cfg.IPGeoBaseURL, cfg.IPGeoRatePerMin)
	if err != nil {
		return err
	}

	// Every caller shares the IP geolocation client; the cache slot is per caller.
	pool := services.NewLocatorPool(directory, func(callerID string) (ports.PositionSource, ports.LookupCache) {
		return ipgeo, cache.NewLookupCache(kv, cache.DefaultLookupKey+":"+callerID, cfg.CacheTTL)
	}, cfg.PositionTimeout, cfg.MaxCallers)

	router := api.NewRouter(directory, pool, seed.SiteContent, contactRepo)

	zap.L().Info("server listening",
		zap.String("addr", ":"+cfg.Port),
		zap.String("db_driver", cfg.DBDriver),
		zap.String("cache_backend", cfg.CacheBackend),
	)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv.ListenAndServe()
}

func initAndSeed(conn *sql.DB, cfg config.Config) error {
	if cfg.DBDriver == db.DriverPostgres {
		if err := repositories.InitPostgresSchema(conn); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		if err := repositories.SeedPostgresFromFile(conn, cfg.SeedPath); err != nil {
			return fmt.Errorf("init and seed: %w", err)
		}
		return nil
	}

	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if err := repositories.SeedFromFile(conn, cfg.SeedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	return nil
}

func repositoriesFor(conn *sql.DB, driver string) (ports.StoreRepository, ports.ContactRepository) {
	if driver == db.DriverPostgres {
		return repositories.NewSQLStoreRepository(conn), repositories.NewSQLContactRepository(conn)
	}
	return repositories.NewSqliteStoreRepository(conn), repositories.NewSqliteContactRepository(conn)
}

// newKVStore picks the lookup cache backend. The returned func releases backend resources.
func newKVStore(conn *sql.DB, cfg config.Config) (ports.KeyValueStore, func(), error) {
	noop := func() {}

	switch cfg.CacheBackend {
	case "sqlite", "":
		if cfg.DBDriver == db.DriverPostgres {
			return nil, noop, fmt.Errorf("new kv store: sqlite cache requires DB_DRIVER=sqlite")
		}
		return cache.NewSqliteKVStore(conn), noop, nil

	case "postgres":
		if cfg.DBDriver != db.DriverPostgres {
			return nil, noop, fmt.Errorf("new kv store: postgres cache requires DB_DRIVER=postgres")
		}
		return cache.NewSQLKVStore(conn), noop, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("new kv store: ping redis %q: %w", cfg.RedisAddr, err)
		}
		return cache.NewRedisKVStore(client, cfg.CacheTTL), func() { client.Close() }, nil

	case "memcache":
		client := memcache.New(cfg.MemcacheAddr)
		if err := client.Ping(); err != nil {
			return nil, noop, fmt.Errorf("new kv store: ping memcache %q: %w", cfg.MemcacheAddr, err)
		}
		return cache.NewMemcacheKVStore(client, cfg.CacheTTL), noop, nil

	case "memory":
		return cache.NewMemoryKVStore(), noop, nil

	default:
		return nil, noop, fmt.Errorf("new kv store: unsupported cache backend %q", cfg.CacheBackend)
	}
}

// Compile-time checks that adapters satisfy their ports.
var (
	_ ports.KeyValueStore     = (*cache.SqliteKVStore)(nil)
	_ ports.KeyValueStore     = (*cache.SQLKVStore)(nil)
	_ ports.KeyValueStore     = (*cache.RedisKVStore)(nil)
	_ ports.KeyValueStore     = (*cache.MemcacheKVStore)(nil)
	_ ports.KeyValueStore     = (*cache.MemoryKVStore)(nil)
	_ ports.LookupCache       = (*cache.LookupCache)(nil)
	_ ports.PositionSource    = (*position.IPAPIClient)(nil)
	_ ports.StoreDirectory    = (*repositories.StaticDirectory)(nil)
	_ ports.ContactRepository = (*repositories.SqliteContactRepository)(nil)
)
