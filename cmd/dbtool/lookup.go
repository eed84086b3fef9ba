package main

import (
	"context"
	"database/sql"
	"fmt"
	"store-locator-service/internal/adapters/cache"
	"store-locator-service/internal/adapters/position"
	"store-locator-service/internal/adapters/repositories"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/platform/db"
	"store-locator-service/internal/ports"
	"store-locator-service/internal/services"

	"github.com/spf13/cobra"
)

var (
	lat, lon     float64
	refresh      bool
	storeID      int
	platformName string
)

// nearestCmd runs the full locator flow against a fixed position.
// The lookup cache lives in the same database, under the plain slot key.
var nearestCmd = &cobra.Command{
	Use:   "nearest",
	Short: "Find the store nearest to --lat/--lon",
	RunE: func(cmd *cobra.Command, args []string) error {
		pos := domain.GeoPosition{Lat: lat, Lon: lon}
		if err := pos.Validate(); err != nil {
			return err
		}

		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		directory, err := repositories.LoadDirectory(ctx, storeRepository(conn))
		if err != nil {
			return err
		}

		lookups := cache.NewLookupCache(kvStore(conn), cache.DefaultLookupKey, cfg.CacheTTL)
		acquirer := services.NewPositionAcquirer(position.NewFixedSource(pos), cfg.PositionTimeout)
		locator := services.NewLocator(directory, acquirer, lookups)

		result, err := locator.Locate(ctx, services.LocateOptions{Refresh: refresh})
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "no stores in directory")
			return nil
		}

		source := "computed"
		if result.FromCache {
			source = "cached"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%s (%s)\n",
			result.Store.ID, result.Store.Name, result.Store.FullAddress(), result.FormattedDistance, source)
		return nil
	},
}

// linksCmd prints the directions and call links for one store.
var linksCmd = &cobra.Command{
	Use:   "links",
	Short: "Print directions and call links for --store",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		store, err := storeRepository(conn).GetStore(ctx, storeID)
		if err != nil {
			return err
		}

		link := services.BuildDirectionsLink(store, domain.ParsePlatform(platformName))
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "directions (%s): %s\n", link.Platform, link.URI)
		if link.FallbackURI != "" {
			fmt.Fprintf(out, "fallback after %s: %s\n", link.FallbackDelay, link.FallbackURI)
		}
		fmt.Fprintf(out, "call: %s\n", services.BuildCallLink(store))
		return nil
	},
}

func init() {
	nearestCmd.Flags().Float64Var(&lat, "lat", 0, "latitude in decimal degrees")
	nearestCmd.Flags().Float64Var(&lon, "lon", 0, "longitude in decimal degrees")
	nearestCmd.Flags().BoolVar(&refresh, "refresh", false, "ignore the cached lookup")
	_ = nearestCmd.MarkFlagRequired("lat")
	_ = nearestCmd.MarkFlagRequired("lon")

	linksCmd.Flags().IntVar(&storeID, "store", 0, "store ID")
	linksCmd.Flags().StringVar(&platformName, "platform", "desktop", "ios, android or desktop")
	_ = linksCmd.MarkFlagRequired("store")
}

func storeRepository(conn *sql.DB) ports.StoreRepository {
	if cfg.DBDriver == db.DriverPostgres {
		return repositories.NewSQLStoreRepository(conn)
	}
	return repositories.NewSqliteStoreRepository(conn)
}

func kvStore(conn *sql.DB) ports.KeyValueStore {
	if cfg.DBDriver == db.DriverPostgres {
		return cache.NewSQLKVStore(conn)
	}
	return cache.NewSqliteKVStore(conn)
}
