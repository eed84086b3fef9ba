package main

import (
	"database/sql"
	"fmt"
	"os"
	"store-locator-service/internal/adapters/repositories"
	"store-locator-service/internal/config"
	"store-locator-service/internal/platform/db"
	"store-locator-service/internal/platform/logging"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verbose  bool
	seedFile string
	cfg      config.Config
)

// rootCmd is the database maintenance tool for the store locator.
var rootCmd = &cobra.Command{
	Use:   "dbtool",
	Short: "Store locator database maintenance",
	Long: `Manage the store locator database and try lookups from the command line.

Connection settings come from the environment (or .env):
  DB_DRIVER     sqlite (default) or postgres
  DB_PATH       SQLite file path
  DATABASE_URL  Postgres connection string`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		envErr := godotenv.Load()
		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = "debug"
		}
		logger, err := logging.New(level)
		if err != nil {
			return err
		}
		zap.ReplaceGlobals(logger)

		if envErr != nil {
			zap.L().Debug("no .env file found (using environment variables)")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

// initCmd creates the schema.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		zap.L().Info("initializing database schema", zap.String("driver", cfg.DBDriver))
		if err := initSchema(conn); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}
		zap.L().Info("schema ready")
		return nil
	},
}

// seedCmd loads stores from a YAML seed file, replacing existing rows with the same ID.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the store directory from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, err := openDB()
		if err != nil {
			return err
		}
		defer conn.Close()

		path := seedFile
		if path == "" {
			path = cfg.SeedPath
		}

		if err := initSchema(conn); err != nil {
			return fmt.Errorf("schema initialization failed: %w", err)
		}

		zap.L().Info("seeding database", zap.String("file", path))
		if cfg.DBDriver == db.DriverPostgres {
			err = repositories.SeedPostgresFromFile(conn, path)
		} else {
			err = repositories.SeedFromFile(conn, path)
		}
		if err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		zap.L().Info("seeding complete")
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	seedCmd.Flags().StringVar(&seedFile, "file", "", "seed file (default SEED_PATH)")

	rootCmd.AddCommand(initCmd, seedCmd, nearestCmd, linksCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func openDB() (*sql.DB, error) {
	return db.OpenDriver(cfg.DBDriver, cfg.DBPath, cfg.DatabaseURL)
}

func initSchema(conn *sql.DB) error {
	if cfg.DBDriver == db.DriverPostgres {
		return repositories.InitPostgresSchema(conn)
	}
	return repositories.InitSchema(conn)
}
