package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite database schema.
func InitSchema(db *sql.DB) error {
	return initSchema(db, []string{
		`
		CREATE TABLE IF NOT EXISTS stores (
			store_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			zip TEXT NOT NULL,
			phone TEXT NOT NULL,
			hours TEXT NOT NULL,
			lat REAL NOT NULL,
			lon REAL NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS contact_messages (
			message_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			subject TEXT NOT NULL,
			message TEXT NOT NULL,
			received_at INTEGER NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at INTEGER NOT NULL
		);
		`,
	})
}

// Initialize the Postgres database schema.
func InitPostgresSchema(db *sql.DB) error {
	return initSchema(db, []string{
		`
		CREATE TABLE IF NOT EXISTS stores (
			store_id INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL,
			city TEXT NOT NULL,
			state TEXT NOT NULL,
			zip TEXT NOT NULL,
			phone TEXT NOT NULL,
			hours TEXT NOT NULL,
			lat DOUBLE PRECISION NOT NULL,
			lon DOUBLE PRECISION NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS contact_messages (
			message_id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			subject TEXT NOT NULL,
			message TEXT NOT NULL,
			received_at TIMESTAMPTZ NOT NULL
		);
		`,
		`
		CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value BYTEA NOT NULL,
			updated_at BIGINT NOT NULL
		);
		`,
	})
}

func initSchema(db *sql.DB, statements []string) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

// Populate the stores table from a seed file. Existing rows with the same id are replaced.
func SeedFromFile(db *sql.DB, seedPath string) error {
	seed, err := LoadSeedFile(seedPath)
	if err != nil {
		return fmt.Errorf("seed stores: %w", err)
	}
	return SeedStores(db, seed.StoreLocations())
}

// Populate the Postgres stores table from a seed file.
func SeedPostgresFromFile(db *sql.DB, seedPath string) error {
	seed, err := LoadSeedFile(seedPath)
	if err != nil {
		return fmt.Errorf("seed stores: %w", err)
	}
	return SeedPostgresStores(db, seed.StoreLocations())
}
