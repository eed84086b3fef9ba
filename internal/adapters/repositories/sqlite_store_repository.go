package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"store-locator-service/internal/domain"
)

// SQLite-backed implementation of the StoreRepository port.
type SqliteStoreRepository struct{ DB *sql.DB }

func NewSqliteStoreRepository(db *sql.DB) *SqliteStoreRepository {
	return &SqliteStoreRepository{DB: db}
}

const selectStores = `
	SELECT
		store_id,
		name,
		address,
		city,
		state,
		zip,
		phone,
		hours,
		lat,
		lon
	FROM stores
	`

// Return all stores ordered by id.
func (s *SqliteStoreRepository) ListStores(ctx context.Context) ([]domain.StoreLocation, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite store repository: DB is nil")
	}
	return listStores(ctx, s.DB, selectStores+`ORDER BY store_id;`)
}

func (s *SqliteStoreRepository) GetStore(ctx context.Context, id int) (domain.StoreLocation, error) {
	if s.DB == nil {
		return domain.StoreLocation{}, errors.New("sqlite store repository: DB is nil")
	}
	return getStore(ctx, s.DB, selectStores+`WHERE store_id = ?;`, id)
}

// Upsert stores into the SQLite stores table in one transaction.
func SeedStores(db *sql.DB, stores []domain.StoreLocation) error {
	return seedStores(db, `
	INSERT OR REPLACE INTO stores (
		store_id,
		name,
		address,
		city,
		state,
		zip,
		phone,
		hours,
		lat,
		lon
	)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`, stores)
}

func listStores(ctx context.Context, db *sql.DB, query string) ([]domain.StoreLocation, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stores: query stores table: %w", err)
	}
	defer rows.Close()

	stores := make([]domain.StoreLocation, 0, 16)
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, fmt.Errorf("list stores: scan row: %w", err)
		}
		stores = append(stores, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stores: row iteration: %w", err)
	}

	return stores, nil
}

func getStore(ctx context.Context, db *sql.DB, query string, id int) (domain.StoreLocation, error) {
	s, err := scanStore(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.StoreLocation{}, fmt.Errorf("get store %d: %w", id, domain.ErrStoreNotFound)
	}
	if err != nil {
		return domain.StoreLocation{}, fmt.Errorf("get store %d: %w", id, err)
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStore(row rowScanner) (domain.StoreLocation, error) {
	var s domain.StoreLocation
	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Address,
		&s.City,
		&s.State,
		&s.Zip,
		&s.Phone,
		&s.Hours,
		&s.Position.Lat,
		&s.Position.Lon,
	)
	return s, err
}

func seedStores(db *sql.DB, query string, stores []domain.StoreLocation) error {
	if db == nil {
		return errors.New("seed stores: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed stores: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed stores: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range stores {
		if _, err := stmt.Exec(
			s.ID, s.Name, s.Address, s.City, s.State, s.Zip, s.Phone, s.Hours,
			s.Position.Lat, s.Position.Lon,
		); err != nil {
			return fmt.Errorf("seed stores: insert store_id=%d: %w", s.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed stores: commit tx: %w", err)
	}

	return nil
}
