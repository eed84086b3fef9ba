package repositories

import (
	"context"
	"database/sql"
	"errors"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/platform/obs"
)

// SQLStoreRepository is a Postgres-backed implementation of the StoreRepository port.
type SQLStoreRepository struct{ DB *sql.DB }

func NewSQLStoreRepository(db *sql.DB) *SQLStoreRepository {
	return &SQLStoreRepository{DB: db}
}

func (s *SQLStoreRepository) ListStores(ctx context.Context) (_ []domain.StoreLocation, err error) {
	defer obs.Time(ctx, "stores.sql.ListStores")(&err)

	if s.DB == nil {
		return nil, errors.New("sql store repository: DB is nil")
	}
	return listStores(ctx, s.DB, selectStores+`ORDER BY store_id;`)
}

func (s *SQLStoreRepository) GetStore(ctx context.Context, id int) (domain.StoreLocation, error) {
	if s.DB == nil {
		return domain.StoreLocation{}, errors.New("sql store repository: DB is nil")
	}
	return getStore(ctx, s.DB, selectStores+`WHERE store_id = $1;`, id)
}

// Upsert stores into the Postgres stores table in one transaction.
func SeedPostgresStores(db *sql.DB, stores []domain.StoreLocation) error {
	return seedStores(db, `
	INSERT INTO stores (store_id, name, address, city, state, zip, phone, hours, lat, lon)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (store_id) DO UPDATE
	SET name = EXCLUDED.name,
		address = EXCLUDED.address,
		city = EXCLUDED.city,
		state = EXCLUDED.state,
		zip = EXCLUDED.zip,
		phone = EXCLUDED.phone,
		hours = EXCLUDED.hours,
		lat = EXCLUDED.lat,
		lon = EXCLUDED.lon;
	`, stores)
}
