package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"store-locator-service/internal/platform/obs"
	"strings"
	"time"
)

// SQLKVStore is a Postgres-backed key-value store over the kv_store table.
type SQLKVStore struct {
	DB *sql.DB
}

func NewSQLKVStore(db *sql.DB) *SQLKVStore {
	return &SQLKVStore{DB: db}
}

func (s *SQLKVStore) Get(ctx context.Context, key string) (_ []byte, _ bool, err error) {
	defer obs.Time(ctx, "kv.sql.Get")(&err)

	if s.DB == nil {
		return nil, false, errors.New("kv store: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get kv: key must not be empty")
	}

	q := `
	SELECT value
	FROM kv_store
	WHERE key = $1;
	`

	var value []byte
	err = s.DB.QueryRowContext(ctx, q, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get kv: query kv_store table: %w", err)
	}

	return value, true, nil
}

func (s *SQLKVStore) Set(ctx context.Context, key string, value []byte) error {
	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert kv: key must not be empty")
	}

	q := `
	INSERT INTO kv_store (key, value, updated_at)
	VALUES ($1, $2, $3)
	ON CONFLICT (key) DO UPDATE
	SET value = EXCLUDED.value,
		updated_at = EXCLUDED.updated_at;
	`
	if _, err := s.DB.ExecContext(ctx, q, key, value, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("insert kv key=%q: %w", key, err)
	}

	return nil
}

func (s *SQLKVStore) Delete(ctx context.Context, key string) error {
	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM kv_store WHERE key = $1;`, key); err != nil {
		return fmt.Errorf("delete kv key=%q: %w", key, err)
	}

	return nil
}
