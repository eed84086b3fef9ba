package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// SQLite backed key-value store over the kv_store table.
// Each key is a single row; writes replace the row atomically.
type SqliteKVStore struct {
	DB *sql.DB
}

func NewSqliteKVStore(db *sql.DB) *SqliteKVStore {
	return &SqliteKVStore{DB: db}
}

func (s *SqliteKVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.DB == nil {
		return nil, false, errors.New("kv store: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get kv: key must not be empty")
	}

	q := `
	SELECT value
	FROM kv_store
	WHERE key = ?;
	`

	var value []byte
	err := s.DB.QueryRowContext(ctx, q, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get kv: query kv_store table: %w", err)
	}

	return value, true, nil
}

func (s *SqliteKVStore) Set(ctx context.Context, key string, value []byte) error {
	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert kv: key must not be empty")
	}

	q := `
	INSERT OR REPLACE INTO kv_store (
		key,
		value,
		updated_at
	)
	VALUES (?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, q, key, value, time.Now().UnixMilli()); err != nil {
		return fmt.Errorf("insert kv key=%q: %w", key, err)
	}

	return nil
}

func (s *SqliteKVStore) Delete(ctx context.Context, key string) error {
	if s.DB == nil {
		return errors.New("kv store: db is nil")
	}

	if _, err := s.DB.ExecContext(ctx, `DELETE FROM kv_store WHERE key = ?;`, key); err != nil {
		return fmt.Errorf("delete kv key=%q: %w", key, err)
	}

	return nil
}
