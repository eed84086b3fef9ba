package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"store-locator-service/internal/domain"
)

// SQLite-backed implementation of the ContactRepository port.
type SqliteContactRepository struct{ DB *sql.DB }

func NewSqliteContactRepository(db *sql.DB) *SqliteContactRepository {
	return &SqliteContactRepository{DB: db}
}

func (s *SqliteContactRepository) SaveMessage(ctx context.Context, msg domain.ContactMessage) error {
	if s.DB == nil {
		return errors.New("sqlite contact repository: DB is nil")
	}

	query := `
	INSERT INTO contact_messages (
		message_id,
		name,
		email,
		subject,
		message,
		received_at
	)
	VALUES (?, ?, ?, ?, ?, ?);
	`
	if _, err := s.DB.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.ReceivedAt.UnixMilli(),
	); err != nil {
		return fmt.Errorf("save contact message id=%s: %w", msg.ID, err)
	}
	return nil
}

// SQLContactRepository is the Postgres-backed ContactRepository.
type SQLContactRepository struct{ DB *sql.DB }

func NewSQLContactRepository(db *sql.DB) *SQLContactRepository {
	return &SQLContactRepository{DB: db}
}

func (s *SQLContactRepository) SaveMessage(ctx context.Context, msg domain.ContactMessage) error {
	if s.DB == nil {
		return errors.New("sql contact repository: DB is nil")
	}

	query := `
	INSERT INTO contact_messages (message_id, name, email, subject, message, received_at)
	VALUES ($1, $2, $3, $4, $5, $6);
	`
	if _, err := s.DB.ExecContext(ctx, query,
		msg.ID, msg.Name, msg.Email, msg.Subject, msg.Message, msg.ReceivedAt,
	); err != nil {
		return fmt.Errorf("save contact message id=%s: %w", msg.ID, err)
	}
	return nil
}
