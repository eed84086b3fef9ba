package services

import (
	"context"
	"fmt"
	"net/mail"
	"store-locator-service/internal/domain"
	"store-locator-service/internal/ports"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidationError lists per-field problems of a contact submission.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %d invalid field(s)", domain.ErrInvalidContact, len(e.Fields))
}

func (e *ValidationError) Unwrap() error { return domain.ErrInvalidContact }

// SubmitContact validates and stores a contact form message.
// Returned message carries the assigned ID and receive time.
func SubmitContact(
	ctx context.Context,
	repo ports.ContactRepository,
	msg domain.ContactMessage,
	now time.Time,
) (domain.ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	if err := ValidateContact(msg); err != nil {
		return domain.ContactMessage{}, err
	}

	msg.ID = uuid.NewString()
	msg.ReceivedAt = now.UTC()

	if err := repo.SaveMessage(ctx, msg); err != nil {
		return domain.ContactMessage{}, fmt.Errorf("submit contact: save message: %w", err)
	}

	return msg, nil
}

// ValidateContact applies the contact form rules.
func ValidateContact(msg domain.ContactMessage) error {
	fields := map[string]string{}

	if utf8.RuneCountInString(msg.Name) < 2 {
		fields["name"] = "Name must be at least 2 characters"
	}
	if addr, err := mail.ParseAddress(msg.Email); err != nil || addr.Address != msg.Email {
		fields["email"] = "Please enter a valid email address"
	}
	if msg.Subject == "" {
		fields["subject"] = "Please select a subject"
	}
	if utf8.RuneCountInString(msg.Message) < 10 {
		fields["message"] = "Message must be at least 10 characters"
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
