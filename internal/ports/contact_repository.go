package ports

import (
	"context"
	"store-locator-service/internal/domain"
)

// Port: persistence for accepted contact form messages.
type ContactRepository interface {
	SaveMessage(ctx context.Context, msg domain.ContactMessage) error
}
