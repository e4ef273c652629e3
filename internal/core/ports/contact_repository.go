package ports

import (
	"context"

	"github.com/contactdesk/contact-manager/internal/core/domain"
)

// ContactRepository defines persistence operations for contacts. Every
// lookup is filtered by the owning user; a contact owned by someone else is
// reported as domain.ErrContactNotFound.
type ContactRepository interface {
	Create(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	// ListByUser returns the user's contacts, newest first.
	ListByUser(ctx context.Context, userID string) ([]*domain.Contact, error)
	FindByID(ctx context.Context, userID, id string) (*domain.Contact, error)
	Update(ctx context.Context, c *domain.Contact) (*domain.Contact, error)
	Delete(ctx context.Context, userID, id string) error
}
