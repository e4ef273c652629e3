package ports

import (
	"context"

	"github.com/contactdesk/contact-manager/internal/core/domain"
)

// InteractionRepository handles interaction persistence. Ownership is not
// known at this level; the service checks it through the contact.
type InteractionRepository interface {
	Create(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error)
	FindByID(ctx context.Context, id string) (*domain.Interaction, error)
	// ListByContact returns a contact's interactions, most recent date first.
	ListByContact(ctx context.Context, contactID string) ([]*domain.Interaction, error)
	// ListAll returns every interaction ordered by date ascending.
	ListAll(ctx context.Context) ([]*domain.Interaction, error)
	Update(ctx context.Context, i *domain.Interaction) (*domain.Interaction, error)
	Delete(ctx context.Context, id string) error
}
