package ports

import (
	"context"
	"time"

	"github.com/contactdesk/contact-manager/internal/core/domain"
)

// InteractionInput is the DTO passed from the transport layer to InteractionService.
type InteractionInput struct {
	ContactID string
	Type      string
	Title     string
	Location  string
	Date      *time.Time // defaults to now on create
	Notes     string
	Reminder  *time.Time
}

// InteractionService manages interactions on the caller's contacts.
type InteractionService interface {
	Create(ctx context.Context, userID string, input InteractionInput) (*domain.Interaction, error)
	ListForContact(ctx context.Context, userID, contactID string) ([]*domain.Interaction, error)
	ListAll(ctx context.Context) ([]*domain.Interaction, error)
	Update(ctx context.Context, userID, id string, input InteractionInput) (*domain.Interaction, error)
	Delete(ctx context.Context, userID, id string) error
}
