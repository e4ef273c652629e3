package ports

import (
	"context"
	"time"

	"github.com/contactdesk/contact-manager/internal/core/domain"
)

// ContactInput carries the writable fields of a contact.
type ContactInput struct {
	Name        string
	Company     string
	JobTitle    string
	Emails      []string
	Phones      []string
	Address     string
	Notes       []domain.Note
	SocialLinks []domain.SocialLink
	Birthday    *time.Time
	Anniversary *time.Time
	Category    string
}

// ContactService defines use-case operations for contacts. userID is always
// the authenticated caller.
type ContactService interface {
	Create(ctx context.Context, userID string, input ContactInput) (*domain.Contact, error)
	List(ctx context.Context, userID string) ([]*domain.Contact, error)
	Get(ctx context.Context, userID, id string) (*domain.Contact, error)
	Update(ctx context.Context, userID, id string, input ContactInput) (*domain.Contact, error)
	Delete(ctx context.Context, userID, id string) error
}
