package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

type interactionService struct {
	repo     ports.InteractionRepository
	contacts ports.ContactRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewInteractionService returns an InteractionService implementation.
// Ownership of an interaction is derived from its contact.
func NewInteractionService(
	repo ports.InteractionRepository,
	contacts ports.ContactRepository,
	log zerolog.Logger,
) ports.InteractionService {
	return &interactionService{
		repo:     repo,
		contacts: contacts,
		log:      log,
		now:      time.Now,
	}
}

func (s *interactionService) Create(ctx context.Context, userID string, in ports.InteractionInput) (*domain.Interaction, error) {
	if err := validateInteraction(in); err != nil {
		return nil, err
	}

	// 1. The contact must belong to the caller.
	if _, err := s.contacts.FindByID(ctx, userID, in.ContactID); err != nil {
		return nil, fmt.Errorf("create interaction: %w", err)
	}

	// 2. Build and persist.
	now := s.now().UTC()
	date := now
	if in.Date != nil {
		date = in.Date.UTC()
	}
	created, err := s.repo.Create(ctx, &domain.Interaction{
		ContactID: in.ContactID,
		Type:      domain.InteractionType(in.Type),
		Title:     strings.TrimSpace(in.Title),
		Location:  in.Location,
		Date:      date,
		Notes:     in.Notes,
		Reminder:  in.Reminder,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create interaction: %w", err)
	}

	s.log.Info().
		Str("interaction_id", created.ID).
		Str("contact_id", created.ContactID).
		Str("type", string(created.Type)).
		Msg("interaction created")
	return created, nil
}

func (s *interactionService) ListForContact(ctx context.Context, userID, contactID string) ([]*domain.Interaction, error) {
	if _, err := s.contacts.FindByID(ctx, userID, contactID); err != nil {
		return nil, err
	}
	return s.repo.ListByContact(ctx, contactID)
}

func (s *interactionService) ListAll(ctx context.Context) ([]*domain.Interaction, error) {
	return s.repo.ListAll(ctx)
}

func (s *interactionService) Update(ctx context.Context, userID, id string, in ports.InteractionInput) (*domain.Interaction, error) {
	existing, err := s.owned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.ContactID == "" {
		in.ContactID = existing.ContactID
	}
	if err := validateInteraction(in); err != nil {
		return nil, err
	}

	// Moving an interaction to another contact requires owning that one too.
	if in.ContactID != existing.ContactID {
		if _, err := s.contacts.FindByID(ctx, userID, in.ContactID); err != nil {
			return nil, err
		}
	}

	existing.ContactID = in.ContactID
	existing.Type = domain.InteractionType(in.Type)
	existing.Title = strings.TrimSpace(in.Title)
	existing.Location = in.Location
	if in.Date != nil {
		existing.Date = in.Date.UTC()
	}
	existing.Notes = in.Notes
	existing.Reminder = in.Reminder
	existing.UpdatedAt = s.now().UTC()

	return s.repo.Update(ctx, existing)
}

func (s *interactionService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// owned loads an interaction and hides it unless its contact belongs to userID.
func (s *interactionService) owned(ctx context.Context, userID, id string) (*domain.Interaction, error) {
	it, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.contacts.FindByID(ctx, userID, it.ContactID); err != nil {
		if errors.Is(err, domain.ErrContactNotFound) {
			return nil, domain.ErrInteractionNotFound
		}
		return nil, err
	}
	return it, nil
}

func validateInteraction(in ports.InteractionInput) error {
	switch {
	case in.ContactID == "":
		return fmt.Errorf("%w: contactId is required", domain.ErrValidation)
	case strings.TrimSpace(in.Title) == "":
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	case !domain.InteractionType(in.Type).Valid():
		return fmt.Errorf("%w: type must be one of: call email meeting", domain.ErrValidation)
	}
	return nil
}
