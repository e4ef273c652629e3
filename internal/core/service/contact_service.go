package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

type ContactService struct {
	repo   ports.ContactRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewContactService(repo ports.ContactRepository, logger zerolog.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger, now: time.Now}
}

// Create stores a new contact owned by userID.
func (s *ContactService) Create(ctx context.Context, userID string, input ports.ContactInput) (*domain.Contact, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	now := s.now().UTC()
	contact := applyContactInput(&domain.Contact{UserID: userID, CreatedAt: now}, input, now)

	created, err := s.repo.Create(ctx, contact)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("failed to create contact")
		return nil, err
	}

	s.logger.Info().Str("contact_id", created.ID).Str("user_id", userID).Msg("contact created")
	return created, nil
}

func (s *ContactService) List(ctx context.Context, userID string) ([]*domain.Contact, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *ContactService) Get(ctx context.Context, userID, id string) (*domain.Contact, error) {
	return s.repo.FindByID(ctx, userID, id)
}

// Update replaces the writable fields of one of the caller's contacts.
func (s *ContactService) Update(ctx context.Context, userID, id string, input ports.ContactInput) (*domain.Contact, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}

	existing, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, applyContactInput(existing, input, s.now().UTC()))
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *ContactService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.logger.Info().Str("contact_id", id).Str("user_id", userID).Msg("contact deleted")
	return nil
}

func applyContactInput(c *domain.Contact, in ports.ContactInput, now time.Time) *domain.Contact {
	c.Name = strings.TrimSpace(in.Name)
	c.Company = in.Company
	c.JobTitle = in.JobTitle
	c.Emails = nonNil(in.Emails)
	c.Phones = nonNil(in.Phones)
	c.Address = in.Address
	c.Notes = make([]domain.Note, 0, len(in.Notes))
	for _, n := range in.Notes {
		if n.Date.IsZero() {
			n.Date = now
		}
		c.Notes = append(c.Notes, n)
	}
	c.SocialLinks = nonNil(in.SocialLinks)
	c.Birthday = in.Birthday
	c.Anniversary = in.Anniversary
	c.Category = in.Category
	c.UpdatedAt = now
	return c
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
