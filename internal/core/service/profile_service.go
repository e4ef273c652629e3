package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

const profilePictureFolder = "user_profiles"

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// ProfileService serves the caller's own profile. store may be nil when
// image storage is not configured; uploads then fail with
// domain.ErrStorageDisabled.
type ProfileService struct {
	repo  ports.UserRepository
	store ports.ImageStore
	log   zerolog.Logger
	now   func() time.Time
}

func NewProfileService(repo ports.UserRepository, store ports.ImageStore, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, store: store, log: log, now: time.Now}
}

func (s *ProfileService) Get(ctx context.Context, userID string) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

// Update replaces the profile fields. The picture URL is kept; it only
// changes through UploadPicture.
func (s *ProfileService) Update(ctx context.Context, userID string, profile domain.Profile) (*domain.User, error) {
	profile.Name = strings.TrimSpace(profile.Name)
	if profile.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	switch profile.Gender {
	case "", domain.GenderMale, domain.GenderFemale, domain.GenderOther:
	default:
		return nil, fmt.Errorf("%w: gender must be one of: Male Female Other", domain.ErrValidation)
	}

	current, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	profile.ProfilePicture = current.ProfilePicture

	return s.repo.UpdateProfile(ctx, userID, profile)
}

// UploadPicture stores a jpeg or png image, cropped first when in.Crop is
// set, and points the profile at it.
func (s *ProfileService) UploadPicture(ctx context.Context, in ports.UploadInput) (*domain.User, error) {
	if s.store == nil {
		return nil, domain.ErrStorageDisabled
	}

	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, fmt.Errorf("upload picture: read: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: no file uploaded", domain.ErrValidation)
	}

	contentType := mimetype.Detect(data).String()
	ext, ok := allowedImageTypes[contentType]
	if !ok {
		return nil, domain.ErrUnsupportedImage
	}
	if in.Crop != nil {
		if data, err = cropImage(data, contentType, *in.Crop); err != nil {
			return nil, err
		}
	}

	key := s.pictureKey(in.UserID, ext)
	url, err := s.store.Put(ctx, key, contentType, bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("upload picture: store: %w", err)
	}

	user, err := s.repo.SetProfilePicture(ctx, in.UserID, url)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", in.UserID).Str("key", key).Msg("profile picture updated")
	return user, nil
}

// pictureKey returns user_profiles/<user>/<yyyy>/<mm>/<dd>/<uuid><ext>.
func (s *ProfileService) pictureKey(userID, ext string) string {
	d := s.now().UTC()
	return fmt.Sprintf("%s/%s/%d/%02d/%02d/%s%s",
		profilePictureFolder, userID, d.Year(), d.Month(), d.Day(), uuid.New(), ext)
}
