package ports

import (
	"context"
	"io"

	"github.com/contactdesk/contact-manager/internal/core/domain"
)

// ImageStore persists uploaded images and returns their public URL.
type ImageStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

// CropArea selects a region of a picture in pixels, measured from its
// top-left corner.
type CropArea struct {
	X, Y          int
	Width, Height int
}

// UploadInput is a profile picture as received from the transport layer.
// Crop is nil when the picture is stored as uploaded.
type UploadInput struct {
	UserID string
	Body   io.Reader
	Size   int64
	Crop   *CropArea
}

// ProfileService reads and edits the caller's own profile.
type ProfileService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, profile domain.Profile) (*domain.User, error)
	UploadPicture(ctx context.Context, input UploadInput) (*domain.User, error)
}
