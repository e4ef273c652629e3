package ports

import (
	"context"
	"time"

	"github.com/contactdesk/contact-manager/internal/core/domain"
)

// UserRepository is the Credential Store. Every method touches a single
// user document.
type UserRepository interface {
	// Create persists a new user and returns it with its ID set.
	// Returns domain.ErrUserExists when the email is already taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)

	// SaveOTP overwrites whatever challenge the user had.
	SaveOTP(ctx context.Context, userID string, otp domain.OTPChallenge) error

	// ConsumeOTP replaces the password hash and burns the challenge in one
	// conditional write. It returns domain.ErrInvalidOTP when the stored
	// challenge is used, different from code, or expired at now.
	ConsumeOTP(ctx context.Context, userID, code, passwordHash string, now time.Time) error

	UpdateProfile(ctx context.Context, userID string, profile domain.Profile) (*domain.User, error)
	SetProfilePicture(ctx context.Context, userID, url string) (*domain.User, error)
}
