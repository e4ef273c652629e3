package ports

import (
	"context"

	"github.com/contactdesk/contact-manager/internal/core/domain"
)

// SignupInput carries the fields accepted at signup. Profile fields other
// than the display name are set later through the profile routes.
type SignupInput struct {
	Name     string
	Email    string
	Password string
}

// AuthService is the Auth Gate.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}

// PasswordHasher produces and checks one-way password hashes.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil only when password matches hash.
	Compare(hash, password string) error
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(user *domain.User) (string, error)
}

// TokenVerifier validates a session token and returns its claims.
// Any failure (bad signature, malformed, expired) yields domain.ErrUnauthorized.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// Mailer delivers a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
