package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-manager/internal/core/domain"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

const (
	DefaultOTPTTL = 10 * time.Minute

	otpSubject = "Your OTP for password reset"
)

// AuthService implements signup, login and the OTP password-reset flow.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	mailer ports.Mailer
	otpTTL time.Duration
	log    zerolog.Logger

	now    func() time.Time
	newOTP func() (string, error)

	// dummyHash is compared against when the email is unknown so that a
	// missing account costs the same as a wrong password.
	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	mailer ports.Mailer,
	otpTTL time.Duration,
	log zerolog.Logger,
) *AuthService {
	if otpTTL <= 0 {
		otpTTL = DefaultOTPTTL
	}
	return &AuthService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		mailer: mailer,
		otpTTL: otpTTL,
		log:    log,
		now:    time.Now,
		newOTP: GenerateOTP,
	}
}

// Signup creates an account. No token is issued; the caller logs in next.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	if strings.TrimSpace(in.Name) == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", domain.ErrValidation)
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	switch {
	case err == nil && existing != nil:
		return nil, domain.ErrUserExists
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return nil, fmt.Errorf("signup: lookup: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("signup: hash: %w", err)
	}

	now := s.now().UTC()
	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Profile: domain.Profile{
			Name:        in.Name,
			Preferences: domain.DefaultPreferences(),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, fmt.Errorf("signup: create: %w", err)
	}

	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login checks the credentials and returns a signed session token.
// Unknown email and wrong password both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			_ = s.hasher.Compare(s.fakeHash(), password)
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("login: lookup: %w", err)
	}

	if s.hasher.Compare(user.PasswordHash, password) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return "", nil, fmt.Errorf("login: issue token: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// ForgotPassword issues a fresh OTP challenge, replacing any previous one,
// and mails it to the account address.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("forgot password: lookup: %w", err)
	}

	code, err := s.newOTP()
	if err != nil {
		return fmt.Errorf("forgot password: generate otp: %w", err)
	}

	challenge := domain.OTPChallenge{
		Code:      code,
		ExpiresAt: s.now().UTC().Add(s.otpTTL),
		Used:      false,
	}
	if err := s.repo.SaveOTP(ctx, user.ID, challenge); err != nil {
		return fmt.Errorf("forgot password: save otp: %w", err)
	}

	body := fmt.Sprintf("Your OTP is: %s. It expires in %d minutes.", code, int(s.otpTTL.Minutes()))
	if err := s.mailer.Send(ctx, user.Email, otpSubject, body); err != nil {
		s.log.Error().Err(err).Str("user_id", user.ID).Msg("otp delivery failed")
		return domain.ErrDeliveryFailure
	}

	s.log.Info().Str("user_id", user.ID).Time("expires_at", challenge.ExpiresAt).Msg("otp issued")
	return nil
}

// VerifyOTP is a read-only check; it never consumes the challenge.
func (s *AuthService) VerifyOTP(ctx context.Context, email, otp string) error {
	if email == "" || otp == "" {
		return fmt.Errorf("%w: email and otp are required", domain.ErrValidation)
	}

	user, err := s.findForOTP(ctx, email)
	if err != nil {
		return err
	}
	if !user.OTP.Redeemable(otp, s.now()) {
		return domain.ErrInvalidOTP
	}
	return nil
}

// ResetPassword replaces the password and burns the OTP.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if email == "" || otp == "" || newPassword == "" {
		return fmt.Errorf("%w: email, otp and newPassword are required", domain.ErrValidation)
	}

	user, err := s.findForOTP(ctx, email)
	if err != nil {
		return err
	}
	now := s.now()
	if !user.OTP.Redeemable(otp, now) {
		return domain.ErrInvalidOTP
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: hash: %w", err)
	}

	// The store re-checks the challenge in the same write, so two concurrent
	// resets with one code cannot both succeed.
	if err := s.repo.ConsumeOTP(ctx, user.ID, otp, hash, now.UTC()); err != nil {
		if errors.Is(err, domain.ErrInvalidOTP) {
			return err
		}
		return fmt.Errorf("reset password: consume otp: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return nil
}

func (s *AuthService) findForOTP(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

func (s *AuthService) fakeHash() string {
	s.dummyOnce.Do(func() {
		h, err := s.hasher.Hash("not-a-real-password")
		if err != nil {
			s.log.Warn().Err(err).Msg("dummy hash generation failed")
			return
		}
		s.dummyHash = h
	})
	return s.dummyHash
}
