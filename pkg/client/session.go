package client

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is the client-side record of a successful login. It is created by
// Client.Login and ends on Logout or when the token's exp passes.
type Session struct {
	token     string
	email     string
	expiresAt time.Time

	mu     sync.RWMutex
	closed bool
}

// newSession reads exp and email from the token payload without checking the
// signature. The server verifies the token on every request.
func newSession(token string) (*Session, error) {
	var claims struct {
		Email string `json:"email"`
		jwt.RegisteredClaims
	}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil, fmt.Errorf("client: parse session token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("client: session token has no expiry")
	}
	return &Session{token: token, email: claims.Email, expiresAt: claims.ExpiresAt.Time}, nil
}

func (s *Session) Token() string        { return s.token }
func (s *Session) Email() string        { return s.email }
func (s *Session) ExpiresAt() time.Time { return s.expiresAt }

// Valid reports whether the session can still be used at now.
func (s *Session) Valid(now time.Time) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.closed && now.Before(s.expiresAt)
}

// Logout discards the session locally. The server keeps no session state, so
// nothing is sent.
func (s *Session) Logout() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}
