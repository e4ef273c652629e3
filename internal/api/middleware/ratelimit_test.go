package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisdb "github.com/contactdesk/contact-manager/internal/infrastructure/db/redis"
)

type stubLimiter struct {
	decision redisdb.Decision
	err      error
	scope    string
	ident    string
	resets   int
}

func (s *stubLimiter) Allow(_ context.Context, scope, identifier string, _ int, _ time.Duration) (redisdb.Decision, error) {
	s.scope, s.ident = scope, identifier
	return s.decision, s.err
}

func (s *stubLimiter) Reset(_ context.Context, scope, identifier string) error {
	s.resets++
	return nil
}

func runRateLimit(t *testing.T, l Limiter) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	return runRateLimitWith(t, RateLimitConfig{Limiter: l, Scope: "login", Limit: 3, Window: time.Minute, Logger: zerolog.Nop()},
		func(c echo.Context) error { return c.NoContent(http.StatusOK) })
}

func runRateLimitWith(t *testing.T, cfg RateLimitConfig, h echo.HandlerFunc) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/user/login", nil)
	req.RemoteAddr = "10.0.0.7:5555"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	err := RateLimit(cfg)(func(c echo.Context) error {
		called = true
		return h(c)
	})(c)
	if err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestRateLimit_Allowed(t *testing.T) {
	l := &stubLimiter{decision: redisdb.Decision{Allowed: true, Limit: 3, Remaining: 2}}

	rec, called := runRateLimit(t, l)
	require.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Equal(t, "login", l.scope)
	assert.Equal(t, "10.0.0.7", l.ident)
}

func TestRateLimit_Exceeded(t *testing.T) {
	l := &stubLimiter{decision: redisdb.Decision{Limit: 3, RetryAfter: 90 * time.Second}}

	rec, called := runRateLimit(t, l)
	assert.False(t, called)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "90", rec.Header().Get("Retry-After"))
}

func TestRateLimit_FailsOpen(t *testing.T) {
	rec, called := runRateLimit(t, &stubLimiter{err: errors.New("redis down")})
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_Disabled(t *testing.T) {
	rec, called := runRateLimit(t, nil)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimit_ResetOnSuccess(t *testing.T) {
	allowed := redisdb.Decision{Allowed: true, Limit: 3, Remaining: 1}
	cfg := func(l *stubLimiter) RateLimitConfig {
		return RateLimitConfig{Limiter: l, Scope: "login", Limit: 3, Window: time.Minute, ResetOnSuccess: true, Logger: zerolog.Nop()}
	}

	ok := &stubLimiter{decision: allowed}
	_, _ = runRateLimitWith(t, cfg(ok), func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	assert.Equal(t, 1, ok.resets)

	failed := &stubLimiter{decision: allowed}
	rec, _ := runRateLimitWith(t, cfg(failed), func(echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid email or password")
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, failed.resets)

	written := &stubLimiter{decision: allowed}
	_, _ = runRateLimitWith(t, cfg(written), func(c echo.Context) error { return c.NoContent(http.StatusUnauthorized) })
	assert.Zero(t, written.resets)
}

func TestRateLimit_NoResetByDefault(t *testing.T) {
	l := &stubLimiter{decision: redisdb.Decision{Allowed: true, Limit: 3, Remaining: 2}}
	_, called := runRateLimit(t, l)
	require.True(t, called)
	assert.Zero(t, l.resets)
}
