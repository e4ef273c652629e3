package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-manager/internal/api/metrics"
	"github.com/contactdesk/contact-manager/internal/core/domain"
	redisdb "github.com/contactdesk/contact-manager/internal/infrastructure/db/redis"
)

// Limiter is satisfied by redisdb.RateLimiter and ratelimit.Local.
type Limiter interface {
	Allow(ctx context.Context, scope, identifier string, limit int, window time.Duration) (redisdb.Decision, error)
	Reset(ctx context.Context, scope, identifier string) error
}

// RateLimitConfig configures one rate-limited route.
type RateLimitConfig struct {
	Limiter Limiter
	Scope   string
	Limit   int
	Window  time.Duration
	// ResetOnSuccess clears the client's budget once the handler answers
	// with a non-error status.
	ResetOnSuccess bool
	Logger         zerolog.Logger
}

// RateLimit limits requests per client IP in fixed windows. When the limiter
// itself fails the request is let through.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Limiter == nil || cfg.Limit <= 0 {
				return next(c)
			}

			ip := c.RealIP()
			d, err := cfg.Limiter.Allow(c.Request().Context(), cfg.Scope, ip, cfg.Limit, cfg.Window)
			if err != nil {
				cfg.Logger.Warn().Err(err).Str("scope", cfg.Scope).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(d.Remaining))

			if !d.Allowed {
				h.Set("Retry-After", strconv.Itoa(int(math.Ceil(d.RetryAfter.Seconds()))))
				metrics.RateLimitedTotal.WithLabelValues(cfg.Scope).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "Too many requests").SetInternal(domain.ErrRateLimited)
			}

			if err := next(c); err != nil {
				return err
			}
			if cfg.ResetOnSuccess && c.Response().Status < http.StatusBadRequest {
				if err := cfg.Limiter.Reset(c.Request().Context(), cfg.Scope, ip); err != nil {
					cfg.Logger.Warn().Err(err).Str("scope", cfg.Scope).Msg("rate limit reset failed")
				}
			}
			return nil
		}
	}
}
