package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/contactdesk/contact-manager/internal/api/metrics"
	"github.com/contactdesk/contact-manager/internal/core/ports"
)

// Context keys set by Auth.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
)

const bearerPrefix = "Bearer "

const (
	msgNoToken      = "no authentication token, access denied"
	msgInvalidToken = "token is invalid or expired"
)

// Auth verifies the bearer token and injects the caller identity into context.
// The token is self-contained; nothing is looked up per request.
func Auth(tokens ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw := header
			if strings.HasPrefix(header, bearerPrefix) {
				raw = strings.TrimPrefix(header, bearerPrefix)
			}
			if strings.TrimSpace(raw) == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgNoToken)
			}
			if raw == header {
				// Scheme other than "Bearer ".
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, msgInvalidToken)
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxEmail, claims.Email)

			return next(c)
		}
	}
}
