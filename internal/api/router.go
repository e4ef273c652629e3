package api

import (
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/contactdesk/contact-manager/docs"
	"github.com/contactdesk/contact-manager/internal/api/handler"
	"github.com/contactdesk/contact-manager/internal/api/middleware"
	"github.com/contactdesk/contact-manager/internal/core/ports"
	"github.com/contactdesk/contact-manager/internal/infrastructure/http/handlers"
)

// RateLimits sets per-IP attempt budgets for the unauthenticated auth routes.
type RateLimits struct {
	Login  int
	Forgot int
	Window time.Duration
}

// Dependencies is everything the router wires into handlers.
type Dependencies struct {
	Auth         ports.AuthService
	Profiles     ports.ProfileService
	Contacts     ports.ContactService
	Interactions ports.InteractionService
	Tokens       ports.TokenVerifier

	// Limiter may be nil, which disables rate limiting.
	Limiter    middleware.Limiter
	RateLimits RateLimits

	// Readiness checks keyed by dependency name.
	Checks map[string]handlers.Check

	// TrustedProxies are the networks whose X-Forwarded-For entries are
	// believed. When empty the client IP is the TCP peer.
	TrustedProxies []*net.IPNet

	CORSOrigins []string
	BodyLimit   string
	Logger      zerolog.Logger

	// Registry receives HTTP metrics; nil means the default registry.
	Registry *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)
	e.Validator = handler.NewValidator()
	e.IPExtractor = clientIP(d.TrustedProxies)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	if d.BodyLimit != "" {
		e.Use(echomiddleware.BodyLimit(d.BodyLimit))
	}
	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "contactdesk",
		Registerer: registerer,
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	profileHandler := handler.NewProfileHandler(d.Profiles)
	contactHandler := handler.NewContactHandler(d.Contacts)
	interactionHandler := handler.NewInteractionHandler(d.Interactions)
	auth := middleware.Auth(d.Tokens)

	loginLimit := rateLimit(d, "login", d.RateLimits.Login, true)
	forgotLimit := rateLimit(d, "forgot_password", d.RateLimits.Forgot, false)

	// --- Auth and profile routes, under the API prefix and the bare /user prefix ---
	for _, prefix := range []string{"/api/user", "/user"} {
		g := e.Group(prefix)
		g.POST("/signup", authHandler.Signup)
		g.POST("/login", authHandler.Login, loginLimit)
		g.POST("/forgot-password", authHandler.ForgotPassword, forgotLimit)
		g.POST("/verify-otp", authHandler.VerifyOTP)
		g.POST("/reset-password", authHandler.ResetPassword)

		g.GET("/profile", profileHandler.Get, auth)
		g.PUT("/profile", profileHandler.Update, auth)
		g.POST("/upload-profile-picture", profileHandler.UploadPicture, auth)
		g.POST("/upload-profile", profileHandler.UploadPicture, auth)
		g.POST("/upload-profile-picture-crop", profileHandler.UploadCroppedPicture, auth)
	}

	// --- Contacts (all protected) ---
	contacts := e.Group("/api/contacts", auth)
	contacts.POST("", contactHandler.Create)
	contacts.GET("", contactHandler.List)
	contacts.GET("/:id", contactHandler.Get)
	contacts.PUT("/:id", contactHandler.Update)
	contacts.DELETE("/:id", contactHandler.Delete)

	// --- Interactions (list-all is public) ---
	interactions := e.Group("/api/interactions")
	interactions.GET("", interactionHandler.ListAll)
	interactions.POST("", interactionHandler.Create, auth)
	interactions.GET("/:contactId", interactionHandler.ListForContact, auth)
	interactions.PUT("/:id", interactionHandler.Update, auth)
	interactions.DELETE("/:id", interactionHandler.Delete, auth)

	// --- Operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	readinessHandler := handlers.NewReadinessHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// rateLimit builds the per-IP limiter for one route. A successful login
// clears the caller's login budget.
func rateLimit(d Dependencies, scope string, limit int, resetOnSuccess bool) echo.MiddlewareFunc {
	return middleware.RateLimit(middleware.RateLimitConfig{
		Limiter:        d.Limiter,
		Scope:          scope,
		Limit:          limit,
		Window:         d.RateLimits.Window,
		ResetOnSuccess: resetOnSuccess,
		Logger:         d.Logger,
	})
}

// clientIP only honours X-Forwarded-For hops added by the given proxies.
func clientIP(proxies []*net.IPNet) echo.IPExtractor {
	if len(proxies) == 0 {
		return echo.ExtractIPDirect()
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, n := range proxies {
		opts = append(opts, echo.TrustIPRange(n))
	}
	return echo.ExtractIPFromXFFHeader(opts...)
}
