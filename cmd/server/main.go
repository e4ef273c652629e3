// @title                       Contact Manager API
// @version                     1.0
// @description                 Accounts, contacts and interactions with bearer-token auth and OTP password reset.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/contactdesk/contact-manager/internal/api"
	"github.com/contactdesk/contact-manager/internal/api/middleware"
	"github.com/contactdesk/contact-manager/internal/core/ports"
	"github.com/contactdesk/contact-manager/internal/core/service"
	mongodb "github.com/contactdesk/contact-manager/internal/infrastructure/db/mongo"
	redisdb "github.com/contactdesk/contact-manager/internal/infrastructure/db/redis"
	"github.com/contactdesk/contact-manager/internal/infrastructure/http/handlers"
	"github.com/contactdesk/contact-manager/internal/infrastructure/mail"
	"github.com/contactdesk/contact-manager/internal/infrastructure/ratelimit"
	"github.com/contactdesk/contact-manager/internal/infrastructure/storage"
	"github.com/contactdesk/contact-manager/internal/infrastructure/token"
	"github.com/contactdesk/contact-manager/internal/pkg/config"
	"github.com/contactdesk/contact-manager/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		boot := zerolog.New(os.Stderr).With().Timestamp().Logger()
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "contact-manager",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- Mongo ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := mongoClient.Disconnect(dctx); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	checks := map[string]handlers.Check{"mongo": handlers.MongoCheck(db)}

	// --- Redis (optional) ---
	var limiter middleware.Limiter
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, rate limiting falls back to per-instance buckets")
		limiter = ratelimit.NewLocal()
	} else {
		defer rdb.Close()
		limiter = redisdb.NewRateLimiter(rdb)
		checks["redis"] = handlers.RedisCheck(rdb)
	}

	proxies, err := cfg.ProxyNetworks()
	if err != nil {
		return err
	}

	// --- Adapters ---
	tokens, err := token.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		return err
	}

	var mailer ports.Mailer = mail.NewLogMailer(logger.Component("mail"))
	if cfg.SMTP.Host != "" {
		smtp, err := mail.NewSMTPMailer(mail.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
		})
		if err != nil {
			return err
		}
		mailer = smtp
	} else {
		log.Warn().Msg("SMTP_HOST not set, OTP mails are only logged")
	}

	var images ports.ImageStore
	if cfg.S3.Bucket != "" {
		store, err := storage.NewS3ImageStore(ctx, storage.Config{
			Endpoint:  cfg.S3.Endpoint,
			Region:    cfg.S3.Region,
			Bucket:    cfg.S3.Bucket,
			AccessKey: cfg.S3.AccessKey,
			SecretKey: cfg.S3.SecretKey,
			PublicURL: cfg.S3.PublicURL,
		})
		if err != nil {
			return err
		}
		images = store
	}

	// --- Services ---
	users := mongodb.NewUserRepository(db)
	contacts := mongodb.NewContactRepository(db)

	deps := api.Dependencies{
		Auth: service.NewAuthService(users, service.NewBcryptHasher(0), tokens, mailer, cfg.OTPTTL,
			logger.Component("auth")),
		Profiles:     service.NewProfileService(users, images, logger.Component("profile")),
		Contacts:     service.NewContactService(contacts, logger.Component("contacts")),
		Interactions: service.NewInteractionService(mongodb.NewInteractionRepository(db), contacts, logger.Component("interactions")),
		Tokens:       tokens,
		Limiter:      limiter,
		RateLimits: api.RateLimits{
			Login:  cfg.RateLimit.Login,
			Forgot: cfg.RateLimit.Forgot,
			Window: cfg.RateLimit.Window,
		},
		Checks:         checks,
		TrustedProxies: proxies,
		CORSOrigins:    cfg.CORSOrigins,
		BodyLimit:      cfg.BodyLimit,
		Logger:         logger.Component("http"),
	}
	e := api.NewRouter(deps)

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(sctx)
}
