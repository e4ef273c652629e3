package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 10*time.Minute, cfg.OTPTTL)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:3001", "http://localhost:3002"}, cfg.CORSOrigins)
	assert.Equal(t, 20, cfg.RateLimit.Login)
	assert.Equal(t, 5, cfg.RateLimit.Forgot)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Empty(t, cfg.S3.Bucket)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.False(t, cfg.Redis.TLS)
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":   "s3cret",
		"ENV":          "production",
		"OTP_TTL":      "5m",
		"CORS_ORIGINS": "https://app.example.com",
		"SMTP_HOST":    "smtp.example.com",
		"SMTP_FROM":    "noreply@example.com",
		"S3_BUCKET":    "avatars",

		"TRUSTED_PROXIES": "10.0.0.0/8,192.0.2.7",
		"REDIS_PASSWORD":  "hunter2",
		"REDIS_TLS":       "true",
		"REDIS_POOL_SIZE": "25",
	}))
	require.NoError(t, err)

	assert.False(t, cfg.IsDevelopment())
	assert.Equal(t, 5*time.Minute, cfg.OTPTTL)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	assert.Equal(t, "avatars", cfg.S3.Bucket)
	assert.Equal(t, "hunter2", cfg.Redis.Password)
	assert.True(t, cfg.Redis.TLS)
	assert.Equal(t, 25, cfg.Redis.PoolSize)

	nets, err := cfg.ProxyNetworks()
	require.NoError(t, err)
	require.Len(t, nets, 2)
	assert.Equal(t, "10.0.0.0/8", nets[0].String())
	assert.Equal(t, "192.0.2.7/32", nets[1].String())
}

func TestLoad_Errors(t *testing.T) {
	_, err := load(context.Background(), envconfig.MapLookuper(map[string]string{}))
	assert.Error(t, err, "JWT_SECRET is required")

	_, err = load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"SMTP_HOST":  "smtp.example.com",
	}))
	assert.Error(t, err)

	_, err = load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":      "s3cret",
		"TRUSTED_PROXIES": "not-a-network",
	}))
	assert.ErrorContains(t, err, "TRUSTED_PROXIES")
}
