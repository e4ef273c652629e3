package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of a rate limit check.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter counts attempts in fixed windows backed by Redis.
// Key format: ratelimit:<scope>:<identifier>
type RateLimiter struct {
	client *redis.Client
}

// NewRateLimiter creates a RateLimiter wrapping the given Redis client.
func NewRateLimiter(client *redis.Client) *RateLimiter {
	return &RateLimiter{client: client}
}

// Allow records one attempt for identifier under scope and reports whether it
// fits within limit attempts per window.
func (l *RateLimiter) Allow(ctx context.Context, scope, identifier string, limit int, window time.Duration) (Decision, error) {
	key := l.key(scope, identifier)

	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit incr: %w", err)
	}

	ttl, err := l.client.TTL(ctx, key).Result()
	if err != nil {
		return Decision{}, fmt.Errorf("rate limit ttl: %w", err)
	}
	// First hit of the window, or a key that lost its expiry.
	if count == 1 || ttl < 0 {
		if err := l.client.Expire(ctx, key, window).Err(); err != nil {
			return Decision{}, fmt.Errorf("rate limit expire: %w", err)
		}
		ttl = window
	}

	d := Decision{Limit: limit, Remaining: limit - int(count)}
	if d.Remaining < 0 {
		d.Remaining = 0
	}
	if int(count) > limit {
		d.RetryAfter = ttl
		return d, nil
	}
	d.Allowed = true
	return d, nil
}

// Reset clears the counter for identifier under scope.
func (l *RateLimiter) Reset(ctx context.Context, scope, identifier string) error {
	return l.client.Del(ctx, l.key(scope, identifier)).Err()
}

func (l *RateLimiter) key(scope, identifier string) string {
	return fmt.Sprintf("ratelimit:%s:%s", scope, identifier)
}
