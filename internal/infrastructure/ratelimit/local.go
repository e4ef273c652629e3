// Package ratelimit holds the in-process limiter used when Redis is not
// reachable. Budgets are per instance rather than shared.
package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"golang.org/x/time/rate"

	redisdb "github.com/contactdesk/contact-manager/internal/infrastructure/db/redis"
)

const sweepEvery = 1024

type entry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Local is a token-bucket limiter keyed by scope and identifier. A bucket
// holds limit tokens and refills limit tokens per window.
type Local struct {
	mu      sync.Mutex
	buckets map[string]*entry
	calls   int
	now     func() time.Time
}

func NewLocal() *Local {
	return &Local{buckets: make(map[string]*entry), now: time.Now}
}

// Allow has the same contract as redisdb.RateLimiter.Allow. It never fails.
func (l *Local) Allow(_ context.Context, scope, identifier string, limit int, window time.Duration) (redisdb.Decision, error) {
	if limit <= 0 || window <= 0 {
		return redisdb.Decision{Allowed: true, Limit: limit, Remaining: limit}, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.calls++
	if l.calls%sweepEvery == 0 {
		l.sweep(now, window)
	}

	key := bucketKey(scope, identifier)
	e, ok := l.buckets[key]
	if !ok {
		e = &entry{lim: rate.NewLimiter(rate.Limit(float64(limit)/window.Seconds()), limit)}
		l.buckets[key] = e
	}
	e.lastSeen = now

	d := redisdb.Decision{Limit: limit}
	r := e.lim.ReserveN(now, 1)
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		d.RetryAfter = delay
		return d, nil
	}

	d.Allowed = true
	d.Remaining = int(math.Max(0, math.Floor(e.lim.TokensAt(now))))
	return d, nil
}

// Reset refills the bucket for identifier under scope.
func (l *Local) Reset(_ context.Context, scope, identifier string) error {
	l.mu.Lock()
	delete(l.buckets, bucketKey(scope, identifier))
	l.mu.Unlock()
	return nil
}

func bucketKey(scope, identifier string) string {
	return scope + ":" + identifier
}

// sweep drops buckets idle for a full window; those are full again anyway.
func (l *Local) sweep(now time.Time, window time.Duration) {
	for k, e := range l.buckets {
		if now.Sub(e.lastSeen) > window {
			delete(l.buckets, k)
		}
	}
}
