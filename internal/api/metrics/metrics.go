// Package metrics defines the custom Prometheus metrics of the contact
// manager API. Metrics register with the default registry on import and are
// served by the /metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contactdesk"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthOperationsTotal counts auth gate operations by outcome.
// Labels:
//   - operation: "signup", "login", "forgot_password", "verify_otp", "reset_password"
//   - result: "success" or the failure kind (e.g. "invalid_credentials", "invalid_otp")
var AuthOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_operations_total",
		Help:      "Total number of auth operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// AuthOperationDuration measures auth operations end to end, hashing included.
var AuthOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "auth_operation_duration_seconds",
		Help:      "Duration of auth operations.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// TokenRejectionsTotal counts protected requests refused by the auth middleware.
// Label:
//   - reason: "missing" or "invalid"
var TokenRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_rejections_total",
		Help:      "Total number of protected requests rejected for a missing or invalid token.",
	},
	[]string{"reason"},
)

// RateLimitedTotal counts requests refused by the rate limiter.
// Label:
//   - scope: "login" or "forgot_password"
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter, by scope.",
	},
	[]string{"scope"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourceWritesTotal counts successful contact and interaction writes.
// Labels:
//   - resource: "contact", "interaction", "profile"
//   - action: "create", "update", "delete", "upload"
var ResourceWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_writes_total",
		Help:      "Total number of successful resource writes.",
	},
	[]string{"resource", "action"},
)

// ProfilePictureBytes observes the size of accepted profile picture uploads.
var ProfilePictureBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "profile_picture_bytes",
		Help:      "Size of uploaded profile pictures.",
		Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 6), // 16KiB .. 16MiB
	},
)
