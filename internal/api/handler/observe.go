package handler

import (
	"errors"
	"time"

	"github.com/contactdesk/contact-manager/internal/api/metrics"
	"github.com/contactdesk/contact-manager/internal/core/domain"
)

// observeAuth records the outcome of one auth operation.
func observeAuth(operation string, start time.Time, err error) {
	metrics.AuthOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	metrics.AuthOperationsTotal.WithLabelValues(operation, resultLabel(err)).Inc()
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrUserExists):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrUserNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrInvalidOTP):
		return "invalid_otp"
	case errors.Is(err, domain.ErrDeliveryFailure):
		return "delivery_failure"
	default:
		return "error"
	}
}

func observeWrite(resource, action string, err error) {
	if err == nil {
		metrics.ResourceWritesTotal.WithLabelValues(resource, action).Inc()
	}
}
