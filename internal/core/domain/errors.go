package domain

import "errors"

// Auth gate errors.
var (
	ErrValidation         = errors.New("validation failed")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrDeliveryFailure    = errors.New("failed to send OTP")
	ErrRateLimited        = errors.New("too many requests")
)

// Profile picture errors.
var (
	ErrStorageDisabled  = errors.New("image storage is not configured")
	ErrUnsupportedImage = errors.New("only jpg and png images are allowed")
)
