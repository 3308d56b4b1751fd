package service

import "errors"

// Domain errors. The handler layer maps each one to an HTTP status exactly
// once; business code never encodes status codes in message strings.
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOtp         = errors.New("invalid or expired otp")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrConflict           = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrDeliveryFailed     = errors.New("otp delivery failed")
)
