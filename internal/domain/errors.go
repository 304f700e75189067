package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedCategory = errors.New("unsupported place type")
	ErrInvalidLocation     = errors.New("location unavailable")
	ErrUpstreamUnavailable = errors.New("geodata service unavailable")
	ErrNoPlacesFound       = errors.New("no places found")

	ErrNotFound        = errors.New("not found")
	ErrUserExists      = errors.New("user already exists")
	ErrNotVerified     = errors.New("account not verified")
	ErrInvalidPassword = errors.New("invalid password")
	ErrInvalidOTP      = errors.New("invalid OTP")
	ErrOTPExpired      = errors.New("OTP has expired")
	ErrRateLimited     = errors.New("submission limit reached")
	ErrUnauthorized    = errors.New("unauthorized")
)

// ValidationError describes a rejected input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
