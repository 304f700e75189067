package services

import (
	"net/mail"
	"safecity-service/internal/domain"
	"strings"
	"unicode/utf8"
)

const (
	minNameLength     = 2
	minPasswordLength = 6
	minTipLength      = 5
	otpLength         = 6
)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if email == "" {
		return domain.Invalid("email", "is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domain.Invalid("email", "must be a valid email")
	}
	return nil
}

func validateName(name string) error {
	if utf8.RuneCountInString(name) < minNameLength {
		return domain.Invalid("name", "must be at least 2 characters")
	}
	return nil
}

func validatePassword(field, password string) error {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return domain.Invalid(field, "must be at least 6 characters")
	}
	return nil
}

func validateOTP(code string) error {
	if len(code) != otpLength {
		return domain.Invalid("otp", "must be 6 digits")
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return domain.Invalid("otp", "must be 6 digits")
		}
	}
	return nil
}

func validateLocation(c domain.Coordinates) error {
	if c.IsSentinel() {
		return domain.Invalid("latitude/longitude", "are required")
	}
	if !c.Valid() {
		return domain.Invalid("latitude/longitude", "out of range")
	}
	return nil
}
