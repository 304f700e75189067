package ports

import (
	"context"
	"time"
)

// Short-lived one-time passcodes keyed by email.
type OTPStore interface {
	// Save code for email, replacing any previous code, valid for ttl.
	Save(ctx context.Context, email, code string, ttl time.Duration) error
	// Check compares code against the live code for email.
	// Returns domain.ErrOTPExpired when none is live and domain.ErrInvalidOTP on mismatch.
	Check(ctx context.Context, email, code string) error
	Delete(ctx context.Context, email string) error
}
