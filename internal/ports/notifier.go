package ports

import (
	"context"
	"time"
)

// Delivers one-time passcodes to users.
type Mailer interface {
	SendOTP(ctx context.Context, email, code string, validFor time.Duration) error
}

// Generates free-text safety advice.
type Advisor interface {
	Advise(ctx context.Context, prompt string) (string, error)
}

// Per-key submission throttling.
type RateLimiter interface {
	// Allow records one event for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
}
