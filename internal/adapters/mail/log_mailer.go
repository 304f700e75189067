package mail

import (
	"context"
	"log"
	"time"
)

// Mailer used when no SMTP credentials are configured. Codes are written
// to the log so local signups can still be verified.
type LogMailer struct{}

func (LogMailer) SendOTP(ctx context.Context, email, code string, validFor time.Duration) error {
	log.Printf("mail=otp to=%s code=%s valid_for=%s", email, code, validFor)
	return nil
}
