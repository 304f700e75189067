package mail

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// SMTP implementation of the Mailer port using PLAIN auth.
type SMTPMailer struct {
	Host     string
	Port     int
	User     string
	Password string
	AppName  string

	// replaced in tests
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTPMailer(host string, port int, user, password, appName string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		AppName:  appName,
		send:     smtp.SendMail,
	}
}

func (m *SMTPMailer) SendOTP(ctx context.Context, email, code string, validFor time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	addr := net.JoinHostPort(m.Host, fmt.Sprint(m.Port))
	auth := smtp.PlainAuth("", m.User, m.Password, m.Host)
	msg := otpMessage(m.User, email, m.AppName, code, validFor)

	send := m.send
	if send == nil {
		send = smtp.SendMail
	}
	if err := send(addr, auth, m.User, []string{email}, msg); err != nil {
		return fmt.Errorf("send otp mail to %s: %w", email, err)
	}
	return nil
}

func otpMessage(from, to, appName, code string, validFor time.Duration) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", to)
	fmt.Fprintf(&b, "Subject: Your OTP for %s\r\n", appName)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	fmt.Fprintf(&b, "Your OTP is %s. It will expire in %d minutes.\r\n", code, int(validFor.Minutes()))
	return []byte(b.String())
}
