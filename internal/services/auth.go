package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"safecity-service/internal/domain"
	"safecity-service/internal/platform/obs"
	"safecity-service/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultOTPTTL = 10 * time.Minute

type SignupRequest struct {
	Name     string
	Email    string
	Password string
}

// AuthService handles account registration, email verification by one-time
// passcode, login and password reset.
type AuthService struct {
	Users  ports.UserRepository
	OTPs   ports.OTPStore
	Mailer ports.Mailer
	Hasher ports.PasswordHasher
	Tokens ports.TokenIssuer

	// OTPTTL defaults to DefaultOTPTTL.
	OTPTTL time.Duration
	// NewOTP defaults to a random 6-digit code.
	NewOTP func() (string, error)
	Now    func() time.Time
}

// Signup creates an unverified account and mails a verification code.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (err error) {
	defer obs.Time(ctx, "auth.Signup")(&err)

	name := strings.TrimSpace(req.Name)
	email := normalizeEmail(req.Email)

	if err := validateName(name); err != nil {
		return err
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validatePassword("password", req.Password); err != nil {
		return err
	}

	if _, err := s.Users.GetByEmail(ctx, email); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("signup: lookup user: %w", err)
	}

	hash, err := s.Hasher.Hash(req.Password)
	if err != nil {
		return fmt.Errorf("signup: hash password: %w", err)
	}

	u := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    nowOr(s.Now),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return fmt.Errorf("signup: create user: %w", err)
	}

	if err := s.issueOTP(ctx, email); err != nil {
		return fmt.Errorf("signup: %w", err)
	}

	return nil
}

// VerifyOTP marks the account verified when code matches the live passcode.
func (s *AuthService) VerifyOTP(ctx context.Context, email, code string) (err error) {
	defer obs.Time(ctx, "auth.VerifyOTP")(&err)

	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validateOTP(code); err != nil {
		return err
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("verify otp: lookup user: %w", err)
	}

	if err := s.OTPs.Check(ctx, email, code); err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}

	if err := s.Users.MarkVerified(ctx, u.ID); err != nil {
		return fmt.Errorf("verify otp: mark verified: %w", err)
	}

	s.consumeOTP(ctx, email)
	return nil
}

// Login returns a signed access token for a verified account.
func (s *AuthService) Login(ctx context.Context, email, password string) (_ string, err error) {
	defer obs.Time(ctx, "auth.Login")(&err)

	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if password == "" {
		return "", domain.Invalid("password", "is required")
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("login: lookup user: %w", err)
	}

	if !u.Verified {
		return "", domain.ErrNotVerified
	}

	if err := s.Hasher.Compare(u.PasswordHash, password); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	token, err := s.Tokens.Issue(u)
	if err != nil {
		return "", fmt.Errorf("login: issue token: %w", err)
	}

	return token, nil
}

// ForgotPassword mails a fresh passcode to an existing account.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (err error) {
	defer obs.Time(ctx, "auth.ForgotPassword")(&err)

	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}

	if _, err := s.Users.GetByEmail(ctx, email); err != nil {
		return fmt.Errorf("forgot password: lookup user: %w", err)
	}

	if err := s.issueOTP(ctx, email); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}

	return nil
}

// ResetPassword replaces the password when code matches the live passcode.
func (s *AuthService) ResetPassword(ctx context.Context, email, code, newPassword string) (err error) {
	defer obs.Time(ctx, "auth.ResetPassword")(&err)

	email = normalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return err
	}
	if err := validateOTP(code); err != nil {
		return err
	}
	if err := validatePassword("new_password", newPassword); err != nil {
		return err
	}

	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("reset password: lookup user: %w", err)
	}

	if err := s.OTPs.Check(ctx, email, code); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	hash, err := s.Hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("reset password: hash password: %w", err)
	}

	if err := s.Users.UpdatePassword(ctx, u.ID, hash); err != nil {
		return fmt.Errorf("reset password: update password: %w", err)
	}

	s.consumeOTP(ctx, email)
	return nil
}

func (s *AuthService) issueOTP(ctx context.Context, email string) error {
	newOTP := s.NewOTP
	if newOTP == nil {
		newOTP = generateOTP
	}

	code, err := newOTP()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	ttl := s.otpTTL()
	if err := s.OTPs.Save(ctx, email, code, ttl); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	if err := s.Mailer.SendOTP(ctx, email, code, ttl); err != nil {
		return fmt.Errorf("send otp: %w", err)
	}

	return nil
}

// consumeOTP logs delete failures; the code still expires with its TTL.
func (s *AuthService) consumeOTP(ctx context.Context, email string) {
	if err := s.OTPs.Delete(ctx, email); err != nil {
		log.Printf("req_id=%s otp delete failed email=%s err=%v", obs.RequestID(ctx), email, err)
	}
}

func (s *AuthService) otpTTL() time.Duration {
	if s.OTPTTL > 0 {
		return s.OTPTTL
	}
	return DefaultOTPTTL
}

// generateOTP returns a uniformly random code in [100000, 999999].
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
