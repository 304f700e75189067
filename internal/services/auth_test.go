package services

import (
	"context"
	"errors"
	"safecity-service/internal/domain"
	"testing"
)

func newAuthService() (*AuthService, *fakeUsers, *fakeOTPs, *fakeMailer) {
	users := newFakeUsers()
	otps := newFakeOTPs()
	mailer := &fakeMailer{}

	svc := &AuthService{
		Users:  users,
		OTPs:   otps,
		Mailer: mailer,
		Hasher: fakeHasher{},
		Tokens: fakeTokens{},
		NewOTP: func() (string, error) { return "123456", nil },
	}
	return svc, users, otps, mailer
}

func TestAuthSignupVerifyLogin(t *testing.T) {
	ctx := context.Background()
	svc, users, _, mailer := newAuthService()

	err := svc.Signup(ctx, SignupRequest{Name: "Ada", Email: " Ada@Example.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("signup: unexpected error: %v", err)
	}

	if len(mailer.sent) != 1 || mailer.sent[0].to != "ada@example.com" || mailer.sent[0].code != "123456" {
		t.Fatalf("unexpected mail: %+v", mailer.sent)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "secret1"); !errors.Is(err, domain.ErrNotVerified) {
		t.Fatalf("login before verify: expected ErrNotVerified, got %v", err)
	}

	if err := svc.VerifyOTP(ctx, "ada@example.com", "654321"); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}

	if err := svc.VerifyOTP(ctx, "ada@example.com", "123456"); err != nil {
		t.Fatalf("verify: unexpected error: %v", err)
	}

	// The code is single use.
	if err := svc.VerifyOTP(ctx, "ada@example.com", "123456"); !errors.Is(err, domain.ErrOTPExpired) {
		t.Fatalf("second verify: expected ErrOTPExpired, got %v", err)
	}

	u, err := users.GetByEmail(ctx, "ada@example.com")
	if err != nil || !u.Verified {
		t.Fatalf("user not verified: %+v, %v", u, err)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "wrong-pass"); !errors.Is(err, domain.ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}

	token, err := svc.Login(ctx, "ADA@example.com", "secret1")
	if err != nil {
		t.Fatalf("login: unexpected error: %v", err)
	}
	if token != "token-for-"+u.ID.String() {
		t.Fatalf("token = %q", token)
	}
}

func TestAuthSignupRejectsDuplicateAndBadInput(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newAuthService()

	if err := svc.Signup(ctx, SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Signup(ctx, SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	bad := []SignupRequest{
		{Name: "A", Email: "a@example.com", Password: "secret1"},
		{Name: "Ada", Email: "not-an-email", Password: "secret1"},
		{Name: "Ada", Email: "b@example.com", Password: "123"},
	}
	for _, req := range bad {
		var verr *domain.ValidationError
		if err := svc.Signup(ctx, req); !errors.As(err, &verr) {
			t.Errorf("Signup(%+v): expected ValidationError, got %v", req, err)
		}
	}
}

func TestAuthSignupMailFailure(t *testing.T) {
	svc, _, _, mailer := newAuthService()
	mailer.err = errBoom

	err := svc.Signup(context.Background(), SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	if !errors.Is(err, errBoom) {
		t.Fatalf("expected mail error, got %v", err)
	}
}

func TestAuthForgotAndResetPassword(t *testing.T) {
	ctx := context.Background()
	svc, users, _, mailer := newAuthService()

	if err := svc.ForgotPassword(ctx, "ghost@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := svc.Signup(ctx, SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.VerifyOTP(ctx, "ada@example.com", "123456"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.NewOTP = func() (string, error) { return "777777", nil }
	if err := svc.ForgotPassword(ctx, "ada@example.com"); err != nil {
		t.Fatalf("forgot password: unexpected error: %v", err)
	}
	if last := mailer.sent[len(mailer.sent)-1]; last.code != "777777" {
		t.Fatalf("last mailed code = %q", last.code)
	}

	if err := svc.ResetPassword(ctx, "ada@example.com", "777777", "123"); err == nil {
		t.Fatal("expected validation error for short password")
	}
	if err := svc.ResetPassword(ctx, "ada@example.com", "000000", "newsecret"); !errors.Is(err, domain.ErrInvalidOTP) {
		t.Fatalf("expected ErrInvalidOTP, got %v", err)
	}
	if err := svc.ResetPassword(ctx, "ada@example.com", "777777", "newsecret"); err != nil {
		t.Fatalf("reset password: unexpected error: %v", err)
	}

	u, _ := users.GetByEmail(ctx, "ada@example.com")
	if u.PasswordHash != "hashed:newsecret" {
		t.Fatalf("password hash = %q", u.PasswordHash)
	}

	if _, err := svc.Login(ctx, "ada@example.com", "newsecret"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
}

func TestGenerateOTP(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateOTP()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := validateOTP(code); err != nil {
			t.Fatalf("generated code %q invalid: %v", code, err)
		}
		if code[0] == '0' {
			t.Fatalf("generated code %q has a leading zero", code)
		}
	}
}
