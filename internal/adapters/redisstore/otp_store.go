package redisstore

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"safecity-service/internal/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// Redis-backed implementation of the OTPStore port. Expiry is left to
// the key TTL so an expired code and a never-issued code look the same.
type OTPStore struct{ Client *redis.Client }

func NewOTPStore(client *redis.Client) *OTPStore {
	return &OTPStore{Client: client}
}

func otpKey(email string) string { return otpKeyPrefix + email }

func (s *OTPStore) Save(ctx context.Context, email, code string, ttl time.Duration) error {
	if s.Client == nil {
		return errors.New("otp store: redis client is nil")
	}
	if err := s.Client.Set(ctx, otpKey(email), code, ttl).Err(); err != nil {
		return fmt.Errorf("save otp: %w", err)
	}
	return nil
}

func (s *OTPStore) Check(ctx context.Context, email, code string) error {
	if s.Client == nil {
		return errors.New("otp store: redis client is nil")
	}

	stored, err := s.Client.Get(ctx, otpKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return domain.ErrOTPExpired
	}
	if err != nil {
		return fmt.Errorf("check otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return domain.ErrInvalidOTP
	}
	return nil
}

func (s *OTPStore) Delete(ctx context.Context, email string) error {
	if s.Client == nil {
		return errors.New("otp store: redis client is nil")
	}
	if err := s.Client.Del(ctx, otpKey(email)).Err(); err != nil {
		return fmt.Errorf("delete otp: %w", err)
	}
	return nil
}
