package services

import (
	"context"
	"fmt"
	"safecity-service/internal/domain"
	"safecity-service/internal/ports"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TipService manages the safety tips a user has written.
type TipService struct {
	Tips ports.TipRepository
	// Limiter is optional; nil disables submission limits.
	Limiter ports.RateLimiter
	Now     func() time.Time
}

func (s *TipService) Create(ctx context.Context, userID uuid.UUID, text string) (*domain.SafetyTip, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.Invalid("tip", "is required")
	}

	if err := allowSubmission(ctx, s.Limiter, "tips", userID); err != nil {
		return nil, fmt.Errorf("create tip: %w", err)
	}

	tip := &domain.SafetyTip{
		ID:        uuid.New(),
		UserID:    userID,
		Tip:       text,
		CreatedAt: nowOr(s.Now),
	}
	if err := s.Tips.Create(ctx, tip); err != nil {
		return nil, fmt.Errorf("create tip: %w", err)
	}

	return tip, nil
}

// List returns the user's tips, newest first.
func (s *TipService) List(ctx context.Context, userID uuid.UUID) ([]domain.SafetyTip, error) {
	tips, err := s.Tips.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tips: %w", err)
	}
	return tips, nil
}

func (s *TipService) Update(ctx context.Context, userID, tipID uuid.UUID, text string) (*domain.SafetyTip, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < minTipLength {
		return nil, domain.Invalid("tip", "must be at least 5 characters")
	}

	tip, err := s.Tips.Update(ctx, userID, tipID, text)
	if err != nil {
		return nil, fmt.Errorf("update tip %s: %w", tipID, err)
	}
	return tip, nil
}

func (s *TipService) Delete(ctx context.Context, userID, tipID uuid.UUID) error {
	if err := s.Tips.Delete(ctx, userID, tipID); err != nil {
		return fmt.Errorf("delete tip %s: %w", tipID, err)
	}
	return nil
}

func allowSubmission(ctx context.Context, limiter ports.RateLimiter, kind string, userID uuid.UUID) error {
	if limiter == nil {
		return nil
	}

	ok, err := limiter.Allow(ctx, kind+":"+userID.String())
	if err != nil {
		return fmt.Errorf("check submission limit: %w", err)
	}
	if !ok {
		return domain.ErrRateLimited
	}
	return nil
}

func nowOr(now func() time.Time) time.Time {
	if now != nil {
		return now()
	}
	return time.Now().UTC()
}
