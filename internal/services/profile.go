package services

import (
	"context"
	"fmt"
	"safecity-service/internal/domain"
	"safecity-service/internal/platform/obs"
	"safecity-service/internal/ports"
	"strings"

	"github.com/google/uuid"
)

type ProfileService struct {
	Users ports.UserRepository
}

func (s *ProfileService) Get(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return u, nil
}

func (s *ProfileService) UpdateName(ctx context.Context, userID uuid.UUID, name string) (*domain.User, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	u, err := s.Users.UpdateName(ctx, userID, name)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return u, nil
}

func (s *ProfileService) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.Users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// UpdateLocation stores the user's latest position and appends it to their history.
func (s *ProfileService) UpdateLocation(
	ctx context.Context,
	userID uuid.UUID,
	at domain.Coordinates,
) (_ *domain.User, _ *domain.LocationEntry, err error) {
	defer obs.Time(ctx, "profile.UpdateLocation")(&err)

	if !at.Valid() {
		return nil, nil, domain.Invalid("latitude/longitude", "out of range")
	}

	u, entry, err := s.Users.RecordLocation(ctx, userID, at)
	if err != nil {
		return nil, nil, fmt.Errorf("update location: %w", err)
	}
	return u, entry, nil
}
