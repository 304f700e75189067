package ports

import (
	"context"
	"safecity-service/internal/domain"

	"github.com/google/uuid"
)

// Port: account persistence. Lookups return domain.ErrNotFound for missing users.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	MarkVerified(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	UpdateName(ctx context.Context, id uuid.UUID, name string) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Set the user's last known location and append it to their history atomically.
	RecordLocation(ctx context.Context, id uuid.UUID, c domain.Coordinates) (*domain.User, *domain.LocationEntry, error)
}
