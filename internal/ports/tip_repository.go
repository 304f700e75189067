package ports

import (
	"context"
	"safecity-service/internal/domain"

	"github.com/google/uuid"
)

// Port: safety tip persistence. Update and Delete are scoped to the owning
// user and return domain.ErrNotFound when no owned tip matches.
type TipRepository interface {
	Create(ctx context.Context, tip *domain.SafetyTip) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SafetyTip, error)
	Update(ctx context.Context, userID, tipID uuid.UUID, text string) (*domain.SafetyTip, error)
	Delete(ctx context.Context, userID, tipID uuid.UUID) error
}
