package ports

import (
	"context"
	"safecity-service/internal/domain"
	"time"
)

type ReportRepository interface {
	Create(ctx context.Context, r *domain.Report) error
	// Return reports created after since, newest first.
	ListSince(ctx context.Context, since time.Time) ([]domain.Report, error)
}
