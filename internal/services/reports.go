package services

import (
	"context"
	"fmt"
	"safecity-service/internal/domain"
	"safecity-service/internal/platform/obs"
	"safecity-service/internal/ports"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	reportRadiusMiles = 20.0
	reportWindow      = 24 * time.Hour
)

type CreateReportRequest struct {
	ReportType  string
	Description string
	Location    domain.Coordinates
}

// ReportService records community reports and lists the recent ones near a point.
type ReportService struct {
	Reports ports.ReportRepository
	// Limiter is optional; nil disables submission limits.
	Limiter ports.RateLimiter
	Now     func() time.Time
}

func (s *ReportService) Create(ctx context.Context, userID uuid.UUID, req CreateReportRequest) (*domain.Report, error) {
	reportType := strings.TrimSpace(req.ReportType)
	if reportType == "" {
		return nil, domain.Invalid("report_type", "is required")
	}
	if err := validateLocation(req.Location); err != nil {
		return nil, err
	}

	if err := allowSubmission(ctx, s.Limiter, "reports", userID); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	r := &domain.Report{
		ID:          uuid.New(),
		UserID:      userID,
		ReportType:  reportType,
		Description: strings.TrimSpace(req.Description),
		Coordinates: req.Location,
		CreatedAt:   nowOr(s.Now),
	}
	if err := s.Reports.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	return r, nil
}

// Nearby returns reports from the last 24 hours within 20 miles of at, newest first.
func (s *ReportService) Nearby(ctx context.Context, at domain.Coordinates) (_ []domain.Report, err error) {
	defer obs.Time(ctx, "reports.Nearby")(&err)

	if err := validateLocation(at); err != nil {
		return nil, err
	}

	recent, err := s.Reports.ListSince(ctx, nowOr(s.Now).Add(-reportWindow))
	if err != nil {
		return nil, fmt.Errorf("nearby reports: %w", err)
	}

	out := make([]domain.Report, 0, len(recent))
	for _, r := range recent {
		if domain.DistanceMiles(at, r.Coordinates) <= reportRadiusMiles {
			out = append(out, r)
		}
	}

	return out, nil
}
