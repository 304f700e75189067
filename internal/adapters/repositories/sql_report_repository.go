package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"safecity-service/internal/domain"
	"safecity-service/internal/platform/obs"
	"time"
)

// SQL-backed implementation of the ReportRepository port.
type SQLReportRepository struct{ DB *sql.DB }

func NewSQLReportRepository(db *sql.DB) *SQLReportRepository {
	return &SQLReportRepository{DB: db}
}

func (s *SQLReportRepository) Create(ctx context.Context, r *domain.Report) error {
	if s.DB == nil {
		return errors.New("sql report repository: DB is nil")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT INTO community_reports (id, user_id, report_type, description, latitude, longitude, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`, r.ID, r.UserID, r.ReportType, r.Description, r.Coordinates.Lat, r.Coordinates.Lon, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("create report: insert: %w", err)
	}
	return nil
}

// Return reports created after since, newest first.
func (s *SQLReportRepository) ListSince(ctx context.Context, since time.Time) (_ []domain.Report, err error) {
	defer obs.Time(ctx, "reports.ListSince")(&err)

	if s.DB == nil {
		return nil, errors.New("sql report repository: DB is nil")
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT id, user_id, report_type, description, latitude, longitude, created_at
	FROM community_reports
	WHERE created_at > $1
	ORDER BY created_at DESC;
	`, since)
	if err != nil {
		return nil, fmt.Errorf("list reports: query community_reports table: %w", err)
	}
	defer rows.Close()

	reports := make([]domain.Report, 0, 64)
	for rows.Next() {
		var r domain.Report
		if err := rows.Scan(&r.ID, &r.UserID, &r.ReportType, &r.Description, &r.Coordinates.Lat, &r.Coordinates.Lon, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("list reports: scan row: %w", err)
		}
		reports = append(reports, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reports: row iteration: %w", err)
	}

	return reports, nil
}
