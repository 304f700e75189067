package dto

import (
	"safecity-service/internal/domain"
	"time"
)

type CreateReportRequest struct {
	ReportType  string   `json:"report_type"`
	Description string   `json:"description"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
}

type ReportResponse struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	ReportType  string    `json:"report_type"`
	Description string    `json:"description"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
}

func NewReportResponse(r *domain.Report) ReportResponse {
	return ReportResponse{
		ID:          r.ID.String(),
		UserID:      r.UserID.String(),
		ReportType:  r.ReportType,
		Description: r.Description,
		Latitude:    r.Coordinates.Lat,
		Longitude:   r.Coordinates.Lon,
		CreatedAt:   r.CreatedAt,
	}
}

func NewListReportsResponse(reports []domain.Report) ListReportsResponse {
	res := ListReportsResponse{Reports: make([]ReportResponse, 0, len(reports))}
	for i := range reports {
		res.Reports = append(res.Reports, NewReportResponse(&reports[i]))
	}
	return res
}
