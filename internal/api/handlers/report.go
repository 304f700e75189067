package handlers

import (
	"net/http"
	"safecity-service/internal/api/dto"
	"safecity-service/internal/services"
)

type ReportHandler struct {
	Reports *services.ReportService
}

func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	at, ok := coordinates(w, r, req.Latitude, req.Longitude)
	if !ok {
		return
	}

	report, err := h.Reports.Create(r.Context(), userID, services.CreateReportRequest{
		ReportType:  req.ReportType,
		Description: req.Description,
		Location:    at,
	})
	if err != nil {
		writeServiceError(w, r, "create report", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewReportResponse(report))
}

// Nearby lists recent reports around the posted coordinates.
func (h *ReportHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	var req dto.LocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	at, ok := coordinates(w, r, req.Latitude, req.Longitude)
	if !ok {
		return
	}

	reports, err := h.Reports.Nearby(r.Context(), at)
	if err != nil {
		writeServiceError(w, r, "nearby reports", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewListReportsResponse(reports))
}
