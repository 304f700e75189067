package handlers

import (
	"net/http"
	"safecity-service/internal/api/dto"
	"safecity-service/internal/services"
	"strings"
)

const placesSourceHeader = "X-Places-Source"

// LocationHandler serves nearby places, tip submission and safety advice.
type LocationHandler struct {
	Finder *services.NearbyPlaceFinder
	Tips   *services.TipService
	Advice *services.AdviceService
}

func (h *LocationHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	var req dto.NearbyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = strings.TrimSpace(req.Type)
	}

	at, ok := coordinates(w, r, req.Latitude, req.Longitude)
	if !ok {
		return
	}

	res, err := h.Finder.Find(r.Context(), category, at)
	if err != nil {
		writeServiceError(w, r, "find nearby places", err)
		return
	}

	w.Header().Set(placesSourceHeader, res.Source.String())
	writeJSON(w, r, http.StatusOK, dto.NewNearbyResponse(res))
}

func (h *LocationHandler) SubmitTip(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateTipRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tip, err := h.Tips.Create(r.Context(), userID, req.Tip)
	if err != nil {
		writeServiceError(w, r, "submit tip", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, dto.NewTipResponse(tip))
}

func (h *LocationHandler) Advise(w http.ResponseWriter, r *http.Request) {
	var req dto.AdviceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	at, ok := coordinates(w, r, req.Latitude, req.Longitude)
	if !ok {
		return
	}

	advice, err := h.Advice.Advise(r.Context(), services.AdviceRequest{
		LocationType: req.LocationType,
		Situation:    req.Situation,
		Location:     at,
	})
	if err != nil {
		writeServiceError(w, r, "safety advice", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.AdviceResponse{Advice: advice})
}
