package handlers

import (
	"net/http"
	"safecity-service/internal/api/dto"
	"safecity-service/internal/services"

	"github.com/google/uuid"
)

// UserHandler exposes the caller's profile, tips and location.
type UserHandler struct {
	Profiles *services.ProfileService
	Tips     *services.TipService
}

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	u, err := h.Profiles.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "get profile", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewUserResponse(u))
}

func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	u, err := h.Profiles.UpdateName(r.Context(), userID, req.Name)
	if err != nil {
		writeServiceError(w, r, "update profile", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewUserResponse(u))
}

func (h *UserHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.Profiles.Delete(r.Context(), userID); err != nil {
		writeServiceError(w, r, "delete profile", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MessageResponse{Message: "Account deleted"})
}

func (h *UserHandler) ListTips(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	tips, err := h.Tips.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, "list tips", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewListTipsResponse(tips))
}

func (h *UserHandler) UpdateTip(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTipRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tipID, ok := parseTipID(w, r, req.TipID)
	if !ok {
		return
	}

	tip, err := h.Tips.Update(r.Context(), userID, tipID, req.Tip)
	if err != nil {
		writeServiceError(w, r, "update tip", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewTipResponse(tip))
}

func (h *UserHandler) DeleteTip(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.DeleteTipRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tipID, ok := parseTipID(w, r, req.TipID)
	if !ok {
		return
	}

	if err := h.Tips.Delete(r.Context(), userID, tipID); err != nil {
		writeServiceError(w, r, "delete tip", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.MessageResponse{Message: "Tip deleted"})
}

func (h *UserHandler) UpdateLocation(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req dto.LocationRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	at, ok := coordinates(w, r, req.Latitude, req.Longitude)
	if !ok {
		return
	}

	u, entry, err := h.Profiles.UpdateLocation(r.Context(), userID, at)
	if err != nil {
		writeServiceError(w, r, "update location", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewUpdateLocationResponse(u, entry))
}

func parseTipID(w http.ResponseWriter, r *http.Request, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, "tip_id must be a valid id")
		return uuid.Nil, false
	}
	return id, true
}
