package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"safecity-service/internal/auth"
	"safecity-service/internal/domain"
	"safecity-service/internal/platform/obs"

	"github.com/google/uuid"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object into dst, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// statusFor maps service errors to an HTTP status and a client-safe message.
// ok is false for errors that have no client-facing meaning.
func statusFor(err error) (status int, msg string, ok bool) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error(), true
	case errors.Is(err, domain.ErrUnsupportedCategory):
		return http.StatusBadRequest, "Unsupported place type", true
	case errors.Is(err, domain.ErrInvalidLocation):
		return http.StatusUnprocessableEntity, "Location unavailable", true
	case errors.Is(err, domain.ErrNoPlacesFound):
		return http.StatusNotFound, "No places found", true
	case errors.Is(err, domain.ErrUpstreamUnavailable):
		return http.StatusServiceUnavailable, "Failed to fetch nearby places", true
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "Not found", true
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusBadRequest, "User already exists", true
	case errors.Is(err, domain.ErrNotVerified):
		return http.StatusBadRequest, "Account not verified", true
	case errors.Is(err, domain.ErrInvalidPassword):
		return http.StatusBadRequest, "Invalid password", true
	case errors.Is(err, domain.ErrOTPExpired):
		return http.StatusBadRequest, "OTP has expired", true
	case errors.Is(err, domain.ErrInvalidOTP):
		return http.StatusBadRequest, "Invalid OTP", true
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, "Too many submissions, try again later", true
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized", true
	}
	return http.StatusInternalServerError, "internal server error", false
}

// writeServiceError logs internal failures and writes the mapped response.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, msg, ok := statusFor(err)
	if !ok {
		log.Printf("req_id=%s %s failed: %v", obs.RequestID(r.Context()), op, err)
	}
	writeError(w, r, status, msg)
}

// callerID returns the authenticated user, writing a 401 when absent.
func callerID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	c, ok := auth.ClaimsFrom(r.Context())
	if !ok {
		writeError(w, r, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, false
	}
	return c.UserID, true
}

func coordinates(w http.ResponseWriter, r *http.Request, lat, lon *float64) (domain.Coordinates, bool) {
	if lat == nil || lon == nil {
		writeError(w, r, http.StatusBadRequest, "latitude and longitude are required")
		return domain.Coordinates{}, false
	}
	return domain.Coordinates{Lat: *lat, Lon: *lon}, true
}
