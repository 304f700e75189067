package dto

import (
	"safecity-service/internal/domain"
	"time"
)

type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Verified  bool      `json:"verified"`
	Latitude  *float64  `json:"latitude"`
	Longitude *float64  `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
}

func NewUserResponse(u *domain.User) UserResponse {
	res := UserResponse{
		ID:        u.ID.String(),
		Name:      u.Name,
		Email:     u.Email,
		Verified:  u.Verified,
		CreatedAt: u.CreatedAt,
	}
	if u.Location != nil {
		lat, lon := u.Location.Lat, u.Location.Lon
		res.Latitude, res.Longitude = &lat, &lon
	}
	return res
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
}

type LocationEntryResponse struct {
	ID         string    `json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	RecordedAt time.Time `json:"recorded_at"`
}

type UpdateLocationResponse struct {
	User    UserResponse          `json:"user"`
	History LocationEntryResponse `json:"history"`
}

func NewUpdateLocationResponse(u *domain.User, e *domain.LocationEntry) UpdateLocationResponse {
	return UpdateLocationResponse{
		User: NewUserResponse(u),
		History: LocationEntryResponse{
			ID:         e.ID.String(),
			Latitude:   e.Coordinates.Lat,
			Longitude:  e.Coordinates.Lon,
			RecordedAt: e.RecordedAt,
		},
	}
}
