package dto

import (
	"encoding/json"
	"safecity-service/internal/domain"
)

// NearbyRequest accepts the category under either "category" or "type".
type NearbyRequest struct {
	Category  string   `json:"category"`
	Type      string   `json:"type"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// DistanceMiles encodes as a number, or "N/A" when unknown.
type DistanceMiles domain.Distance

func (d DistanceMiles) MarshalJSON() ([]byte, error) {
	if !d.Known {
		return []byte(`"N/A"`), nil
	}
	return json.Marshal(d.Miles)
}

type PlaceResponse struct {
	Name          string        `json:"name"`
	Latitude      float64       `json:"latitude"`
	Longitude     float64       `json:"longitude"`
	DistanceMiles DistanceMiles `json:"distance_miles"`
}

type NearbyResponse struct {
	Places []PlaceResponse `json:"places"`
}

func NewNearbyResponse(res domain.NearbyResult) NearbyResponse {
	out := NearbyResponse{Places: make([]PlaceResponse, 0, len(res.Places))}
	for _, p := range res.Places {
		out.Places = append(out.Places, PlaceResponse{
			Name:          p.Name,
			Latitude:      p.Coordinates.Lat,
			Longitude:     p.Coordinates.Lon,
			DistanceMiles: DistanceMiles(p.Distance),
		})
	}
	return out
}

type AdviceRequest struct {
	LocationType string   `json:"location_type"`
	Situation    string   `json:"situation"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
}

type AdviceResponse struct {
	Advice string `json:"advice"`
}

// LocationRequest is a bare coordinate pair.
type LocationRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}
