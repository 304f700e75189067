package ports

import (
	"context"
	"safecity-service/internal/domain"
)

// Contract for querying an external geodata service for map features.
type GeodataProvider interface {
	// Return the features of the given category around center.
	// Any transport, status or decoding failure is returned as an error.
	FetchNearby(ctx context.Context, category domain.Category, center domain.Coordinates) ([]domain.Feature, error)
}
