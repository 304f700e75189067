package ports

import (
	"context"
	"safecity-service/internal/domain"
)

// Persistent store of previously seen places, keyed by (name, category).
type PlaceCache interface {
	// Insert places, overwriting rows that share a (name, category) key.
	UpsertMany(ctx context.Context, places []domain.CachedPlace) error
	// Return up to limit cached places of the given category.
	ListByCategory(ctx context.Context, category domain.Category, limit int) ([]domain.CachedPlace, error)
}
