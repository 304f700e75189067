package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"safecity-service/internal/domain"
	"safecity-service/internal/platform/obs"
	"strings"
)

// SQLPlaceCache is a SQL-backed store of places seen in live lookups,
// unique per (name, type).
type SQLPlaceCache struct {
	DB *sql.DB
}

func NewSQLPlaceCache(db *sql.DB) *SQLPlaceCache {
	return &SQLPlaceCache{DB: db}
}

// Fetch up to limit cached places of a category.
func (s *SQLPlaceCache) ListByCategory(
	ctx context.Context,
	category domain.Category,
	limit int,
) (_ []domain.CachedPlace, err error) {
	defer obs.Time(ctx, "place.cache.ListByCategory")(&err)

	if s.DB == nil {
		return nil, errors.New("place cache: db is nil")
	}

	if limit <= 0 {
		return []domain.CachedPlace{}, nil
	}

	q := `
	SELECT name, latitude, longitude
    FROM locations
    WHERE type = $1
    LIMIT $2;
	`

	rows, err := s.DB.QueryContext(ctx, q, string(category), limit)
	if err != nil {
		return nil, fmt.Errorf("get place cache: query locations table: %w", err)
	}
	defer rows.Close()

	out := make([]domain.CachedPlace, 0, limit)
	for rows.Next() {
		var name string
		var lat, lon float64
		if err := rows.Scan(&name, &lat, &lon); err != nil {
			return nil, fmt.Errorf("get place cache: scan rows: %w", err)
		}
		out = append(out, domain.CachedPlace{
			Name:        name,
			Category:    category,
			Coordinates: domain.Coordinates{Lat: lat, Lon: lon},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get place cache: row iteration: %w", err)
	}

	return out, nil
}

// Store places, overwriting the coordinates of existing (name, type) rows.
func (s *SQLPlaceCache) UpsertMany(ctx context.Context, places []domain.CachedPlace) (err error) {
	defer obs.Time(ctx, "place.cache.UpsertMany")(&err)

	if s.DB == nil {
		return errors.New("place cache: db is nil")
	}

	if len(places) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("upsert place cache: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO locations (name, type, latitude, longitude)
    VALUES ($1, $2, $3, $4)
	ON CONFLICT (name, type) DO UPDATE
	SET latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		updated_at = now();
	`)
	if err != nil {
		return fmt.Errorf("upsert place cache: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, p := range places {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("upsert place cache: empty place name")
		}

		if _, err := stmt.ExecContext(ctx, p.Name, string(p.Category), p.Coordinates.Lat, p.Coordinates.Lon); err != nil {
			return fmt.Errorf("upsert place cache name=%q type=%s: %w", p.Name, p.Category, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert place cache commit: %w", err)
	}

	return nil
}
