package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"safecity-service/internal/adapters/cache"
	"safecity-service/internal/domain"
	"strings"
)

// Initialize the Postgres schema. Safe to run repeatedly.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createUsersQuery := `
	CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createLocationsQuery := `
	CREATE TABLE IF NOT EXISTS locations (
        id BIGSERIAL PRIMARY KEY,
        name TEXT NOT NULL,
        type TEXT NOT NULL,
        latitude DOUBLE PRECISION NOT NULL,
        longitude DOUBLE PRECISION NOT NULL,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
        UNIQUE (name, type)
    );
	`

	createTipsQuery := `
	CREATE TABLE IF NOT EXISTS safety_tips (
        id UUID PRIMARY KEY,
        user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        tip TEXT NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
	`

	createReportsQuery := `
	CREATE TABLE IF NOT EXISTS community_reports (
        id UUID PRIMARY KEY,
        user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        report_type TEXT NOT NULL,
        description TEXT NOT NULL DEFAULT '',
        latitude DOUBLE PRECISION NOT NULL,
        longitude DOUBLE PRECISION NOT NULL,
        created_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
	`

	createHistoryQuery := `
	CREATE TABLE IF NOT EXISTS location_history (
        id UUID PRIMARY KEY,
        user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
        latitude DOUBLE PRECISION NOT NULL,
        longitude DOUBLE PRECISION NOT NULL,
        recorded_at TIMESTAMPTZ NOT NULL DEFAULT now()
    );
	`

	createIndexQueries := []string{
		`CREATE INDEX IF NOT EXISTS idx_locations_type ON locations(type);`,
		`CREATE INDEX IF NOT EXISTS idx_safety_tips_user_created ON safety_tips(user_id, created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_community_reports_created ON community_reports(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_location_history_user ON location_history(user_id, recorded_at DESC);`,
	}

	statements := []string{
		createUsersQuery,
		createLocationsQuery,
		createTipsQuery,
		createReportsQuery,
		createHistoryQuery,
	}
	statements = append(statements, createIndexQueries...)

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type PlaceSeed struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ParsePlaceSeeds validates seed entries read from JSON.
func ParsePlaceSeeds(data []byte) ([]domain.CachedPlace, error) {
	var seeds []PlaceSeed
	if err := json.Unmarshal(data, &seeds); err != nil {
		return nil, fmt.Errorf("seed places: parse json: %w", err)
	}

	places := make([]domain.CachedPlace, 0, len(seeds))
	for i, item := range seeds {
		name := strings.TrimSpace(item.Name)
		if name == "" {
			return nil, fmt.Errorf("seed places: item at index %d: name cannot be empty", i+1)
		}

		cat, err := domain.ParseCategory(strings.TrimSpace(item.Type))
		if err != nil {
			return nil, fmt.Errorf("seed places: item at index %d: %w", i+1, err)
		}

		coords := domain.Coordinates{Lat: item.Latitude, Lon: item.Longitude}
		if !coords.Valid() || coords.IsSentinel() {
			return nil, fmt.Errorf("seed places: item at index %d: invalid coordinates", i+1)
		}

		places = append(places, domain.CachedPlace{Name: name, Category: cat, Coordinates: coords})
	}

	return places, nil
}

// Populate the place cache from a JSON file so the fallback path has data
// before the first live lookup.
func SeedPlacesFromJSON(ctx context.Context, db *sql.DB, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	places, err := ParsePlaceSeeds(bytes)
	if err != nil {
		return 0, err
	}

	if err := cache.NewSQLPlaceCache(db).UpsertMany(ctx, places); err != nil {
		return 0, fmt.Errorf("seed places: %w", err)
	}

	return len(places), nil
}
