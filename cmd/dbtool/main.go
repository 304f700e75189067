package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"safecity-service/internal/adapters/repositories"
	"safecity-service/internal/config"
	"safecity-service/internal/platform/db"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// dbtool initializes the Postgres schema and optionally seeds the place cache.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sqlDB, err := db.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	seedPath := config.Get("SEED_PATH", "")
	if err := initAndSeed(ctx, sqlDB, seedPath); err != nil {
		log.Fatal(err)
	}
}

func initAndSeed(ctx context.Context, sqlDB *sql.DB, seedPath string) error {
	log.Println("Initializing database schema...")
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}
	log.Println("Schema ready.")

	if seedPath == "" {
		log.Println("SEED_PATH not set; skipping place seed.")
		return nil
	}

	log.Printf("Seeding places from %s...", seedPath)
	n, err := repositories.SeedPlacesFromJSON(ctx, sqlDB, seedPath)
	if err != nil {
		return fmt.Errorf("seeding failed: %w", err)
	}
	log.Printf("Seeding complete. places=%d", n)

	return nil
}
