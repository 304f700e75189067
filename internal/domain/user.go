package domain

import (
	"time"

	"github.com/google/uuid"
)

// A registered account. Location is nil until the user first reports one.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Verified     bool
	Location     *Coordinates
	CreatedAt    time.Time
}

// A single entry in a user's location history.
type LocationEntry struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Coordinates Coordinates
	RecordedAt  time.Time
}
