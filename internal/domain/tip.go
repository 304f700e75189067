package domain

import (
	"time"

	"github.com/google/uuid"
)

// A safety tip written by a user.
type SafetyTip struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Tip       string
	CreatedAt time.Time
}
