package domain

import (
	"time"

	"github.com/google/uuid"
)

// A community report pinned to a location, e.g. a hazard or an incident.
// Reports are only surfaced to nearby users for a limited window.
type Report struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ReportType  string
	Description string
	Coordinates Coordinates
	CreatedAt   time.Time
}
