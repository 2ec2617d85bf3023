// Package plans implements the floor-plan domain for PlanForge.
// It provides types and data access for plan submission records: one row
// per submitted document, tracking page count and processing status.
package plans

import (
	"time"

	"github.com/google/uuid"
)

// Plan lifecycle statuses. Review and export are derived states (presence of
// review rows and an output csv path), not plan statuses.
const (
	StatusCreated   = "created"
	StatusProcessed = "processed"
)

// Plan represents a submitted floor-plan document and its processing record.
// OwnerID is the opaque authenticated user id; it prefixes all blob paths
// for the plan.
type Plan struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Name      string    `json:"name"`
	PageCount int       `json:"page_count"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to register a new plan.
type CreateCommand struct {
	OwnerID string
	Name    string
}
