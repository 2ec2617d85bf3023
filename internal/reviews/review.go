package reviews

import (
	"time"

	"github.com/google/uuid"
)

// Review statuses. Rows are append-only; a plan's review history is the
// full set of its rows, not a mutable state machine.
const (
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Review records a reviewer decision for a plan.
type Review struct {
	ID        uuid.UUID `json:"id"`
	PlanID    uuid.UUID `json:"plan_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateCommand holds the fields for recording a review decision.
type CreateCommand struct {
	PlanID uuid.UUID `json:"plan_id"`
	Status string    `json:"status"`
}
