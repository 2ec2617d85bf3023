package ledger

import (
	"time"

	"github.com/google/uuid"
)

// Ledger event kinds.
const (
	EventExportApproved = "export_approved"
	EventCreditGrant    = "credit_grant"
)

// Entry is a single append-only usage ledger row. A user's balance is
// the sum of delta_credits over their rows; delta values are never
// mutated after insert. SettledAt marks when the export that produced
// the entry finished writing all of its artifacts.
type Entry struct {
	ID           uuid.UUID  `json:"id"`
	UserID       string     `json:"user_id"`
	PlanID       *uuid.UUID `json:"plan_id,omitempty"`
	Event        string     `json:"event"`
	DeltaCredits int        `json:"delta_credits"`
	CreatedAt    time.Time  `json:"created_at"`
	SettledAt    *time.Time `json:"settled_at,omitempty"`
}

// AppendCommand holds the fields for appending a ledger entry.
type AppendCommand struct {
	UserID       string     `json:"user_id"`
	PlanID       *uuid.UUID `json:"plan_id,omitempty"`
	Event        string     `json:"event"`
	DeltaCredits int        `json:"delta_credits"`
}
