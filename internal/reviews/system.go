package reviews

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for review domain operations.
type System interface {
	Handler() *Handler

	Create(ctx context.Context, cmd CreateCommand) (*Review, error)

	// ListByPlan returns all review decisions recorded for a plan, most
	// recent first.
	ListByPlan(ctx context.Context, planID uuid.UUID) ([]Review, error)
}
