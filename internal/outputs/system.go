package outputs

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for output domain operations.
type System interface {
	Handler() *Handler

	FindByPlan(ctx context.Context, planID uuid.UUID) (*Output, error)

	// Upsert inserts the output row for a plan, or overwrites the existing
	// row when the plan was already processed. Confidence must be within
	// [0, 1]; values outside that range are rejected before any write.
	Upsert(ctx context.Context, cmd UpsertCommand) (*Output, error)

	// SetCSVPath records the exported CSV blob path on the plan's output.
	// It reports whether a matching output row existed; a false return is
	// not an error, the export simply had no row to annotate.
	SetCSVPath(ctx context.Context, planID uuid.UUID, csvPath string) (bool, error)
}
