package plans

import (
	"context"

	"github.com/google/uuid"

	"github.com/planforge/planforge/pkg/pagination"
)

// System defines the public contract for plan domain operations.
type System interface {
	Handler() *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Plan], error)

	Find(ctx context.Context, id uuid.UUID) (*Plan, error)

	// Latest returns the most recently created plan system-wide. This is the
	// legacy review-target resolution: it races when plans are created
	// concurrently, so callers should prefer explicit plan ids.
	Latest(ctx context.Context) (*Plan, error)

	Create(ctx context.Context, cmd CreateCommand) (*Plan, error)

	// MarkProcessed records the rasterized page count and flips the plan
	// status to processed. It is the final step of a processing run; a plan
	// is never observable as processed with partial artifacts.
	MarkProcessed(ctx context.Context, id uuid.UUID, pageCount int) (*Plan, error)
}
