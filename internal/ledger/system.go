package ledger

import (
	"context"

	"github.com/google/uuid"

	"github.com/planforge/planforge/pkg/pagination"
)

// System defines the public contract for usage ledger operations.
type System interface {
	Handler() *Handler

	// Append inserts a new ledger entry. Entries are never updated or
	// deleted; corrections are expressed as compensating entries.
	Append(ctx context.Context, cmd AppendCommand) (*Entry, error)

	// Settle stamps settled_at on an entry once the export it charged
	// for has written all of its artifacts. Settling an already settled
	// entry is a no-op.
	Settle(ctx context.Context, id uuid.UUID) (*Entry, error)

	// Balance returns the sum of delta_credits across a user's entries.
	Balance(ctx context.Context, userID string) (int, error)

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Entry], error)

	// ListUnsettled returns entries appended but never settled, oldest
	// first. These are exports that failed partway and may need
	// reconciliation.
	ListUnsettled(ctx context.Context, userID string) ([]Entry, error)
}
