package reviews

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/planforge/planforge/pkg/query"
	"github.com/planforge/planforge/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// New creates a review repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "reviews"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Review, error) {
	if cmd.Status != StatusApproved && cmd.Status != StatusRejected {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, cmd.Status)
	}

	q := `
		INSERT INTO reviews(id, plan_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, plan_id, status, created_at`

	insertArgs := []any{uuid.New(), cmd.PlanID, cmd.Status}

	rv, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Review, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanReview)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("review recorded", "plan_id", rv.PlanID, "status", rv.Status)
	return &rv, nil
}

func (r *repo) ListByPlan(ctx context.Context, planID uuid.UUID) ([]Review, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("PlanID", planID).
		Build()

	items, err := repository.QueryMany(ctx, r.db, q, args, scanReview)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	return items, nil
}
