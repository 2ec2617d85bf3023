package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/planforge/planforge/pkg/pagination"
	"github.com/planforge/planforge/pkg/query"
	"github.com/planforge/planforge/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a ledger repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "ledger"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Append(ctx context.Context, cmd AppendCommand) (*Entry, error) {
	if cmd.Event != EventExportApproved && cmd.Event != EventCreditGrant {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEvent, cmd.Event)
	}

	q := `
		INSERT INTO usage_ledger(id, user_id, plan_id, event, delta_credits)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, user_id, plan_id, event, delta_credits, created_at, settled_at`

	insertArgs := []any{uuid.New(), cmd.UserID, cmd.PlanID, cmd.Event, cmd.DeltaCredits}

	e, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Entry, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanEntry)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("ledger entry appended",
		"id", e.ID,
		"user_id", e.UserID,
		"event", e.Event,
		"delta_credits", e.DeltaCredits,
	)
	return &e, nil
}

func (r *repo) Settle(ctx context.Context, id uuid.UUID) (*Entry, error) {
	q := `
		UPDATE usage_ledger
		SET settled_at = COALESCE(settled_at, NOW())
		WHERE id = $1
		RETURNING id, user_id, plan_id, event, delta_credits, created_at, settled_at`

	e, err := repository.QueryOne(ctx, r.db, q, []any{id}, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &e, nil
}

func (r *repo) Balance(ctx context.Context, userID string) (int, error) {
	q := `
		SELECT COALESCE(SUM(delta_credits), 0)
		FROM usage_ledger
		WHERE user_id = $1`

	var balance int
	if err := r.db.QueryRowContext(ctx, q, userID).Scan(&balance); err != nil {
		return 0, fmt.Errorf("sum ledger: %w", err)
	}
	return balance, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.NewBuilder(projection, defaultSort)
	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count ledger: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query ledger: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) ListUnsettled(ctx context.Context, userID string) ([]Entry, error) {
	q := `
		SELECT l.id, l.user_id, l.plan_id, l.event, l.delta_credits, l.created_at, l.settled_at
		FROM public.usage_ledger l
		WHERE l.user_id = $1 AND l.settled_at IS NULL
		ORDER BY l.created_at ASC`

	items, err := repository.QueryMany(ctx, r.db, q, []any{userID}, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query unsettled ledger: %w", err)
	}
	return items, nil
}
