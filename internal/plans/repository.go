package plans

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

// New creates a plan repository implementing the System interface.
func New(
	db *sql.DB,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "plans"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Plan], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count plans: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanPlan)
	if err != nil {
		return nil, fmt.Errorf("query plans: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Plan, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPlan)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Latest(ctx context.Context) (*Plan, error) {
	// BuildPage carries the created_at DESC default sort; page one of size
	// one is the newest row.
	q, args := query.NewBuilder(projection, defaultSort).BuildPage(1, 1)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanPlan)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Plan, error) {
	q := `
		INSERT INTO plans(id, owner_id, name)
		VALUES ($1, $2, $3)
		RETURNING id, owner_id, name, page_count, status, created_at, updated_at`

	insertArgs := []any{uuid.New(), cmd.OwnerID, cmd.Name}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Plan, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanPlan)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("plan created", "id", p.ID, "owner_id", p.OwnerID, "name", p.Name)
	return &p, nil
}

func (r *repo) MarkProcessed(ctx context.Context, id uuid.UUID, pageCount int) (*Plan, error) {
	q := `
		UPDATE plans
		SET page_count = $1, status = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING id, owner_id, name, page_count, status, created_at, updated_at`

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Plan, error) {
		return repository.QueryOne(ctx, tx, q, []any{pageCount, StatusProcessed, id}, scanPlan)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("plan processed", "id", p.ID, "page_count", p.PageCount)
	return &p, nil
}
