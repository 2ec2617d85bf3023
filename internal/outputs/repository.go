package outputs

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

// New creates an output repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "outputs"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) FindByPlan(ctx context.Context, planID uuid.UUID) (*Output, error) {
	q, args := query.NewBuilder(projection).BuildSingle("PlanID", planID)

	o, err := repository.QueryOne(ctx, r.db, q, args, scanOutput)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &o, nil
}

func (r *repo) Upsert(ctx context.Context, cmd UpsertCommand) (*Output, error) {
	if cmd.Confidence < 0 || cmd.Confidence > 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfidence, cmd.Confidence)
	}

	q := `
		INSERT INTO outputs(id, plan_id, svg_path, metrics, confidence)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (plan_id) DO UPDATE
		SET svg_path = EXCLUDED.svg_path,
			metrics = EXCLUDED.metrics,
			confidence = EXCLUDED.confidence,
			csv_path = NULL,
			created_at = NOW()
		RETURNING id, plan_id, svg_path, dxf_path, csv_path, metrics, confidence, created_at`

	upsertArgs := []any{uuid.New(), cmd.PlanID, cmd.SVGPath, cmd.Metrics, cmd.Confidence}

	o, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Output, error) {
		return repository.QueryOne(ctx, tx, q, upsertArgs, scanOutput)
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("output recorded", "plan_id", o.PlanID, "confidence", o.Confidence)
	return &o, nil
}

func (r *repo) SetCSVPath(ctx context.Context, planID uuid.UUID, csvPath string) (bool, error) {
	q := `
		UPDATE outputs
		SET csv_path = $1
		WHERE plan_id = $2`

	result, err := r.db.ExecContext(ctx, q, csvPath, planID)
	if err != nil {
		return false, fmt.Errorf("set csv path: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("set csv path: %w", err)
	}

	return rows > 0, nil
}
