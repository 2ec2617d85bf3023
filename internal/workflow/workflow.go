// Package workflow orchestrates plan processing and review across the
// domain systems. Each operation runs as one sequential unit per call:
// every step blocks on its predecessor and the first failure aborts the
// run without compensating already-committed steps.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/planforge/planforge/internal/ledger"
	"github.com/planforge/planforge/internal/outputs"
	"github.com/planforge/planforge/internal/plans"
	"github.com/planforge/planforge/internal/raster"
	"github.com/planforge/planforge/internal/reviews"
	"github.com/planforge/planforge/internal/vectorize"
	"github.com/planforge/planforge/pkg/storage"
)

const exportDebit = -1

// Runtime wires the systems a workflow run touches. Blob writes use
// deterministic keys with last-writer-wins semantics, so retrying a
// failed run overwrites prior artifacts instead of duplicating them.
type Runtime struct {
	Plans     plans.System
	Outputs   outputs.System
	Reviews   reviews.System
	Ledger    ledger.System
	Storage   storage.System
	Raster    raster.Rasterizer
	Vectorize vectorize.Client

	PlanContainer   string
	OutputContainer string

	Logger *slog.Logger
}

// ProcessCommand describes a first-page processing request. PlanID, when
// set, retries processing for an existing plan instead of creating a new
// row; the plan must belong to UserID.
type ProcessCommand struct {
	UserID      string
	PlanID      *uuid.UUID
	Name        string
	Data        []byte
	ContentType string
	PxPerFt     float64
}

// ProcessResult carries the processed plan, its recorded output, and the
// decoded SVG bytes for immediate display.
type ProcessResult struct {
	Plan   *plans.Plan     `json:"plan"`
	Output *outputs.Output `json:"output"`
	SVG    []byte          `json:"svg"`
}

// ApproveCommand describes an export approval. PlanID, when set, names
// the plan explicitly; when nil the most recently created plan
// system-wide is approved, which races under concurrent uploads and is
// kept only for compatibility. Metrics, when nil, are read back from the
// plan's recorded output.
type ApproveCommand struct {
	UserID  string
	PlanID  *uuid.UUID
	Metrics *vectorize.Metrics
}

// ExportRecord reports what an approval wrote. When the run fails after
// the ledger debit, the entry is left unsettled and shows up in the
// ledger's unsettled listing for reconciliation.
type ExportRecord struct {
	Plan          *plans.Plan     `json:"plan"`
	Review        *reviews.Review `json:"review"`
	LedgerEntry   *ledger.Entry   `json:"ledger_entry"`
	CSVPath       string          `json:"csv_path"`
	OutputUpdated bool            `json:"output_updated"`
}

// ProcessFirstPage rasterizes the submitted document, vectorizes its
// first page through the remote service, and records the result. On
// success exactly one output row exists for the plan and its status is
// processed; status flips only as the final step, so a failed run leaves
// the plan safe to retry in full. No step is retried automatically.
func (r *Runtime) ProcessFirstPage(ctx context.Context, cmd ProcessCommand) (*ProcessResult, error) {
	plan, err := r.resolvePlan(ctx, cmd)
	if err != nil {
		return nil, err
	}

	pages, err := r.Raster.Rasterize(ctx, cmd.Data, cmd.ContentType)
	if err != nil {
		return nil, err
	}
	if len(pages) == 0 {
		return nil, ErrNoPages
	}

	imageKey := pageImageKey(cmd.UserID, plan.ID)
	if err := r.Storage.Upload(
		ctx, r.PlanContainer, imageKey,
		bytes.NewReader(pages[0].Data), pages[0].ContentType,
	); err != nil {
		return nil, fmt.Errorf("%w: upload page image: %w", ErrStorage, err)
	}

	imageURL, err := r.Storage.PublicURL(r.PlanContainer, imageKey)
	if err != nil {
		return nil, fmt.Errorf("%w: resolve page image url: %w", ErrStorage, err)
	}

	result, err := r.Vectorize.Vectorize(ctx, imageURL, cmd.PxPerFt)
	if err != nil {
		return nil, err
	}

	vectorKey := svgKey(cmd.UserID, plan.ID)
	if err := r.Storage.Upload(
		ctx, r.OutputContainer, vectorKey,
		bytes.NewReader(result.SVG), "image/svg+xml",
	); err != nil {
		return nil, fmt.Errorf("%w: upload svg: %w", ErrStorage, err)
	}

	output, err := r.Outputs.Upsert(ctx, outputs.UpsertCommand{
		PlanID:     plan.ID,
		SVGPath:    vectorKey,
		Metrics:    result.RawMetrics,
		Confidence: result.Confidence,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: record output: %w", ErrPersistence, err)
	}

	plan, err = r.Plans.MarkProcessed(ctx, plan.ID, len(pages))
	if err != nil {
		return nil, fmt.Errorf("%w: mark plan processed: %w", ErrPersistence, err)
	}

	r.Logger.Info("plan processed",
		"plan_id", plan.ID,
		"user_id", cmd.UserID,
		"page_count", len(pages),
		"confidence", output.Confidence,
	)

	return &ProcessResult{
		Plan:   plan,
		Output: output,
		SVG:    result.SVG,
	}, nil
}

// ApproveAndExport records an approval for the target plan, debits one
// credit, and materializes the CSV export. The debit is unconditional
// once reached; there is no balance check. The ledger entry is appended
// before the upload and settled only after all artifacts are written, so
// a run that dies mid-export leaves an unsettled debit rather than a
// silent inconsistency. Committed review and ledger rows are never
// rolled back.
func (r *Runtime) ApproveAndExport(ctx context.Context, cmd ApproveCommand) (*ExportRecord, error) {
	plan, err := r.resolveReviewTarget(ctx, cmd)
	if err != nil {
		return nil, err
	}

	review, err := r.Reviews.Create(ctx, reviews.CreateCommand{
		PlanID: plan.ID,
		Status: reviews.StatusApproved,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: record review: %w", ErrPersistence, err)
	}

	entry, err := r.Ledger.Append(ctx, ledger.AppendCommand{
		UserID:       cmd.UserID,
		PlanID:       &plan.ID,
		Event:        ledger.EventExportApproved,
		DeltaCredits: exportDebit,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: debit ledger: %w", ErrPersistence, err)
	}

	metrics, err := r.resolveMetrics(ctx, cmd, plan.ID)
	if err != nil {
		return nil, err
	}

	// Past the debit, failures surface as ErrExportIncomplete so callers
	// know a charged export needs reconciliation, with the storage cause
	// still wrapped underneath.
	exportKey := csvKey(cmd.UserID, plan.ID)
	if err := r.Storage.Upload(
		ctx, r.OutputContainer, exportKey,
		bytes.NewReader(buildMetricsCSV(metrics)), "text/csv",
	); err != nil {
		return nil, fmt.Errorf("%w: %w: upload csv: %w", ErrExportIncomplete, ErrStorage, err)
	}

	// A missing output row is an accepted no-op; the export artifact
	// still exists at the deterministic path.
	updated, err := r.Outputs.SetCSVPath(ctx, plan.ID, exportKey)
	if err != nil {
		return nil, fmt.Errorf("%w: record csv path: %w", ErrPersistence, err)
	}

	entry, err = r.Ledger.Settle(ctx, entry.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: settle ledger entry: %w", ErrPersistence, err)
	}

	r.Logger.Info("plan export approved",
		"plan_id", plan.ID,
		"user_id", cmd.UserID,
		"csv_path", exportKey,
		"output_updated", updated,
	)

	return &ExportRecord{
		Plan:          plan,
		Review:        review,
		LedgerEntry:   entry,
		CSVPath:       exportKey,
		OutputUpdated: updated,
	}, nil
}

func (r *Runtime) resolvePlan(ctx context.Context, cmd ProcessCommand) (*plans.Plan, error) {
	if cmd.PlanID == nil {
		plan, err := r.Plans.Create(ctx, plans.CreateCommand{
			OwnerID: cmd.UserID,
			Name:    cmd.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: create plan: %w", ErrPersistence, err)
		}
		return plan, nil
	}

	plan, err := r.Plans.Find(ctx, *cmd.PlanID)
	if err != nil {
		return nil, err
	}
	if plan.OwnerID != cmd.UserID {
		return nil, plans.ErrNotOwner
	}
	return plan, nil
}

func (r *Runtime) resolveReviewTarget(ctx context.Context, cmd ApproveCommand) (*plans.Plan, error) {
	if cmd.PlanID != nil {
		plan, err := r.Plans.Find(ctx, *cmd.PlanID)
		if err != nil {
			return nil, err
		}
		return plan, nil
	}

	plan, err := r.Plans.Latest(ctx)
	if err != nil {
		if errors.Is(err, plans.ErrNotFound) {
			return nil, ErrNoPlans
		}
		return nil, err
	}
	return plan, nil
}

func (r *Runtime) resolveMetrics(ctx context.Context, cmd ApproveCommand, planID uuid.UUID) (vectorize.Metrics, error) {
	if cmd.Metrics != nil {
		return *cmd.Metrics, nil
	}

	output, err := r.Outputs.FindByPlan(ctx, planID)
	if err != nil {
		if errors.Is(err, outputs.ErrNotFound) {
			return vectorize.Metrics{}, fmt.Errorf(
				"%w: no metrics supplied and no output recorded for plan %s",
				ErrExportIncomplete, planID,
			)
		}
		return vectorize.Metrics{}, fmt.Errorf("%w: load output metrics: %w", ErrPersistence, err)
	}

	var metrics vectorize.Metrics
	if err := json.Unmarshal(output.Metrics, &metrics); err != nil {
		return vectorize.Metrics{}, fmt.Errorf("%w: decode output metrics: %w", ErrExportIncomplete, err)
	}
	return metrics, nil
}
