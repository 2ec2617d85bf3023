package outputs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Output records the artifacts produced by processing a plan's first page.
// Each plan has at most one output row; reprocessing overwrites it in place.
type Output struct {
	ID         uuid.UUID       `json:"id"`
	PlanID     uuid.UUID       `json:"plan_id"`
	SVGPath    string          `json:"svg_path"`
	DXFPath    *string         `json:"dxf_path,omitempty"`
	CSVPath    *string         `json:"csv_path,omitempty"`
	Metrics    json.RawMessage `json:"metrics"`
	Confidence float64         `json:"confidence"`
	CreatedAt  time.Time       `json:"created_at"`
}

// UpsertCommand holds the fields written when a processing run records
// its vectorization result for a plan.
type UpsertCommand struct {
	PlanID     uuid.UUID       `json:"plan_id"`
	SVGPath    string          `json:"svg_path"`
	Metrics    json.RawMessage `json:"metrics"`
	Confidence float64         `json:"confidence"`
}
