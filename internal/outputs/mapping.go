package outputs

import (
	"github.com/planforge/planforge/pkg/query"
	"github.com/planforge/planforge/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "outputs", "o").
	Project("id", "ID").
	Project("plan_id", "PlanID").
	Project("svg_path", "SVGPath").
	Project("dxf_path", "DXFPath").
	Project("csv_path", "CSVPath").
	Project("metrics", "Metrics").
	Project("confidence", "Confidence").
	Project("created_at", "CreatedAt")

func scanOutput(s repository.Scanner) (Output, error) {
	var o Output
	err := s.Scan(
		&o.ID,
		&o.PlanID,
		&o.SVGPath,
		&o.DXFPath,
		&o.CSVPath,
		&o.Metrics,
		&o.Confidence,
		&o.CreatedAt,
	)
	return o, err
}
