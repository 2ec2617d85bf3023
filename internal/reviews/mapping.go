package reviews

import (
	"github.com/planforge/planforge/pkg/query"
	"github.com/planforge/planforge/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "reviews", "r").
	Project("id", "ID").
	Project("plan_id", "PlanID").
	Project("status", "Status").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

func scanReview(s repository.Scanner) (Review, error) {
	var rv Review
	err := s.Scan(
		&rv.ID,
		&rv.PlanID,
		&rv.Status,
		&rv.CreatedAt,
	)
	return rv, err
}
