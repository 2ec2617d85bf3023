package plans

import (
	"net/url"

	"github.com/planforge/planforge/pkg/query"
	"github.com/planforge/planforge/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "plans", "p").
	Project("id", "ID").
	Project("owner_id", "OwnerID").
	Project("name", "Name").
	Project("page_count", "PageCount").
	Project("status", "Status").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for plan queries.
// Nil fields are ignored. Status and OwnerID use exact matching;
// Name uses case-insensitive contains matching.
type Filters struct {
	Status  *string `json:"status,omitempty"`
	Name    *string `json:"name,omitempty"`
	OwnerID *string `json:"owner_id,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("Status", f.Status).
		WhereContains("Name", f.Name).
		WhereEquals("OwnerID", f.OwnerID)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if s := values.Get("status"); s != "" {
		f.Status = &s
	}

	if n := values.Get("name"); n != "" {
		f.Name = &n
	}

	if o := values.Get("owner_id"); o != "" {
		f.OwnerID = &o
	}

	return f
}

func scanPlan(s repository.Scanner) (Plan, error) {
	var p Plan
	err := s.Scan(
		&p.ID,
		&p.OwnerID,
		&p.Name,
		&p.PageCount,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}
