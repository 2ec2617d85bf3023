package ledger

import (
	"net/url"

	"github.com/planforge/planforge/pkg/query"
	"github.com/planforge/planforge/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "usage_ledger", "l").
	Project("id", "ID").
	Project("user_id", "UserID").
	Project("plan_id", "PlanID").
	Project("event", "Event").
	Project("delta_credits", "DeltaCredits").
	Project("created_at", "CreatedAt").
	Project("settled_at", "SettledAt")

var defaultSort = query.SortField{
	Field:      "CreatedAt",
	Descending: true,
}

// Filters contains optional filtering criteria for ledger queries.
type Filters struct {
	UserID *string `json:"user_id,omitempty"`
	Event  *string `json:"event,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.
		WhereEquals("UserID", f.UserID).
		WhereEquals("Event", f.Event)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters

	if u := values.Get("user_id"); u != "" {
		f.UserID = &u
	}

	if e := values.Get("event"); e != "" {
		f.Event = &e
	}

	return f
}

func scanEntry(s repository.Scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.UserID,
		&e.PlanID,
		&e.Event,
		&e.DeltaCredits,
		&e.CreatedAt,
		&e.SettledAt,
	)
	return e, err
}
