package api

import (
	"github.com/planforge/planforge/internal/ledger"
	"github.com/planforge/planforge/internal/outputs"
	"github.com/planforge/planforge/internal/plans"
	"github.com/planforge/planforge/internal/raster"
	"github.com/planforge/planforge/internal/reviews"
	"github.com/planforge/planforge/internal/vectorize"
	"github.com/planforge/planforge/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Plans    plans.System
	Outputs  outputs.System
	Reviews  reviews.System
	Ledger   ledger.System
	Workflow *workflow.Runtime
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	plansSystem := plans.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	outputsSystem := outputs.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	reviewsSystem := reviews.New(
		runtime.Database.Connection(),
		runtime.Logger,
	)

	ledgerSystem := ledger.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	wf := &workflow.Runtime{
		Plans:           plansSystem,
		Outputs:         outputsSystem,
		Reviews:         reviewsSystem,
		Ledger:          ledgerSystem,
		Storage:         runtime.Storage,
		Raster:          raster.New(runtime.Logger),
		Vectorize:       vectorize.NewClient(&runtime.Vectorize, runtime.Logger),
		PlanContainer:   runtime.Containers.PlanContainer,
		OutputContainer: runtime.Containers.OutputContainer,
		Logger:          runtime.Logger.With("system", "workflow"),
	}

	return &Domain{
		Plans:    plansSystem,
		Outputs:  outputsSystem,
		Reviews:  reviewsSystem,
		Ledger:   ledgerSystem,
		Workflow: wf,
	}
}
