package api

import (
	"net/http"

	"github.com/planforge/planforge/internal/config"
	"github.com/planforge/planforge/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	process := newProcessHandler(
		domain.Workflow,
		runtime.Logger,
		cfg.API.MaxUploadSizeBytes(),
		runtime.Vectorize.DefaultPxPerFt,
	)

	review := newReviewHandler(domain.Workflow, runtime.Logger)

	artifacts := newArtifactsHandler(
		runtime.Storage,
		runtime.Logger,
		runtime.Containers,
	)

	routes.Register(
		mux,
		domain.Plans.Handler().Routes(),
		domain.Outputs.Handler().Routes(),
		domain.Reviews.Handler().Routes(),
		domain.Ledger.Handler().Routes(),
		process.routes(),
		review.routes(),
		artifacts.routes(),
	)
}
