package api

import (
	"github.com/planforge/planforge/internal/config"
	"github.com/planforge/planforge/internal/infrastructure"
	"github.com/planforge/planforge/internal/vectorize"
	"github.com/planforge/planforge/pkg/pagination"
	"github.com/planforge/planforge/pkg/storage"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Vectorize  vectorize.Config
	Containers storage.Config
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Vectorize:  cfg.Vectorize,
		Containers: cfg.Storage,
	}
}
