// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/planforge/planforge/internal/config"
	"github.com/planforge/planforge/internal/infrastructure"
	"github.com/planforge/planforge/pkg/identity"
	"github.com/planforge/planforge/pkg/middleware"
	"github.com/planforge/planforge/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// Every route requires a resolved user identity.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	infra *infrastructure.Infrastructure,
) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	authn, err := identity.NewMiddleware(ctx, &cfg.Identity, runtime.Logger)
	if err != nil {
		return nil, fmt.Errorf("identity init failed: %w", err)
	}

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(authn.Require)

	return m, nil
}
