package reviews

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/planforge/planforge/pkg/handlers"
	"github.com/planforge/planforge/pkg/routes"
)

// Handler provides HTTP endpoints for review queries.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "reviews"),
	}
}

// Routes returns the route group definition for review query endpoints.
// Recording an approval lives on the api module since it spans multiple
// systems; this group only exposes review history.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/reviews",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/plan/{planId}", Handler: h.ListByPlan},
		},
	}
}

// ListByPlan returns the review decisions recorded for the plan id path parameter.
func (h *Handler) ListByPlan(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(r.PathValue("planId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	items, err := h.sys.ListByPlan(r.Context(), planID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, items)
}
