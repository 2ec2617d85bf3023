package outputs

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/planforge/planforge/pkg/handlers"
	"github.com/planforge/planforge/pkg/routes"
)

// Handler provides HTTP endpoints for output queries.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "outputs"),
	}
}

// Routes returns the route group definition for output query endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/outputs",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/plan/{planId}", Handler: h.FindByPlan},
		},
	}
}

// FindByPlan returns the output recorded for the plan id path parameter.
func (h *Handler) FindByPlan(w http.ResponseWriter, r *http.Request) {
	planID, err := uuid.Parse(r.PathValue("planId"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	output, err := h.sys.FindByPlan(r.Context(), planID)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, output)
}
