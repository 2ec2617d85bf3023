package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/planforge/planforge/internal/vectorize"
	"github.com/planforge/planforge/internal/workflow"
	"github.com/planforge/planforge/pkg/handlers"
	"github.com/planforge/planforge/pkg/identity"
	"github.com/planforge/planforge/pkg/routes"
)

type reviewHandler struct {
	wf     *workflow.Runtime
	logger *slog.Logger
}

// approveRequest is the optional JSON body of the approve endpoint. With
// no body, the most recently created plan is approved and metrics are
// read back from its recorded output.
type approveRequest struct {
	PlanID  *uuid.UUID         `json:"plan_id,omitempty"`
	Metrics *vectorize.Metrics `json:"metrics,omitempty"`
}

func newReviewHandler(wf *workflow.Runtime, logger *slog.Logger) *reviewHandler {
	return &reviewHandler{
		wf:     wf,
		logger: logger.With("handler", "review"),
	}
}

func (h *reviewHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/reviews",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "/approve", Handler: h.approve},
		},
	}
}

func (h *reviewHandler) approve(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, identity.ErrUnauthenticated)
		return
	}

	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("parse request: %w", err))
		return
	}

	record, err := h.wf.ApproveAndExport(r.Context(), workflow.ApproveCommand{
		UserID:  userID,
		PlanID:  req.PlanID,
		Metrics: req.Metrics,
	})
	if err != nil {
		handlers.RespondError(w, h.logger, workflow.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, record)
}
