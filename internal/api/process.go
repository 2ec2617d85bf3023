package api

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/planforge/planforge/internal/workflow"
	"github.com/planforge/planforge/pkg/handlers"
	"github.com/planforge/planforge/pkg/identity"
	"github.com/planforge/planforge/pkg/routes"
)

type processHandler struct {
	wf             *workflow.Runtime
	logger         *slog.Logger
	maxUploadSize  int64
	defaultPxPerFt float64
}

func newProcessHandler(
	wf *workflow.Runtime,
	logger *slog.Logger,
	maxUploadSize int64,
	defaultPxPerFt float64,
) *processHandler {
	return &processHandler{
		wf:             wf,
		logger:         logger.With("handler", "process"),
		maxUploadSize:  maxUploadSize,
		defaultPxPerFt: defaultPxPerFt,
	}
}

func (h *processHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/process",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.process},
		},
	}
}

// process accepts a multipart floor-plan upload and runs first-page
// processing. Optional form fields: name, px_per_ft, and plan_id for
// retrying a previously created plan.
func (h *processHandler) process(w http.ResponseWriter, r *http.Request) {
	userID, ok := identity.FromContext(r.Context())
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusUnauthorized, identity.ErrUnauthenticated)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("parse upload: %w", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("missing file: %w", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest,
			fmt.Errorf("read upload: %w", err))
		return
	}

	cmd := workflow.ProcessCommand{
		UserID:      userID,
		Name:        header.Filename,
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
		PxPerFt:     h.defaultPxPerFt,
	}

	if name := r.FormValue("name"); name != "" {
		cmd.Name = name
	}

	if v := r.FormValue("px_per_ft"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 {
			handlers.RespondError(w, h.logger, http.StatusBadRequest,
				fmt.Errorf("invalid px_per_ft: %q", v))
			return
		}
		cmd.PxPerFt = f
	}

	if v := r.FormValue("plan_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			handlers.RespondError(w, h.logger, http.StatusBadRequest,
				fmt.Errorf("invalid plan_id: %q", v))
			return
		}
		cmd.PlanID = &id
	}

	result, err := h.wf.ProcessFirstPage(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, workflow.MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
