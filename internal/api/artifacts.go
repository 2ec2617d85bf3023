package api

import (
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"

	"github.com/planforge/planforge/pkg/handlers"
	"github.com/planforge/planforge/pkg/routes"
	"github.com/planforge/planforge/pkg/storage"
)

// artifactsHandler streams stored blobs back to the caller. Containers
// are addressed by role rather than raw name so the storage account
// layout stays private.
type artifactsHandler struct {
	store      storage.System
	logger     *slog.Logger
	containers map[string]string
}

func newArtifactsHandler(
	store storage.System,
	logger *slog.Logger,
	containers storage.Config,
) *artifactsHandler {
	return &artifactsHandler{
		store:  store,
		logger: logger.With("handler", "artifacts"),
		containers: map[string]string{
			"plans":   containers.PlanContainer,
			"outputs": containers.OutputContainer,
		},
	}
}

func (h *artifactsHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/artifacts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/{container}/{key...}", Handler: h.download},
		},
	}
}

func (h *artifactsHandler) download(w http.ResponseWriter, r *http.Request) {
	container, ok := h.containers[r.PathValue("container")]
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusNotFound,
			fmt.Errorf("unknown container: %q", r.PathValue("container")))
		return
	}

	key := r.PathValue("key")

	body, err := h.store.Download(r.Context(), container, key)
	if err != nil {
		handlers.RespondError(w, h.logger, storage.MapHTTPStatus(err), err)
		return
	}
	defer body.Close()

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	)
	w.WriteHeader(http.StatusOK)
	io.Copy(w, body)
}
