package workflow

import (
	"errors"
	"net/http"

	"github.com/planforge/planforge/internal/outputs"
	"github.com/planforge/planforge/internal/plans"
	"github.com/planforge/planforge/internal/raster"
	"github.com/planforge/planforge/internal/vectorize"
)

// Workflow errors. Database and blob failures surface under these
// sentinels so handlers can distinguish where a run died; the underlying
// cause stays wrapped.
var (
	ErrPersistence      = errors.New("persistence failure")
	ErrStorage          = errors.New("storage failure")
	ErrNoPages          = errors.New("document produced no pages")
	ErrExportIncomplete = errors.New("export incomplete")
	ErrNoPlans          = errors.New("no plans available for review")
)

// MapHTTPStatus maps workflow errors, including those bubbled up from
// the systems a run touches, to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, raster.ErrUnsupportedFormat):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, vectorize.ErrVectorization):
		return http.StatusBadGateway
	case errors.Is(err, ErrNoPages):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrNoPlans), errors.Is(err, plans.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, plans.ErrNotOwner):
		return http.StatusForbidden
	case errors.Is(err, outputs.ErrInvalidConfidence):
		return http.StatusBadGateway
	case errors.Is(err, ErrPersistence), errors.Is(err, ErrStorage), errors.Is(err, ErrExportIncomplete):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
