package plans

import (
	"errors"
	"net/http"
)

// Domain errors for plan operations.
var (
	ErrNotFound    = errors.New("plan not found")
	ErrDuplicate   = errors.New("plan already exists")
	ErrNotOwner    = errors.New("plan belongs to another user")
	ErrInvalidPlan = errors.New("invalid plan")
)

// MapHTTPStatus maps plan domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrNotOwner) {
		return http.StatusForbidden
	}
	if errors.Is(err, ErrInvalidPlan) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
