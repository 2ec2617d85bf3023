package outputs

import (
	"errors"
	"net/http"
)

// Domain errors for output operations.
var (
	ErrNotFound          = errors.New("output not found")
	ErrDuplicate         = errors.New("output already exists")
	ErrInvalidConfidence = errors.New("confidence must be between 0 and 1")
)

// MapHTTPStatus maps output domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidConfidence) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
