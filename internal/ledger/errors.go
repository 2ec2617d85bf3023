package ledger

import (
	"errors"
	"net/http"
)

// Domain errors for ledger operations.
var (
	ErrNotFound     = errors.New("ledger entry not found")
	ErrDuplicate    = errors.New("ledger entry already exists")
	ErrInvalidEvent = errors.New("invalid ledger event")
	ErrInvalidGrant = errors.New("grant credits must be positive")
)

// MapHTTPStatus maps ledger domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidEvent) || errors.Is(err, ErrInvalidGrant) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
