package vectorize

import (
	"errors"
	"net/http"
)

// ErrVectorization indicates the remote vectorization call failed or
// returned a malformed payload.
var ErrVectorization = errors.New("vectorization failed")

// MapHTTPStatus maps vectorization errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrVectorization) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
