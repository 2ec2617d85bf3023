package raster

import (
	"errors"
	"net/http"
)

// Domain errors for rasterization.
var (
	// ErrUnsupportedFormat indicates the input is neither a paginated
	// document nor a raster image, or could not be decoded as one.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrRenderFailed indicates page rendering failed for a valid document.
	ErrRenderFailed = errors.New("page render failed")
)

// MapHTTPStatus maps rasterization errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrUnsupportedFormat) {
		return http.StatusUnsupportedMediaType
	}
	return http.StatusInternalServerError
}
