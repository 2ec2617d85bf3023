// Package vectorize calls the external floor-plan vectorization service,
// which extracts wall-line geometry and metrics from a raster image.
package vectorize

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// Metrics holds the measurements the service reports for a vectorized page.
// The service may report additional fields; those round-trip untouched via
// Result.RawMetrics.
type Metrics struct {
	WallsLenFt float64 `json:"walls_len_ft"`
	LineCount  int     `json:"line_count"`
}

// Result is a decoded vectorization response. SVG holds the exact bytes the
// service produced; the base64 transport encoding is stripped here so storage
// receives the original payload.
type Result struct {
	SVG        []byte
	Metrics    Metrics
	RawMetrics json.RawMessage
	Confidence float64
}

// Client performs synchronous vectorization calls. Calls are never retried
// here; retry is a caller-level decision.
type Client interface {
	// Vectorize submits a publicly fetchable image URL and a scale factor
	// (pixels per foot) and returns the decoded result. Any transport
	// failure, non-2xx response, or malformed payload yields
	// ErrVectorization.
	Vectorize(ctx context.Context, imageURL string, pxPerFt float64) (*Result, error)
}

type client struct {
	endpoint string
	http     *http.Client
	logger   *slog.Logger
}

// NewClient creates a vectorization client from the given configuration.
func NewClient(cfg *Config, logger *slog.Logger) Client {
	return &client{
		endpoint: strings.TrimSuffix(cfg.Endpoint, "/"),
		http:     &http.Client{Timeout: cfg.TimeoutDuration()},
		logger:   logger.With("system", "vectorize"),
	}
}

type response struct {
	SVG        string          `json:"svg"`
	Metrics    json.RawMessage `json:"metrics"`
	Confidence float64         `json:"confidence"`
}

func (c *client) Vectorize(ctx context.Context, imageURL string, pxPerFt float64) (*Result, error) {
	form := url.Values{
		"image_url": {imageURL},
		"px_per_ft": {strconv.FormatFloat(pxPerFt, 'f', -1, 64)},
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.endpoint+"/vectorize_url",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrVectorization, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVectorization, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d: %s", ErrVectorization, resp.StatusCode, body)
	}

	var payload response
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrVectorization, err)
	}

	result, err := decodeResult(payload)
	if err != nil {
		return nil, err
	}

	c.logger.Info("vectorization complete",
		"line_count", result.Metrics.LineCount,
		"walls_len_ft", result.Metrics.WallsLenFt,
		"confidence", result.Confidence,
	)

	return result, nil
}

func decodeResult(payload response) (*Result, error) {
	if payload.SVG == "" {
		return nil, fmt.Errorf("%w: response missing svg payload", ErrVectorization)
	}

	svg, err := base64.StdEncoding.DecodeString(payload.SVG)
	if err != nil {
		return nil, fmt.Errorf("%w: decode svg payload: %w", ErrVectorization, err)
	}

	var metrics Metrics
	if len(payload.Metrics) > 0 {
		if err := json.Unmarshal(payload.Metrics, &metrics); err != nil {
			return nil, fmt.Errorf("%w: decode metrics: %w", ErrVectorization, err)
		}
	}

	return &Result{
		SVG:        svg,
		Metrics:    metrics,
		RawMetrics: payload.Metrics,
		Confidence: payload.Confidence,
	}, nil
}
