// Package raster converts submitted floor-plan documents into ordered
// per-page PNG images for downstream vectorization.
package raster

import (
	"bytes"
	"context"
	"fmt"
	stdimage "image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/document-context/pkg/config"
	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/image"
)

const (
	// MaxPages caps how many pages of a paginated document are rendered.
	// Pages beyond the cap are silently dropped, not an error.
	MaxPages = 5

	// UpscaleFactor is the fixed render upscale applied to PDF pages so the
	// vectorization service has enough pixel density for line detection.
	UpscaleFactor = 2.0

	sourcePDF = "source.pdf"
)

// Page is a single rendered page image. Number is 1-indexed.
type Page struct {
	Number      int
	Data        []byte
	ContentType string
}

// Rasterizer produces an ordered page image sequence from a document.
type Rasterizer interface {
	// Rasterize converts the document bytes into page images according to
	// the declared media type. Returns ErrUnsupportedFormat when the media
	// type is neither a paginated document nor a raster image, or when the
	// document cannot be decoded.
	Rasterize(ctx context.Context, data []byte, mediaType string) ([]Page, error)
}

type rasterizer struct {
	logger *slog.Logger
}

// New creates a Rasterizer that renders PDF pages through ImageMagick.
func New(logger *slog.Logger) Rasterizer {
	return &rasterizer{
		logger: logger.With("system", "raster"),
	}
}

func (r *rasterizer) Rasterize(ctx context.Context, data []byte, mediaType string) ([]Page, error) {
	switch mediaType {
	case "application/pdf":
		return r.rasterizePDF(ctx, data)
	case "image/png", "image/jpeg":
		// single raster image passes through unchanged
		return []Page{{Number: 1, Data: data, ContentType: mediaType}}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mediaType)
	}
}

func (r *rasterizer) rasterizePDF(ctx context.Context, data []byte) ([]Page, error) {
	pageCount, err := api.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedFormat, err)
	}
	if pageCount < 1 {
		return nil, fmt.Errorf("%w: document has no pages", ErrUnsupportedFormat)
	}

	renderCount := min(pageCount, MaxPages)
	if renderCount < pageCount {
		r.logger.Warn("page cap applied",
			"page_count", pageCount,
			"rendered", renderCount,
		)
	}

	tempDir, err := os.MkdirTemp("", "planforge-raster-*")
	if err != nil {
		return nil, fmt.Errorf("create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	pdfPath := filepath.Join(tempDir, sourcePDF)
	if err := os.WriteFile(pdfPath, data, 0600); err != nil {
		return nil, fmt.Errorf("write temp pdf: %w", err)
	}

	return renderPages(ctx, pdfPath, renderCount)
}

func renderPages(ctx context.Context, pdfPath string, renderCount int) ([]Page, error) {
	pdfDoc, err := document.OpenPDF(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open pdf: %w", ErrUnsupportedFormat, err)
	}
	defer pdfDoc.Close()

	renderer, err := image.NewImageMagickRenderer(config.DefaultImageConfig())
	if err != nil {
		return nil, fmt.Errorf("%w: create renderer: %w", ErrRenderFailed, err)
	}

	allPages, err := pdfDoc.ExtractAllPages()
	if err != nil {
		return nil, fmt.Errorf("%w: extract pages: %w", ErrUnsupportedFormat, err)
	}
	if len(allPages) < renderCount {
		renderCount = len(allPages)
	}

	pages := make([]Page, renderCount)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(renderCount))

	for i, page := range allPages[:renderCount] {
		pageNum := i + 1

		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			data, err := page.ToImage(renderer, nil)
			if err != nil {
				return fmt.Errorf("render page %d: %w", pageNum, err)
			}

			scaled, err := upscalePNG(data, UpscaleFactor)
			if err != nil {
				return fmt.Errorf("upscale page %d: %w", pageNum, err)
			}

			pages[i] = Page{
				Number:      pageNum,
				Data:        scaled,
				ContentType: "image/png",
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRenderFailed, err)
	}

	return pages, nil
}

// upscalePNG re-encodes the image at factor times its rendered dimensions
// using Catmull-Rom resampling.
func upscalePNG(data []byte, factor float64) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode rendered page: %w", err)
	}

	bounds := src.Bounds()
	width := int(float64(bounds.Dx()) * factor)
	height := int(float64(bounds.Dy()) * factor)

	dst := stdimage.NewRGBA(stdimage.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encode upscaled page: %w", err)
	}

	return buf.Bytes(), nil
}

func workerCount(pageCount int) int {
	return max(min(runtime.NumCPU(), pageCount), 1)
}
