// Package fitz provides read-only page access backed by MuPDF via
// go-fitz: page counts, native page bounds, and raster rendering for
// thumbnails.
package fitz

import (
	"bytes"
	"context"
	"fmt"
	"image/png"

	mupdf "github.com/gen2brain/go-fitz"

	"github.com/pastepdf/pastepdf/internal/core/ports/driven"
)

// Ensure PageSource implements the interface.
var _ driven.PageSource = (*PageSource)(nil)

// renderDPI is the base resolution at which a page's point dimensions
// equal its pixel dimensions (1 point = 1/72 inch).
const renderDPI = 72.0

// PageSource opens stored PDFs with MuPDF.
type PageSource struct{}

// NewPageSource creates a new MuPDF-backed page source.
func NewPageSource() *PageSource {
	return &PageSource{}
}

// Open opens the document at path for read-only page access.
func (s *PageSource) Open(_ context.Context, path string) (driven.PageHandle, error) {
	doc, err := mupdf.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &pageHandle{doc: doc}, nil
}

type pageHandle struct {
	doc *mupdf.Document
}

func (h *pageHandle) PageCount() int {
	return h.doc.NumPage()
}

// PageSize returns whole-point dimensions: go-fitz exposes page bounds
// only as an integer image.Rectangle, so fractional media-box sizes are
// truncated to the nearest point.
func (h *pageHandle) PageSize(index int) (float64, float64, error) {
	bound, err := h.doc.Bound(index)
	if err != nil {
		return 0, 0, fmt.Errorf("bounding page %d: %w", index, err)
	}
	return float64(bound.Dx()), float64(bound.Dy()), nil
}

// RenderPNG rasterizes a page at renderDPI*scale, so the output pixel
// dimensions are the native point dimensions multiplied by scale.
// MuPDF faults on corrupt content streams surface as recovered panics.
func (h *pageHandle) RenderPNG(index int, scale float64) (data []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rendering page %d: %v", index, r)
		}
	}()

	img, err := h.doc.ImageDPI(index, renderDPI*scale)
	if err != nil {
		return nil, fmt.Errorf("rendering page %d: %w", index, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encoding page %d: %w", index, err)
	}
	return buf.Bytes(), nil
}

func (h *pageHandle) Close() error {
	return h.doc.Close()
}
