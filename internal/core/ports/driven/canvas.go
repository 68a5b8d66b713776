package driven

import (
	"context"

	"github.com/pastepdf/pastepdf/internal/core/domain"
)

// CanvasBuilder creates output documents for export.
type CanvasBuilder interface {
	// NewCanvas creates a single-page output document of the given
	// dimensions in points. Dimensions must be strictly positive.
	NewCanvas(ctx context.Context, width, height float64) (Canvas, error)
}

// Canvas is one in-progress output document. Drawing operations apply
// in call order: a later PlacePage paints on top of earlier content.
// A Canvas is single-use; after Bytes it must not be drawn on again.
type Canvas interface {
	// FillBackground paints a filled rectangle covering the full canvas.
	// Must be the first drawing operation so it sits beneath everything.
	FillBackground(c domain.Color) error

	// PlacePage embeds the source page's content stream into the
	// destination rectangle [x, y, x+w, y+h], preserving it as vector
	// operators rather than a rasterized snapshot. rotation is applied
	// clockwise about the rectangle's centre before the scale-to-fit
	// mapping, so rotated content stays inside the rectangle. The source
	// page's native box is mapped onto the rectangle; anisotropic
	// scaling is accepted when aspects differ.
	PlacePage(path string, pageIndex int, x, y, w, h, rotation float64) error

	// Bytes serializes the finished document to a complete PDF byte
	// stream. Either the whole buffer is returned or an error; never
	// a truncated stream.
	Bytes() ([]byte, error)
}
