package driving

import (
	"context"

	"github.com/pastepdf/pastepdf/internal/core/domain"
)

// ComposerService renders a composition into a merged PDF.
type ComposerService interface {
	// Export builds a single-page output document from the model and
	// returns the serialized bytes. Items referencing unknown documents
	// or out-of-range pages are skipped, not fatal; the skip count is
	// reported in the result.
	Export(ctx context.Context, model domain.CompositionModel) (*ExportResult, error)
}

// ExportResult is the outcome of a successful export.
type ExportResult struct {
	// PDF is the complete output document byte stream.
	PDF []byte

	// Placed is the number of items embedded into the canvas.
	Placed int

	// Skipped is the number of items dropped for an unknown document
	// id, an out-of-range page index, or a per-item embedding failure.
	Skipped int
}
