package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pastepdf/pastepdf/internal/core/domain"
	"github.com/pastepdf/pastepdf/internal/core/ports/driven"
	"github.com/pastepdf/pastepdf/internal/core/ports/driving"
	"github.com/pastepdf/pastepdf/internal/logger"
)

// Ensure ComposerService implements the interface.
var _ driving.ComposerService = (*ComposerService)(nil)

// ComposerService renders compositions into merged PDFs. Export is a
// pure function of the model and the current registry contents: the
// canvas is drawn in item order and serialized in one step, so callers
// receive either a complete byte stream or an error.
type ComposerService struct {
	store  driven.RegistryStore
	canvas driven.CanvasBuilder
	leases *LeaseTable
}

// NewComposerService creates a new composer service.
func NewComposerService(store driven.RegistryStore, canvas driven.CanvasBuilder, leases *LeaseTable) *ComposerService {
	return &ComposerService{
		store:  store,
		canvas: canvas,
		leases: leases,
	}
}

// Export builds a single-page output document from the model.
func (s *ComposerService) Export(ctx context.Context, model domain.CompositionModel) (*driving.ExportResult, error) {
	model.ApplyDefaults()
	// Empty compositions are rejected before anything else, including
	// model validation.
	if len(model.Items) == 0 {
		return nil, domain.ErrEmptyComposition
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}

	canvas, err := s.canvas.NewCanvas(ctx, model.CanvasWidth, model.CanvasHeight)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExportFailure, err)
	}

	// Background sits beneath everything, painted only when it differs
	// from the default white.
	background, err := domain.ParseHexColor(model.BackgroundColor)
	if err != nil {
		return nil, err
	}
	if !background.IsWhite() {
		if err := canvas.FillBackground(background); err != nil {
			return nil, fmt.Errorf("%w: painting background: %v", domain.ErrExportFailure, err)
		}
	}

	// Each unique source id is resolved once per export and held under
	// a lease until serialization finishes, so a concurrent Unregister
	// cannot delete bytes an embedding still reads.
	resolved := make(map[string]*domain.SourceDocument)
	release := func() {
		for id, doc := range resolved {
			if doc != nil {
				s.leases.Release(id)
			}
		}
	}
	defer release()

	result := &driving.ExportResult{}
	for i, item := range model.Items {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrExportFailure, err)
		}

		doc, ok := s.resolve(ctx, resolved, item.FileID)
		if !ok {
			logger.Warn("export item %d: unknown document %s, skipped", i, item.FileID)
			result.Skipped++
			continue
		}
		if item.PageIndex < 0 || item.PageIndex >= doc.PageCount {
			logger.Warn("export item %d: page %d outside %d-page document %s, skipped", i, item.PageIndex, doc.PageCount, item.FileID)
			result.Skipped++
			continue
		}

		err := canvas.PlacePage(doc.StoragePath, item.PageIndex, item.X, item.Y, item.Width, item.Height, item.Rotation)
		if err != nil {
			logger.Warn("export item %d: embedding page %d of %s: %v, skipped", i, item.PageIndex, item.FileID, err)
			result.Skipped++
			continue
		}
		result.Placed++
	}

	data, err := canvas.Bytes()
	if err != nil {
		return nil, fmt.Errorf("%w: serializing output: %v", domain.ErrExportFailure, err)
	}
	result.PDF = data

	logger.Debug("export finished: %d placed, %d skipped, %d bytes", result.Placed, result.Skipped, len(data))
	return result, nil
}

// resolve looks up a document id, caching hits and misses for the
// duration of one export. A hit acquires a lease released at the end
// of the export.
func (s *ComposerService) resolve(ctx context.Context, cache map[string]*domain.SourceDocument, id string) (*domain.SourceDocument, bool) {
	if doc, seen := cache[id]; seen {
		return doc, doc != nil
	}

	s.leases.Acquire(id)
	doc, err := s.store.Get(ctx, id)
	if err != nil {
		s.leases.Release(id)
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("resolving %s: %v", id, err)
		}
		// Negative entries keep the lookup from repeating but hold no
		// lease, so they must not be released again.
		cache[id] = nil
		return nil, false
	}
	cache[id] = doc
	return doc, true
}
