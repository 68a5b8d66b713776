package services

import (
	"context"
	"fmt"

	"github.com/pastepdf/pastepdf/internal/core/domain"
	"github.com/pastepdf/pastepdf/internal/core/ports/driven"
	"github.com/pastepdf/pastepdf/internal/core/ports/driving"
)

// Ensure RendererService implements the interface.
var _ driving.RendererService = (*RendererService)(nil)

// DefaultThumbnailScale is used when the caller passes scale <= 0.
const DefaultThumbnailScale = 1.0

// RendererService produces rasterized page previews. Each call opens
// and closes its own document handle; no render state is shared across
// calls.
type RendererService struct {
	store  driven.RegistryStore
	pages  driven.PageSource
	leases *LeaseTable
}

// NewRendererService creates a new renderer service.
func NewRendererService(store driven.RegistryStore, pages driven.PageSource, leases *LeaseTable) *RendererService {
	return &RendererService{
		store:  store,
		pages:  pages,
		leases: leases,
	}
}

// RenderThumbnail renders one page of a registered document as PNG.
func (s *RendererService) RenderThumbnail(ctx context.Context, id string, pageIndex int, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = DefaultThumbnailScale
	}

	// The lease spans the whole read so a concurrent Unregister cannot
	// delete the backing bytes while the handle is open.
	s.leases.Acquire(id)
	defer s.leases.Release(id)

	doc, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if pageIndex < 0 || pageIndex >= doc.PageCount {
		return nil, fmt.Errorf("page %d of %d-page document: %w", pageIndex, doc.PageCount, domain.ErrInvalidPageIndex)
	}

	h, err := s.pages.Open(ctx, doc.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailure, err)
	}
	defer h.Close()

	png, err := h.RenderPNG(pageIndex, scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailure, err)
	}
	return png, nil
}
