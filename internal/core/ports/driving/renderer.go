package driving

import "context"

// RendererService produces rasterized page previews.
type RendererService interface {
	// RenderThumbnail renders one page of a registered document as a
	// complete PNG byte stream. scale multiplies both axes of the
	// page's native dimensions; values <= 0 fall back to 1.0.
	RenderThumbnail(ctx context.Context, id string, pageIndex int, scale float64) ([]byte, error)
}
