package driven

import "context"

// PageSource grants read-only page access to a stored document.
// Each Open returns an independent handle; callers close it when done
// and never share a handle across goroutines.
type PageSource interface {
	Open(ctx context.Context, path string) (PageHandle, error)
}

// PageHandle is one open view of a stored document's pages.
type PageHandle interface {
	// PageCount returns the number of pages.
	PageCount() int

	// PageSize returns the native width and height of a page in points.
	PageSize(index int) (width, height float64, err error)

	// RenderPNG rasterizes a page into a PNG byte stream. The output
	// pixel dimensions are the native point dimensions multiplied by
	// scale on both axes, rounded.
	RenderPNG(index int, scale float64) ([]byte, error)

	// Close releases the handle.
	Close() error
}
