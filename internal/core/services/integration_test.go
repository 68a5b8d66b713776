package services_test

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	gofpdf "github.com/lvillar/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastepdf/pastepdf/internal/adapters/driven/filestore/disk"
	"github.com/pastepdf/pastepdf/internal/adapters/driven/pdf/fitz"
	"github.com/pastepdf/pastepdf/internal/adapters/driven/pdf/fpdf"
	"github.com/pastepdf/pastepdf/internal/adapters/driven/pdf/pdfcpu"
	"github.com/pastepdf/pastepdf/internal/adapters/driven/storage/memory"
	"github.com/pastepdf/pastepdf/internal/core/domain"
	"github.com/pastepdf/pastepdf/internal/core/services"
)

// stack wires the real adapters together the way the CLI does.
type stack struct {
	registry *services.RegistryService
	renderer *services.RendererService
	composer *services.ComposerService
}

func newStack(t *testing.T) *stack {
	t.Helper()

	files, err := disk.NewFileStore(t.TempDir())
	require.NoError(t, err)

	store := memory.NewRegistryStore()
	pages := fitz.NewPageSource()
	leases := services.NewLeaseTable()

	return &stack{
		registry: services.NewRegistryService(store, files, pages, pdfcpu.NewValidator(), leases, 50<<20),
		renderer: services.NewRendererService(store, pages, leases),
		composer: services.NewComposerService(store, fpdf.NewBuilder(), leases),
	}
}

// twoPagePDF builds a 200x300pt two-page document in memory.
func twoPagePDF(t *testing.T) []byte {
	t.Helper()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: 200, Ht: 300},
	})
	for page := 0; page < 2; page++ {
		pdf.AddPage()
		pdf.SetFillColor(40, 120, 200)
		pdf.Rect(15, 15, 120, 90, "F")
	}

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestRoundTrip_RegisterRenderExport(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	reg, err := s.registry.Register(ctx, "source.pdf", twoPagePDF(t))
	require.NoError(t, err)
	assert.Equal(t, 2, reg.PageCount)
	require.Len(t, reg.Pages, 2)
	assert.InDelta(t, 200, reg.Pages[0].Width, 0.5)
	assert.InDelta(t, 300, reg.Pages[0].Height, 0.5)

	thumb, err := s.renderer.RenderThumbnail(ctx, reg.ID, 0, 1.0)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(thumb))
	require.NoError(t, err)
	assert.InDelta(t, 200, img.Bounds().Dx(), 1)

	result, err := s.composer.Export(ctx, domain.CompositionModel{
		CanvasWidth:     400,
		CanvasHeight:    400,
		BackgroundColor: "#e0e0e0",
		Items: []domain.PlacementItem{
			{FileID: reg.ID, PageIndex: 0, X: 0, Y: 0, Width: 150, Height: 225},
			{FileID: reg.ID, PageIndex: 1, X: 200, Y: 100, Width: 100, Height: 150, Rotation: 90},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Placed)
	assert.Equal(t, 0, result.Skipped)
	require.NotEmpty(t, result.PDF)
	assert.Equal(t, "%PDF", string(result.PDF[:4]))
}

func TestRoundTrip_ExportIsRegistrable(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	reg, err := s.registry.Register(ctx, "source.pdf", twoPagePDF(t))
	require.NoError(t, err)

	result, err := s.composer.Export(ctx, domain.CompositionModel{
		CanvasWidth:  500,
		CanvasHeight: 700,
		Items: []domain.PlacementItem{
			{FileID: reg.ID, PageIndex: 1, X: 50, Y: 50, Width: 200, Height: 300},
		},
	})
	require.NoError(t, err)

	// The export is itself a valid source document with the canvas as
	// its single page.
	merged, err := s.registry.Register(ctx, "merged.pdf", result.PDF)
	require.NoError(t, err)
	assert.Equal(t, 1, merged.PageCount)
	require.Len(t, merged.Pages, 1)
	assert.InDelta(t, 500, merged.Pages[0].Width, 0.5)
	assert.InDelta(t, 700, merged.Pages[0].Height, 0.5)
}

// filledPDF builds a single-page document whose page is covered edge to
// edge with a dark fill, so rendered output pixels separate cleanly into
// content and blank canvas.
func filledPDF(t *testing.T, w, h float64) []byte {
	t.Helper()

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.AddPage()
	pdf.SetFillColor(20, 40, 80)
	pdf.Rect(0, 0, w, h, "F")

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func inked(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r < 0xc000 || g < 0xc000 || b < 0xc000
}

func TestRoundTrip_RotatedContentStaysInRect(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	reg, err := s.registry.Register(ctx, "filled.pdf", filledPDF(t, 100, 200))
	require.NoError(t, err)

	// A non-square destination rectangle rotated a quarter turn: the
	// rotated content must be fitted back onto the rectangle, not left
	// in a 100x200 footprint spilling above and below it.
	result, err := s.composer.Export(ctx, domain.CompositionModel{
		CanvasWidth:  300,
		CanvasHeight: 300,
		Items: []domain.PlacementItem{
			{FileID: reg.ID, PageIndex: 0, X: 100, Y: 50, Width: 200, Height: 100, Rotation: 90},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, result.Placed)

	path := filepath.Join(t.TempDir(), "rotated.pdf")
	require.NoError(t, os.WriteFile(path, result.PDF, 0600))

	handle, err := fitz.NewPageSource().Open(ctx, path)
	require.NoError(t, err)
	defer handle.Close()

	data, err := handle.RenderPNG(0, 1.0)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if inked(img, x, y) {
				assert.True(t, x >= 98 && x <= 302 && y >= 48 && y <= 152,
					"content pixel at (%d,%d) outside destination rectangle", x, y)
			}
		}
	}

	// The fitted content covers the rectangle, not just a sliver of it.
	assert.True(t, inked(img, 200, 100), "rectangle centre is blank")
	assert.True(t, inked(img, 110, 60), "rectangle top-left region is blank")
	assert.True(t, inked(img, 290, 140), "rectangle bottom-right region is blank")
	assert.False(t, inked(img, 200, 25), "content above the rectangle")
	assert.False(t, inked(img, 200, 175), "content below the rectangle")
}

func TestRoundTrip_ExportSkipsUnknownSource(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	reg, err := s.registry.Register(ctx, "source.pdf", twoPagePDF(t))
	require.NoError(t, err)

	result, err := s.composer.Export(ctx, domain.CompositionModel{
		Items: []domain.PlacementItem{
			{FileID: "no-such-id", PageIndex: 0, X: 0, Y: 0, Width: 100, Height: 100},
			{FileID: reg.ID, PageIndex: 0, X: 0, Y: 0, Width: 100, Height: 150},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Placed)
	assert.Equal(t, 1, result.Skipped)
}

func TestRoundTrip_UnregisterDeletesBytes(t *testing.T) {
	s := newStack(t)
	ctx := context.Background()

	reg, err := s.registry.Register(ctx, "source.pdf", twoPagePDF(t))
	require.NoError(t, err)

	require.NoError(t, s.registry.Unregister(ctx, reg.ID))

	_, err = s.renderer.RenderThumbnail(ctx, reg.ID, 0, 1.0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
