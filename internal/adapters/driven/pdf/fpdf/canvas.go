// Package fpdf builds export output documents with gofpdf. Source pages
// are pulled in through the gofpdi importer as Form XObject templates,
// which keeps their content as vector operators instead of rasterizing.
package fpdf

import (
	"bytes"
	"context"
	"fmt"
	"math"

	gofpdf "github.com/lvillar/gofpdf"
	"github.com/lvillar/gofpdf/contrib/gofpdi"
	"github.com/lvillar/gofpdf/reader"

	"github.com/pastepdf/pastepdf/internal/core/domain"
	"github.com/pastepdf/pastepdf/internal/core/ports/driven"
)

// Ensure Builder implements the interface.
var _ driven.CanvasBuilder = (*Builder)(nil)

// Builder creates gofpdf-backed canvases.
type Builder struct{}

// NewBuilder creates a new canvas builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewCanvas creates a single-page document of width x height points.
func (b *Builder) NewCanvas(_ context.Context, width, height float64) (driven.Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas %gx%g: %w", width, height, domain.ErrInvalidInput)
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	return &canvas{
		pdf:        pdf,
		importer:   gofpdi.NewImporter(),
		width:      width,
		height:     height,
		pageCounts: make(map[string]int),
		templates:  make(map[templateKey]int),
	}, nil
}

// templateKey identifies one imported source page within an export.
type templateKey struct {
	path string
	page int
}

type canvas struct {
	pdf      *gofpdf.Fpdf
	importer *gofpdi.Importer

	width  float64
	height float64

	// Per-export caches: a source page referenced by several placement
	// items is imported once and reused.
	pageCounts map[string]int
	templates  map[templateKey]int
}

// FillBackground paints the full canvas in the given colour.
func (c *canvas) FillBackground(col domain.Color) error {
	c.pdf.SetFillColor(int(col.R), int(col.G), int(col.B))
	c.pdf.Rect(0, 0, c.width, c.height, "F")
	return c.pdf.Error()
}

// PlacePage embeds one source page into [x, y, x+w, y+h] with a
// clockwise rotation about the rectangle's centre. The importer panics
// on malformed source objects, so failures are recovered and returned
// per page instead of poisoning the whole export.
func (c *canvas) PlacePage(path string, pageIndex int, x, y, w, h, rotation float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("importing page %d of %s: %v", pageIndex, path, r)
		}
	}()

	count, err := c.pageCount(path)
	if err != nil {
		return err
	}
	if pageIndex < 0 || pageIndex >= count {
		return fmt.Errorf("page %d of %d-page source: %w", pageIndex, count, domain.ErrInvalidPageIndex)
	}

	key := templateKey{path: path, page: pageIndex}
	tpl, ok := c.templates[key]
	if !ok {
		// gofpdi numbers pages from 1.
		tpl = c.importer.ImportPage(c.pdf, path, pageIndex+1, "/MediaBox")
		c.templates[key] = tpl
	}

	if deg := normalizeDegrees(rotation); deg != 0 {
		// Rotation happens before the fit: the content rotates about the
		// rectangle's centre and the rotated bounding box is then scaled
		// back onto [x, y, x+w, y+h], so rotated content never spills
		// outside the destination rectangle. Rotating a w x h box by deg
		// yields a (w|cos|+h|sin|) x (w|sin|+h|cos|) bounding box.
		rad := deg * math.Pi / 180
		co, si := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
		sx := w / (w*co + h*si)
		sy := h / (w*si + h*co)
		cx, cy := x+w/2, y+h/2

		c.pdf.TransformBegin()
		// Transforms concatenate: the scale issued first applies to the
		// already-rotated content.
		c.pdf.TransformScale(sx*100, sy*100, cx, cy)
		// gofpdf rotates counter-clockwise; placements rotate clockwise.
		c.pdf.TransformRotate(-deg, cx, cy)
		c.importer.UseImportedTemplate(c.pdf, tpl, x, y, w, h)
		c.pdf.TransformEnd()
	} else {
		c.importer.UseImportedTemplate(c.pdf, tpl, x, y, w, h)
	}

	return c.pdf.Error()
}

// Bytes serializes the document. The underlying gofpdf document closes
// on output, so the canvas must not be drawn on afterwards.
func (c *canvas) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serializing output: %w", err)
	}
	return buf.Bytes(), nil
}

// pageCount reads the source's page count once per export. It doubles
// as a structural sanity check before handing the file to the importer.
func (c *canvas) pageCount(path string) (int, error) {
	if n, ok := c.pageCounts[path]; ok {
		return n, nil
	}
	doc, err := reader.Open(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	n := doc.NumPages()
	c.pageCounts[path] = n
	return n, nil
}

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
