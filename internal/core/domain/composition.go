package domain

import "fmt"

// Canvas and background defaults, applied when a composition omits them.
// 595x842 points is ISO A4.
const (
	DefaultCanvasWidth  = 595.0
	DefaultCanvasHeight = 842.0
	DefaultBackground   = "#ffffff"
)

// PlacementItem is one positioned, sized, rotated reference to a single
// page of a source document within a composition. Many items may reference
// the same document and even the same page.
type PlacementItem struct {
	// FileID references a registered SourceDocument. Unknown ids are
	// skipped during export, not fatal.
	FileID string `json:"file_id"`

	// PageIndex is the 0-based page within the source document.
	// Out-of-range values are skipped during export, not fatal.
	PageIndex int `json:"page_num"`

	// X, Y is the top-left position on the output canvas, in points.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Width, Height is the destination size in points, independent of
	// the source page's native size.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Rotation is the clockwise rotation in degrees applied to the
	// embedded content about the destination rectangle's centre.
	Rotation float64 `json:"rotation"`
}

// CompositionModel is the canvas specification for one export call.
// It is ephemeral: constructed from caller input, consumed by the
// composer, never persisted. Items order is paint order - later items
// draw on top of earlier ones.
type CompositionModel struct {
	CanvasWidth     float64         `json:"canvas_width"`
	CanvasHeight    float64         `json:"canvas_height"`
	BackgroundColor string          `json:"background_color"`
	Items           []PlacementItem `json:"items"`
}

// ApplyDefaults fills in zero or negative canvas dimensions and an empty
// background colour with the documented defaults.
func (m *CompositionModel) ApplyDefaults() {
	if m.CanvasWidth <= 0 {
		m.CanvasWidth = DefaultCanvasWidth
	}
	if m.CanvasHeight <= 0 {
		m.CanvasHeight = DefaultCanvasHeight
	}
	if m.BackgroundColor == "" {
		m.BackgroundColor = DefaultBackground
	}
}

// Validate checks the invariants that hold after ApplyDefaults: strictly
// positive canvas dimensions and a decodable background colour.
func (m *CompositionModel) Validate() error {
	if m.CanvasWidth <= 0 || m.CanvasHeight <= 0 {
		return fmt.Errorf("canvas %gx%g: %w", m.CanvasWidth, m.CanvasHeight, ErrInvalidInput)
	}
	if _, err := ParseHexColor(m.BackgroundColor); err != nil {
		return err
	}
	return nil
}
