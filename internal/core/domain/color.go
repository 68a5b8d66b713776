package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is an opaque 8-bit RGB colour decoded from a hex string.
type Color struct {
	R, G, B uint8
}

// IsWhite reports whether the colour equals opaque white, the canvas
// default. A white background is never painted explicitly.
func (c Color) IsWhite() bool {
	return c.R == 0xff && c.G == 0xff && c.B == 0xff
}

// ParseHexColor decodes an RRGGBB colour string. The leading '#' is
// optional and hex digits are case-insensitive.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("colour %q: %w", s, ErrInvalidInput)
	}
	var channels [3]uint8
	for i := range channels {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("colour %q: %w", s, ErrInvalidInput)
		}
		channels[i] = uint8(v)
	}
	return Color{R: channels[0], G: channels[1], B: channels[2]}, nil
}
