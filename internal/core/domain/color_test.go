package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Color
		wantErr  bool
	}{
		{
			name:     "with hash prefix",
			input:    "#ff8000",
			expected: Color{R: 0xff, G: 0x80, B: 0x00},
		},
		{
			name:     "without hash prefix",
			input:    "336699",
			expected: Color{R: 0x33, G: 0x66, B: 0x99},
		},
		{
			name:     "uppercase digits",
			input:    "#FFAA00",
			expected: Color{R: 0xff, G: 0xaa, B: 0x00},
		},
		{
			name:     "surrounding whitespace",
			input:    "  #102030  ",
			expected: Color{R: 0x10, G: 0x20, B: 0x30},
		},
		{
			name:    "too short",
			input:   "#fff",
			wantErr: true,
		},
		{
			name:    "non-hex digits",
			input:   "#zzzzzz",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseHexColor(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestColor_IsWhite(t *testing.T) {
	white, err := ParseHexColor(DefaultBackground)
	require.NoError(t, err)
	assert.True(t, white.IsWhite())

	almost := Color{R: 0xff, G: 0xff, B: 0xfe}
	assert.False(t, almost.IsWhite())
}
