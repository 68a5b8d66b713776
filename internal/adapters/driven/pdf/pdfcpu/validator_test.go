package pdfcpu

import (
	"bytes"
	"context"
	"testing"

	gofpdf "github.com/lvillar/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastepdf/pastepdf/internal/core/domain"
)

func fixturePDF(t *testing.T) []byte {
	t.Helper()

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 12)
	pdf.Text(40, 60, "fixture")

	var buf bytes.Buffer
	require.NoError(t, pdf.Output(&buf))
	return buf.Bytes()
}

func TestValidator_AcceptsPDF(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(context.Background(), fixturePDF(t)))
}

func TestValidator_RejectsJunk(t *testing.T) {
	v := NewValidator()

	for name, data := range map[string][]byte{
		"empty":     {},
		"text":      []byte("this is not a pdf"),
		"truncated": fixturePDF(t)[:64],
	} {
		err := v.Validate(context.Background(), data)
		assert.ErrorIs(t, err, domain.ErrInvalidDocument, name)
	}
}
