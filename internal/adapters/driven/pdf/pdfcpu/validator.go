// Package pdfcpu validates uploaded byte streams with the pdfcpu
// library before the registry stores them.
package pdfcpu

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pastepdf/pastepdf/internal/core/domain"
	"github.com/pastepdf/pastepdf/internal/core/ports/driven"
)

// Ensure Validator implements the interface.
var _ driven.Validator = (*Validator)(nil)

// Validator checks that a byte stream parses as a PDF document.
type Validator struct {
	conf *model.Configuration
}

// NewValidator creates a validator with relaxed validation, matching
// what mainstream viewers accept.
func NewValidator() *Validator {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Validator{conf: conf}
}

// Validate parses data as a PDF.
func (v *Validator) Validate(_ context.Context, data []byte) error {
	if err := api.Validate(bytes.NewReader(data), v.conf); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	return nil
}
