package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidDocument indicates uploaded bytes are not an openable PDF.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrNotFound indicates a requested document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidPageIndex indicates a page index outside the document's range.
	ErrInvalidPageIndex = errors.New("invalid page index")

	// ErrRenderFailure indicates thumbnail rendering failed.
	ErrRenderFailure = errors.New("render failure")

	// ErrEmptyComposition indicates an export was requested with no items.
	ErrEmptyComposition = errors.New("empty composition")

	// ErrExportFailure indicates the output document could not be built
	// or serialized. No partial output is ever returned alongside it.
	ErrExportFailure = errors.New("export failure")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)
