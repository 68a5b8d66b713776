package domain

import "time"

// SourceDocument represents one uploaded PDF tracked by the registry.
// It is read-only after registration: PageCount and Pages are computed
// once from the uploaded bytes and never change.
type SourceDocument struct {
	// ID is the opaque unique identifier, generated at registration.
	// It is the sole external reference to the document.
	ID string

	// StoragePath is the location of the backing file. The file itself
	// is owned by the file-storage collaborator, not the core.
	StoragePath string

	// OriginalName is the user-supplied display name.
	OriginalName string

	// PageCount is the number of pages, fixed at registration time.
	PageCount int

	// Pages holds per-page native dimensions, captured at registration
	// so listing and placement validation never reopen the file.
	Pages []PageInfo

	// CreatedAt is when the document was registered.
	CreatedAt time.Time
}

// PageInfo describes one page's native geometry in PDF points.
// It reflects the page's own coordinate space and is unaffected
// by any later placement transform.
type PageInfo struct {
	// PageIndex is the 0-based position within the source document.
	PageIndex int `json:"page_num"`

	// Width is the native page width in points.
	Width float64 `json:"width"`

	// Height is the native page height in points.
	Height float64 `json:"height"`
}
