package driving

import (
	"context"

	"github.com/pastepdf/pastepdf/internal/core/domain"
)

// RegistryService manages the pool of uploaded source documents.
type RegistryService interface {
	// Register parses data as a PDF, stores the bytes durably, and
	// returns the new document's id and page metadata. A stream that
	// saves but fails to parse is rolled back: no registry entry and
	// no orphaned backing file remain.
	Register(ctx context.Context, name string, data []byte) (*RegisterResult, error)

	// Lookup retrieves a registered document by id.
	Lookup(ctx context.Context, id string) (*domain.SourceDocument, error)

	// List returns summaries of all registered documents in a stable
	// order (registration time, then id).
	List(ctx context.Context) ([]DocumentSummary, error)

	// Unregister removes a document and requests deletion of its
	// backing bytes. Safe to call while a render or export holding the
	// id is in flight: the bytes are deleted only once no reader
	// remains.
	Unregister(ctx context.Context, id string) error

	// Teardown discards all registered documents and their backing
	// storage. Explicit replacement for process-exit cleanup.
	Teardown(ctx context.Context) error
}

// RegisterResult is the metadata returned for a freshly registered
// document.
type RegisterResult struct {
	ID        string            `json:"file_id"`
	Name      string            `json:"filename"`
	PageCount int               `json:"page_count"`
	Pages     []domain.PageInfo `json:"pages"`
}

// DocumentSummary is one row of a registry listing.
type DocumentSummary struct {
	ID        string `json:"file_id"`
	Name      string `json:"filename"`
	PageCount int    `json:"page_count"`
}
