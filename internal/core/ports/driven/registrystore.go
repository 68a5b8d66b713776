package driven

import (
	"context"

	"github.com/pastepdf/pastepdf/internal/core/domain"
)

// RegistryStore owns the mapping from document id to metadata.
// Implementations must be safe for concurrent use: a reader never
// observes a partially inserted or partially removed entry.
type RegistryStore interface {
	// Save stores a document's metadata.
	Save(ctx context.Context, doc *domain.SourceDocument) error

	// Get retrieves a document by id.
	// Returns domain.ErrNotFound for unknown ids.
	Get(ctx context.Context, id string) (*domain.SourceDocument, error)

	// List returns all registered documents.
	List(ctx context.Context) ([]domain.SourceDocument, error)

	// Delete removes a document's metadata.
	// Returns domain.ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
}
