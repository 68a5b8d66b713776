// Package memory provides in-memory implementations of the driven
// storage ports. Used in tests and for ephemeral runs where document
// metadata does not need to survive a restart.
package memory

import (
	"context"
	"sync"

	"github.com/pastepdf/pastepdf/internal/core/domain"
	"github.com/pastepdf/pastepdf/internal/core/ports/driven"
)

// Ensure RegistryStore implements the interface.
var _ driven.RegistryStore = (*RegistryStore)(nil)

// RegistryStore is an in-memory implementation of driven.RegistryStore.
type RegistryStore struct {
	mu        sync.RWMutex
	documents map[string]domain.SourceDocument
}

// NewRegistryStore creates a new in-memory registry store.
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{
		documents: make(map[string]domain.SourceDocument),
	}
}

// Save stores a document's metadata.
func (s *RegistryStore) Save(_ context.Context, doc *domain.SourceDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// Get retrieves a document by id.
func (s *RegistryStore) Get(_ context.Context, id string) (*domain.SourceDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &doc, nil
}

// List returns all registered documents.
func (s *RegistryStore) List(_ context.Context) ([]domain.SourceDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	docs := make([]domain.SourceDocument, 0, len(s.documents))
	for id := range s.documents {
		docs = append(docs, s.documents[id])
	}
	return docs, nil
}

// Delete removes a document's metadata.
func (s *RegistryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.documents, id)
	return nil
}
