package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/pastepdf/pastepdf/internal/core/domain"
	"github.com/pastepdf/pastepdf/internal/core/ports/driven"
	"github.com/pastepdf/pastepdf/internal/core/ports/driving"
	"github.com/pastepdf/pastepdf/internal/logger"
)

// Ensure RegistryService implements the interface.
var _ driving.RegistryService = (*RegistryService)(nil)

// RegistryService manages the pool of uploaded source documents.
type RegistryService struct {
	store     driven.RegistryStore
	files     driven.FileStore
	pages     driven.PageSource
	validator driven.Validator
	leases    *LeaseTable

	// maxUploadBytes rejects oversized uploads when > 0.
	maxUploadBytes int64
}

// NewRegistryService creates a new registry service. leases is shared
// with the renderer and composer services so Unregister can honour the
// deletion barrier.
func NewRegistryService(
	store driven.RegistryStore,
	files driven.FileStore,
	pages driven.PageSource,
	validator driven.Validator,
	leases *LeaseTable,
	maxUploadBytes int64,
) *RegistryService {
	return &RegistryService{
		store:          store,
		files:          files,
		pages:          pages,
		validator:      validator,
		leases:         leases,
		maxUploadBytes: maxUploadBytes,
	}
}

// Register parses data as a PDF, stores the bytes, and records metadata.
func (s *RegistryService) Register(ctx context.Context, name string, data []byte) (*driving.RegisterResult, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty upload: %w", domain.ErrInvalidDocument)
	}
	if s.maxUploadBytes > 0 && int64(len(data)) > s.maxUploadBytes {
		return nil, fmt.Errorf("upload of %d bytes exceeds limit %d: %w", len(data), s.maxUploadBytes, domain.ErrInvalidInput)
	}
	// The validator wraps domain.ErrInvalidDocument itself.
	if err := s.validator.Validate(ctx, data); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	path, err := s.files.Save(ctx, id, data)
	if err != nil {
		return nil, fmt.Errorf("storing upload: %w", err)
	}

	doc, err := s.inspect(ctx, id, path, name)
	if err != nil {
		// Saved bytes that fail inspection must not linger.
		s.rollback(ctx, id)
		return nil, err
	}

	if err := s.store.Save(ctx, doc); err != nil {
		s.rollback(ctx, id)
		return nil, fmt.Errorf("saving registry entry: %w", err)
	}

	logger.Debug("registered %s (%q, %d pages)", doc.ID, doc.OriginalName, doc.PageCount)
	return &driving.RegisterResult{
		ID:        doc.ID,
		Name:      doc.OriginalName,
		PageCount: doc.PageCount,
		Pages:     doc.Pages,
	}, nil
}

// inspect opens the stored bytes and captures page count and per-page
// native dimensions.
func (s *RegistryService) inspect(ctx context.Context, id, path, name string) (*domain.SourceDocument, error) {
	h, err := s.pages.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidDocument, err)
	}
	defer h.Close()

	count := h.PageCount()
	if count == 0 {
		return nil, fmt.Errorf("document has no pages: %w", domain.ErrInvalidDocument)
	}

	pages := make([]domain.PageInfo, 0, count)
	for i := 0; i < count; i++ {
		w, ht, err := h.PageSize(i)
		if err != nil {
			return nil, fmt.Errorf("%w: inspecting page %d: %v", domain.ErrInvalidDocument, i, err)
		}
		pages = append(pages, domain.PageInfo{PageIndex: i, Width: w, Height: ht})
	}

	return &domain.SourceDocument{
		ID:           id,
		StoragePath:  path,
		OriginalName: name,
		PageCount:    count,
		Pages:        pages,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func (s *RegistryService) rollback(ctx context.Context, id string) {
	if err := s.files.Delete(ctx, id); err != nil {
		logger.Warn("rollback of %s failed: %v", id, err)
	}
}

// Lookup retrieves a registered document by id.
func (s *RegistryService) Lookup(ctx context.Context, id string) (*domain.SourceDocument, error) {
	return s.store.Get(ctx, id)
}

// List returns summaries of all registered documents, ordered by
// registration time then id.
func (s *RegistryService) List(ctx context.Context) ([]driving.DocumentSummary, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool {
		if !docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].CreatedAt.Before(docs[j].CreatedAt)
		}
		return docs[i].ID < docs[j].ID
	})

	summaries := make([]driving.DocumentSummary, 0, len(docs))
	for _, doc := range docs {
		summaries = append(summaries, driving.DocumentSummary{
			ID:        doc.ID,
			Name:      doc.OriginalName,
			PageCount: doc.PageCount,
		})
	}
	return summaries, nil
}

// Unregister removes a document's registry entry immediately and deletes
// its backing bytes once no render or export lease on the id remains.
func (s *RegistryService) Unregister(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.leases.DeleteWhenIdle(id, func() {
		// Detached from the caller's ctx: the deletion may outlive the
		// Unregister request when a reader still holds the id.
		if err := s.files.Delete(context.Background(), id); err != nil {
			logger.Warn("deleting bytes for %s: %v", id, err)
		}
	})
	logger.Debug("unregistered %s", id)
	return nil
}

// Teardown discards every registered document and all backing storage.
func (s *RegistryService) Teardown(ctx context.Context) error {
	docs, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	for _, doc := range docs {
		if err := s.store.Delete(ctx, doc.ID); err != nil {
			return err
		}
	}
	return s.files.RemoveAll(ctx)
}
