// Package disk stores uploaded document bytes as files in an uploads
// directory, one file per document id.
package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pastepdf/pastepdf/internal/core/ports/driven"
)

// Ensure FileStore implements the interface.
var _ driven.FileStore = (*FileStore)(nil)

// FileStore is a disk-based implementation of driven.FileStore.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir.
// If dir is empty, defaults to ~/.pastepdf/uploads.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, ".pastepdf", "uploads")
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating uploads directory: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

// Dir returns the uploads directory path.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes data to <dir>/<id>.pdf and returns the path.
func (s *FileStore) Save(_ context.Context, id string, data []byte) (string, error) {
	path := s.pathFor(id)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// Delete removes the stored bytes for id. A missing file is not an
// error: deletion after a registration rollback must be idempotent.
func (s *FileStore) Delete(_ context.Context, id string) error {
	path := s.pathFor(id)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %s: %w", path, err)
	}
	return nil
}

// RemoveAll discards the uploads directory and recreates it empty.
func (s *FileStore) RemoveAll(_ context.Context) error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("removing %s: %w", s.dir, err)
	}
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("recreating %s: %w", s.dir, err)
	}
	return nil
}

func (s *FileStore) pathFor(id string) string {
	return filepath.Join(s.dir, id+".pdf")
}
