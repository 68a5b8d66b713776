package driven

import "context"

// FileStore persists uploaded document bytes. It is the external
// file-storage collaborator: the core never touches the filesystem
// directly and never invents paths of its own.
type FileStore interface {
	// Save durably stores data under the given document id and returns
	// the storage path future reads should use.
	Save(ctx context.Context, id string, data []byte) (string, error)

	// Delete removes the stored bytes for a document id. Deleting an
	// id that was never saved is not an error.
	Delete(ctx context.Context, id string) error

	// RemoveAll discards every stored document. Invoked from explicit
	// caller teardown only; the core registers no exit hooks.
	RemoveAll(ctx context.Context) error
}
