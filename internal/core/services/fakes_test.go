package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pastepdf/pastepdf/internal/core/domain"
	"github.com/pastepdf/pastepdf/internal/core/ports/driven"
)

// Test doubles for the driven ports. The memory registry store from
// the adapters package covers RegistryStore; the fakes here cover the
// file, page-access, canvas, and validation collaborators.

// fakeFileStore keeps saved bytes in a map and records deletions.
type fakeFileStore struct {
	mu      sync.Mutex
	saved   map[string][]byte
	deleted []string
	saveErr error
}

var _ driven.FileStore = (*fakeFileStore)(nil)

func newFakeFileStore() *fakeFileStore {
	return &fakeFileStore{saved: make(map[string][]byte)}
}

func (f *fakeFileStore) Save(_ context.Context, id string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved[id] = data
	return "mem://" + id, nil
}

func (f *fakeFileStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeFileStore) RemoveAll(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = make(map[string][]byte)
	return nil
}

func (f *fakeFileStore) stored() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saved)
}

func (f *fakeFileStore) deletions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}

// fakePageSource serves fixed page geometry for any opened path.
type fakePageSource struct {
	pages     []domain.PageInfo
	openErr   error
	sizeErr   error
	renderErr error
}

var _ driven.PageSource = (*fakePageSource)(nil)

func (f *fakePageSource) Open(_ context.Context, path string) (driven.PageHandle, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return &fakePageHandle{source: f, path: path}, nil
}

type fakePageHandle struct {
	source *fakePageSource
	path   string
}

func (h *fakePageHandle) PageCount() int {
	return len(h.source.pages)
}

func (h *fakePageHandle) PageSize(index int) (float64, float64, error) {
	if h.source.sizeErr != nil {
		return 0, 0, h.source.sizeErr
	}
	if index < 0 || index >= len(h.source.pages) {
		return 0, 0, errors.New("index out of range")
	}
	page := h.source.pages[index]
	return page.Width, page.Height, nil
}

func (h *fakePageHandle) RenderPNG(index int, scale float64) ([]byte, error) {
	if h.source.renderErr != nil {
		return nil, h.source.renderErr
	}
	return []byte(fmt.Sprintf("png:%s:%d:%g", h.path, index, scale)), nil
}

func (h *fakePageHandle) Close() error { return nil }

// fakeValidator accepts or rejects every stream.
type fakeValidator struct {
	err error
}

var _ driven.Validator = (*fakeValidator)(nil)

func (f *fakeValidator) Validate(_ context.Context, _ []byte) error {
	return f.err
}

// fakeCanvasBuilder records drawing operations in order.
type fakeCanvasBuilder struct {
	canvas     *fakeCanvas
	newErr     error
	lastWidth  float64
	lastHeight float64
}

var _ driven.CanvasBuilder = (*fakeCanvasBuilder)(nil)

func newFakeCanvasBuilder() *fakeCanvasBuilder {
	return &fakeCanvasBuilder{canvas: &fakeCanvas{}}
}

func (f *fakeCanvasBuilder) NewCanvas(_ context.Context, width, height float64) (driven.Canvas, error) {
	if f.newErr != nil {
		return nil, f.newErr
	}
	f.lastWidth = width
	f.lastHeight = height
	return f.canvas, nil
}

type fakeCanvas struct {
	ops      []string
	placeErr map[string]error
	bytesErr error
}

var _ driven.Canvas = (*fakeCanvas)(nil)

func (c *fakeCanvas) FillBackground(col domain.Color) error {
	c.ops = append(c.ops, fmt.Sprintf("background %02x%02x%02x", col.R, col.G, col.B))
	return nil
}

func (c *fakeCanvas) PlacePage(path string, pageIndex int, x, y, w, h, rotation float64) error {
	if err := c.placeErr[path]; err != nil {
		return err
	}
	c.ops = append(c.ops, fmt.Sprintf("place %s page %d at %g,%g %gx%g rot %g", path, pageIndex, x, y, w, h, rotation))
	return nil
}

func (c *fakeCanvas) Bytes() ([]byte, error) {
	if c.bytesErr != nil {
		return nil, c.bytesErr
	}
	return []byte("%PDF-fake"), nil
}
