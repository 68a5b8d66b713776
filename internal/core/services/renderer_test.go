package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pastepdf/pastepdf/internal/adapters/driven/storage/memory"
	"github.com/pastepdf/pastepdf/internal/core/domain"
)

func seedDocument(t *testing.T, store *memory.RegistryStore, id string, pageCount int) {
	t.Helper()
	pages := make([]domain.PageInfo, pageCount)
	for i := range pages {
		pages[i] = domain.PageInfo{PageIndex: i, Width: 595, Height: 842}
	}
	err := store.Save(context.Background(), &domain.SourceDocument{
		ID:           id,
		StoragePath:  "mem://" + id,
		OriginalName: id + ".pdf",
		PageCount:    pageCount,
		Pages:        pages,
		CreatedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)
}

func TestRendererService_RenderThumbnail(t *testing.T) {
	store := memory.NewRegistryStore()
	seedDocument(t, store, "doc-1", 3)
	service := NewRendererService(store, &fakePageSource{pages: twoPages()}, NewLeaseTable())

	png, err := service.RenderThumbnail(context.Background(), "doc-1", 1, 2.0)

	require.NoError(t, err)
	assert.Equal(t, "png:mem://doc-1:1:2", string(png))
}

func TestRendererService_DefaultScale(t *testing.T) {
	store := memory.NewRegistryStore()
	seedDocument(t, store, "doc-1", 1)
	service := NewRendererService(store, &fakePageSource{pages: twoPages()}, NewLeaseTable())

	png, err := service.RenderThumbnail(context.Background(), "doc-1", 0, 0)

	require.NoError(t, err)
	assert.Equal(t, "png:mem://doc-1:0:1", string(png), "scale <= 0 falls back to 1.0")
}

func TestRendererService_UnknownDocument(t *testing.T) {
	service := NewRendererService(memory.NewRegistryStore(), &fakePageSource{}, NewLeaseTable())

	_, err := service.RenderThumbnail(context.Background(), "missing", 0, 1.0)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRendererService_InvalidPageIndex(t *testing.T) {
	store := memory.NewRegistryStore()
	seedDocument(t, store, "doc-1", 2)
	service := NewRendererService(store, &fakePageSource{pages: twoPages()}, NewLeaseTable())

	for _, index := range []int{-1, 2, 99} {
		_, err := service.RenderThumbnail(context.Background(), "doc-1", index, 1.0)
		assert.ErrorIs(t, err, domain.ErrInvalidPageIndex, "index %d", index)
	}
}

func TestRendererService_RenderErrorIsRenderFailure(t *testing.T) {
	store := memory.NewRegistryStore()
	seedDocument(t, store, "doc-1", 1)
	pages := &fakePageSource{pages: twoPages(), renderErr: errors.New("corrupt content stream")}
	service := NewRendererService(store, pages, NewLeaseTable())

	_, err := service.RenderThumbnail(context.Background(), "doc-1", 0, 1.0)

	assert.ErrorIs(t, err, domain.ErrRenderFailure)
}

func TestRendererService_OpenErrorIsRenderFailure(t *testing.T) {
	store := memory.NewRegistryStore()
	seedDocument(t, store, "doc-1", 1)
	pages := &fakePageSource{pages: twoPages(), openErr: errors.New("file vanished")}
	service := NewRendererService(store, pages, NewLeaseTable())

	_, err := service.RenderThumbnail(context.Background(), "doc-1", 0, 1.0)

	assert.ErrorIs(t, err, domain.ErrRenderFailure)
}
