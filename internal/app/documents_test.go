package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdeck/salesdeck/internal/domain"
)

func TestLazyDocumentStore_OpensAfterInit(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), domain.DataDirName)
	store := newLazyDocumentStore(dataDir, domain.PagesDBPath(dataDir))
	defer func() { _ = store.Close() }()
	ctx := context.Background()

	_, err := store.List(ctx)
	require.ErrorIs(t, err, domain.ErrNotInitialized)
	assert.NoFileExists(t, domain.PagesDBPath(dataDir))

	require.NoError(t, os.MkdirAll(dataDir, 0o750))

	require.NoError(t, store.Put(ctx, domain.Document{
		domain.RowSlug: "acme",
		domain.RowData: map[string]any{"title": "Acme"},
	}))
	docs, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "acme", docs[0][domain.RowSlug])
	assert.FileExists(t, domain.PagesDBPath(dataDir))
}

func TestLazyDocumentStore_CloseWithoutOpen(t *testing.T) {
	store := newLazyDocumentStore(t.TempDir(), filepath.Join(t.TempDir(), "pages.db"))

	assert.NoError(t, store.Close())
}
