package app

import (
	"context"
	"os"
	"sync"

	"github.com/salesdeck/salesdeck/internal/domain"
	"github.com/salesdeck/salesdeck/internal/infra/pagestore"
)

// lazyDocumentStore opens the pages database on first use, so commands that
// never touch pages do not create it. Only a successful open is kept; until
// then every call checks the data directory again.
type lazyDocumentStore struct {
	store   *pagestore.Store
	dataDir string
	path    string
	mu      sync.Mutex
}

func newLazyDocumentStore(dataDir, path string) *lazyDocumentStore {
	return &lazyDocumentStore{dataDir: dataDir, path: path}
}

// open returns the underlying store. The data directory must already exist.
func (l *lazyDocumentStore) open() (*pagestore.Store, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store != nil {
		return l.store, nil
	}
	if _, err := os.Stat(l.dataDir); err != nil {
		return nil, domain.ErrNotInitialized
	}
	store, err := pagestore.New(l.path)
	if err != nil {
		return nil, err
	}
	l.store = store
	return store, nil
}

func (l *lazyDocumentStore) Get(ctx context.Context, slug string) (domain.Document, error) {
	s, err := l.open()
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, slug)
}

func (l *lazyDocumentStore) List(ctx context.Context) ([]domain.Document, error) {
	s, err := l.open()
	if err != nil {
		return nil, err
	}
	return s.List(ctx)
}

func (l *lazyDocumentStore) Put(ctx context.Context, row domain.Document) error {
	s, err := l.open()
	if err != nil {
		return err
	}
	return s.Put(ctx, row)
}

func (l *lazyDocumentStore) Delete(ctx context.Context, slug string) error {
	s, err := l.open()
	if err != nil {
		return err
	}
	return s.Delete(ctx, slug)
}

// Close closes the database if it was opened.
func (l *lazyDocumentStore) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.store == nil {
		return nil
	}
	return l.store.Close()
}

var _ domain.DocumentStore = (*lazyDocumentStore)(nil)
