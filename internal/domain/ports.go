package domain

import (
	"context"
	"time"
)

// StoreInitializer initializes the board store.
type StoreInitializer interface {
	// Initialize creates the store with the given columns if it doesn't exist.
	// Returns true if a new board was created.
	Initialize(columns []Column) (bool, error)

	// IsInitialized reports whether the store exists.
	IsInitialized() bool
}

// BoardRepository manages board persistence.
type BoardRepository interface {
	// Load returns the current board.
	Load() (Board, error)

	// Save replaces the stored board.
	Save(board Board) error

	// Update loads the board, applies fn and saves the result while holding an
	// exclusive lock. Nothing is written if fn returns an error; when that
	// error is ErrUnchanged, Update returns nil.
	Update(fn func(Board) (Board, error)) error
}

// BoardHistory lists past revisions of the stored board.
// Only stores that keep history implement it.
type BoardHistory interface {
	// History returns up to limit revisions, newest first.
	// A non-positive limit returns all of them.
	History(limit int) ([]BoardRevision, error)
}

// BoardRevision is a single stored version of the board.
type BoardRevision struct {
	Time    time.Time `json:"time"`
	Hash    string    `json:"hash"`
	Message string    `json:"message"`
}

// MoveObserver is notified after a card move has been committed.
// Returned errors are reported but never undo the move.
type MoveObserver interface {
	CardMoved(ctx context.Context, event MoveEvent) error
}

// MoveObserverFunc adapts a function to MoveObserver.
type MoveObserverFunc func(ctx context.Context, event MoveEvent) error

// CardMoved calls f.
func (f MoveObserverFunc) CardMoved(ctx context.Context, event MoveEvent) error {
	return f(ctx, event)
}

// MoveLog reads back recorded card moves.
type MoveLog interface {
	// Recent returns up to limit of the most recent moves, oldest first.
	// A non-positive limit returns all of them.
	Recent(limit int) ([]MoveEvent, error)
}

// DocumentStore persists page rows. Rows use the keys defined by the Row*
// constants; the store owns created_at and updated_at.
type DocumentStore interface {
	// Get returns the row for slug, or nil if it does not exist.
	Get(ctx context.Context, slug string) (Document, error)

	// List returns all rows ordered by most recently updated first.
	List(ctx context.Context) ([]Document, error)

	// Put inserts or updates the row identified by its slug.
	Put(ctx context.Context, row Document) error

	// Delete removes the row for slug.
	Delete(ctx context.Context, slug string) error
}

// Logger provides file-based logging.
type Logger interface {
	Info(category, msg string)
	Debug(category, msg string)
	Warn(category, msg string)
	Error(category, msg string)
}

// ConfigLoader loads configuration from files.
type ConfigLoader interface {
	// Load returns the merged configuration (global + repo).
	Load() (*Config, error)

	// LoadGlobal returns only the global configuration.
	LoadGlobal() (*Config, error)
}

// ConfigManager provides config file management operations.
type ConfigManager interface {
	// GetRepoConfigInfo returns information about the repository config file.
	GetRepoConfigInfo() ConfigInfo

	// GetGlobalConfigInfo returns information about the global config file.
	GetGlobalConfigInfo() ConfigInfo

	// InitRepoConfig creates a repository config file with the default template.
	InitRepoConfig(cfg *Config) error

	// InitGlobalConfig creates a global config file with the default template.
	InitGlobalConfig(cfg *Config) error
}

// ConfigInfo describes a config file.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}

// Clock provides time operations for testability.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the system clock.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time {
	return time.Now()
}
