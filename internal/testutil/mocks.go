// Package testutil provides shared test utilities and mock implementations.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// MockClock is a test double for domain.Clock.
type MockClock struct {
	NowTime time.Time
}

// Now returns the configured time.
func (m *MockClock) Now() time.Time {
	return m.NowTime
}

// MockBoardRepository is an in-memory domain.BoardRepository.
// Fields are ordered to minimize memory padding.
type MockBoardRepository struct {
	LoadErr   error
	SaveErr   error
	Board     domain.Board
	SaveCount int
	mu        sync.Mutex
}

// NewMockBoardRepository creates a repository holding an empty board with
// the default columns.
func NewMockBoardRepository() *MockBoardRepository {
	return &MockBoardRepository{Board: domain.NewBoard(domain.DefaultColumns())}
}

// Ensure MockBoardRepository implements domain.BoardRepository interface.
var _ domain.BoardRepository = (*MockBoardRepository)(nil)

// Load returns the stored board or LoadErr.
func (m *MockBoardRepository) Load() (domain.Board, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return domain.Board{}, m.LoadErr
	}
	return m.Board, nil
}

// Save stores the board or returns SaveErr.
func (m *MockBoardRepository) Save(board domain.Board) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Board = board
	m.SaveCount++
	return nil
}

// Update applies fn to the stored board.
func (m *MockBoardRepository) Update(fn func(domain.Board) (domain.Board, error)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.LoadErr != nil {
		return m.LoadErr
	}
	next, err := fn(m.Board)
	if errors.Is(err, domain.ErrUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Board = next
	m.SaveCount++
	return nil
}

// MockStoreInitializer is a test double for domain.StoreInitializer.
type MockStoreInitializer struct {
	InitErr     error
	Columns     []domain.Column
	Initialized bool
}

// Ensure MockStoreInitializer implements domain.StoreInitializer interface.
var _ domain.StoreInitializer = (*MockStoreInitializer)(nil)

// Initialize records the columns and marks the store initialized.
func (m *MockStoreInitializer) Initialize(columns []domain.Column) (bool, error) {
	if m.InitErr != nil {
		return false, m.InitErr
	}
	if m.Initialized {
		return false, nil
	}
	m.Columns = columns
	m.Initialized = true
	return true, nil
}

// IsInitialized returns the Initialized flag.
func (m *MockStoreInitializer) IsInitialized() bool {
	return m.Initialized
}

// MockMoveObserver records the events it receives.
type MockMoveObserver struct {
	Err    error
	Events []domain.MoveEvent
}

// Ensure MockMoveObserver implements domain.MoveObserver interface.
var _ domain.MoveObserver = (*MockMoveObserver)(nil)

// CardMoved records event and returns Err.
func (m *MockMoveObserver) CardMoved(_ context.Context, event domain.MoveEvent) error {
	m.Events = append(m.Events, event)
	return m.Err
}

// MockMoveLog is a test double for domain.MoveLog.
type MockMoveLog struct {
	Err    error
	Events []domain.MoveEvent
}

// Recent returns the last limit events.
func (m *MockMoveLog) Recent(limit int) ([]domain.MoveEvent, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && len(m.Events) > limit {
		return m.Events[len(m.Events)-limit:], nil
	}
	return m.Events, nil
}

// MockDocumentStore is an in-memory domain.DocumentStore.
// Rows are stored as given; created_at and updated_at are stamped from Clock.
type MockDocumentStore struct {
	Clock  domain.Clock
	Rows   map[string]domain.Document
	GetErr error
	PutErr error
	Order  []string // Slugs in insertion order
}

// NewMockDocumentStore creates an empty MockDocumentStore.
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{
		Rows:  make(map[string]domain.Document),
		Clock: &MockClock{NowTime: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
}

// Ensure MockDocumentStore implements domain.DocumentStore interface.
var _ domain.DocumentStore = (*MockDocumentStore)(nil)

// Get returns a copy of the row for slug.
func (m *MockDocumentStore) Get(_ context.Context, slug string) (domain.Document, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	row, ok := m.Rows[slug]
	if !ok {
		return nil, nil
	}
	return row.Clone(), nil
}

// List returns copies of all rows in insertion order.
func (m *MockDocumentStore) List(_ context.Context) ([]domain.Document, error) {
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	docs := make([]domain.Document, 0, len(m.Order))
	for _, slug := range m.Order {
		docs = append(docs, m.Rows[slug].Clone())
	}
	return docs, nil
}

// Put stores a copy of row.
func (m *MockDocumentStore) Put(_ context.Context, row domain.Document) error {
	if m.PutErr != nil {
		return m.PutErr
	}
	slug, ok := row.NonEmptyString(domain.RowSlug)
	if !ok {
		return domain.ErrEmptySlug
	}
	now := domain.FormatTimestamp(m.Clock.Now())
	stored := row.Clone()
	stored[domain.RowUpdatedAt] = now
	if existing, ok := m.Rows[slug]; ok {
		stored[domain.RowCreatedAt] = existing[domain.RowCreatedAt]
	} else {
		stored[domain.RowCreatedAt] = now
		m.Order = append(m.Order, slug)
	}
	m.Rows[slug] = stored
	return nil
}

// Delete removes the row for slug.
func (m *MockDocumentStore) Delete(_ context.Context, slug string) error {
	if _, ok := m.Rows[slug]; !ok {
		return fmt.Errorf("%w: %s", domain.ErrPageNotFound, slug)
	}
	delete(m.Rows, slug)
	m.Order = slices.DeleteFunc(m.Order, func(s string) bool { return s == slug })
	return nil
}

// LogEntry is a single message captured by MockLogger.
type LogEntry struct {
	Level    string
	Category string
	Msg      string
}

// MockLogger captures log messages.
type MockLogger struct {
	Entries []LogEntry
	mu      sync.Mutex
}

// Ensure MockLogger implements domain.Logger interface.
var _ domain.Logger = (*MockLogger)(nil)

func (m *MockLogger) add(level, category, msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, LogEntry{Level: level, Category: category, Msg: msg})
}

// Info records an info message.
func (m *MockLogger) Info(category, msg string) { m.add("INFO", category, msg) }

// Debug records a debug message.
func (m *MockLogger) Debug(category, msg string) { m.add("DEBUG", category, msg) }

// Warn records a warning message.
func (m *MockLogger) Warn(category, msg string) { m.add("WARN", category, msg) }

// Error records an error message.
func (m *MockLogger) Error(category, msg string) { m.add("ERROR", category, msg) }

// MockConfigLoader is a test double for domain.ConfigLoader.
type MockConfigLoader struct {
	Config       *domain.Config
	GlobalConfig *domain.Config
	LoadErr      error
	GlobalErr    error
}

// NewMockConfigLoader creates a new MockConfigLoader with default config.
func NewMockConfigLoader() *MockConfigLoader {
	return &MockConfigLoader{
		Config: domain.NewDefaultConfig(),
	}
}

// Ensure MockConfigLoader implements domain.ConfigLoader interface.
var _ domain.ConfigLoader = (*MockConfigLoader)(nil)

// Load returns the configured config or error.
func (m *MockConfigLoader) Load() (*domain.Config, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Config, nil
}

// LoadGlobal returns the configured config or error.
func (m *MockConfigLoader) LoadGlobal() (*domain.Config, error) {
	if m.GlobalErr != nil {
		return nil, m.GlobalErr
	}
	if m.GlobalConfig != nil {
		return m.GlobalConfig, nil
	}
	return m.Config, nil
}

// MockConfigManager is a test double for domain.ConfigManager.
// Fields are ordered to minimize memory padding.
type MockConfigManager struct {
	InitRepoErr      error
	InitGlobalErr    error
	InitConfig       *domain.Config
	RepoConfigInfo   domain.ConfigInfo
	GlobalConfigInfo domain.ConfigInfo
	InitRepoCalled   bool
	InitGlobalCalled bool
}

// NewMockConfigManager creates a new MockConfigManager.
func NewMockConfigManager() *MockConfigManager {
	return &MockConfigManager{
		RepoConfigInfo: domain.ConfigInfo{
			Path: "/test/.salesdeck/config.toml",
		},
		GlobalConfigInfo: domain.ConfigInfo{
			Path: "/home/test/.config/salesdeck/config.toml",
		},
	}
}

// Ensure MockConfigManager implements domain.ConfigManager interface.
var _ domain.ConfigManager = (*MockConfigManager)(nil)

// GetRepoConfigInfo returns the configured repo config info.
func (m *MockConfigManager) GetRepoConfigInfo() domain.ConfigInfo {
	return m.RepoConfigInfo
}

// GetGlobalConfigInfo returns the configured global config info.
func (m *MockConfigManager) GetGlobalConfigInfo() domain.ConfigInfo {
	return m.GlobalConfigInfo
}

// InitRepoConfig records the call and returns configured error.
func (m *MockConfigManager) InitRepoConfig(cfg *domain.Config) error {
	m.InitRepoCalled = true
	m.InitConfig = cfg
	return m.InitRepoErr
}

// InitGlobalConfig records the call and returns configured error.
func (m *MockConfigManager) InitGlobalConfig(cfg *domain.Config) error {
	m.InitGlobalCalled = true
	m.InitConfig = cfg
	return m.InitGlobalErr
}

// MockBoardHistory is a test double for domain.BoardHistory.
type MockBoardHistory struct {
	Err       error
	Revisions []domain.BoardRevision
}

// History returns up to limit configured revisions.
func (m *MockBoardHistory) History(limit int) ([]domain.BoardRevision, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if limit > 0 && len(m.Revisions) > limit {
		return m.Revisions[:limit], nil
	}
	return m.Revisions, nil
}
