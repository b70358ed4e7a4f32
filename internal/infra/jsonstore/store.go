// Package jsonstore provides a JSON file-based implementation of BoardRepository.
package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// storeData represents the JSON file structure.
type storeData struct {
	Board domain.Board `json:"board"`
	Meta  meta         `json:"meta"`
}

// meta contains store metadata.
type meta struct {
	Version  int `json:"version"`
	Revision int `json:"revision"` // Incremented on every write
}

const storeVersion = 1

// Store implements domain.BoardRepository using a JSON file.
type Store struct {
	path     string
	lockPath string
}

// New creates a new Store for the given file path.
// The file does not need to exist; Initialize creates it.
func New(path string) *Store {
	return &Store{
		path:     path,
		lockPath: path + ".lock",
	}
}

// Load returns the current board.
func (s *Store) Load() (domain.Board, error) {
	var board domain.Board
	err := s.withLock(func(data *storeData) error {
		board = data.Board
		return nil
	})
	return board, err
}

// Save replaces the stored board.
func (s *Store) Save(board domain.Board) error {
	return s.withLockWrite(func(data *storeData) error {
		data.Board = board
		return nil
	})
}

// Update applies fn to the stored board under an exclusive lock.
func (s *Store) Update(fn func(domain.Board) (domain.Board, error)) error {
	err := s.withLockWrite(func(data *storeData) error {
		next, err := fn(data.Board)
		if err != nil {
			return err
		}
		data.Board = next
		return nil
	})
	if errors.Is(err, domain.ErrUnchanged) {
		return nil
	}
	return err
}

// Revision returns the number of writes since the store was created.
func (s *Store) Revision() (int, error) {
	var rev int
	err := s.withLock(func(data *storeData) error {
		rev = data.Meta.Revision
		return nil
	})
	return rev, err
}

// IsInitialized checks if the store file exists.
func (s *Store) IsInitialized() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Initialize creates a store file holding an empty board with the given
// columns. An existing store is left untouched.
func (s *Store) Initialize(columns []domain.Column) (bool, error) {
	// Ensure parent directory exists
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return false, fmt.Errorf("create directory: %w", err)
	}

	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return false, err
	}
	defer s.releaseLock(lock)

	if _, err := os.Stat(s.path); err == nil {
		return false, nil // Already exists
	}

	data := &storeData{
		Board: domain.NewBoard(columns),
		Meta:  meta{Version: storeVersion},
	}
	if err := s.write(data); err != nil {
		return false, err
	}
	return true, nil
}

// withLock executes fn with a shared (read) lock.
func (s *Store) withLock(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_SH)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	return fn(data)
}

// withLockWrite executes fn with an exclusive (write) lock and writes the result.
func (s *Store) withLockWrite(fn func(*storeData) error) error {
	lock, err := s.acquireLock(syscall.LOCK_EX)
	if err != nil {
		return err
	}
	defer s.releaseLock(lock)

	data, err := s.read()
	if err != nil {
		return err
	}

	if err := fn(data); err != nil {
		return err
	}

	data.Meta.Revision++
	return s.write(data)
}

func (s *Store) acquireLock(lockType int) (*os.File, error) {
	// Ensure lock file directory exists
	dir := filepath.Dir(s.lockPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lock, err := os.OpenFile(s.lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := syscall.Flock(int(lock.Fd()), lockType); err != nil {
		_ = lock.Close()
		return nil, fmt.Errorf("acquire lock: %w", err)
	}

	return lock, nil
}

func (s *Store) releaseLock(lock *os.File) {
	_ = syscall.Flock(int(lock.Fd()), syscall.LOCK_UN)
	_ = lock.Close()
}

func (s *Store) read() (*storeData, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("read store file: %w", err)
	}

	var data storeData
	if err := json.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse store file: %w", err)
	}

	// Ensure card slices are non-nil so empty columns encode as []
	for i := range data.Board.Columns {
		if data.Board.Columns[i].Cards == nil {
			data.Board.Columns[i].Cards = []domain.Card{}
		}
	}

	if err := data.Board.Validate(); err != nil {
		return nil, fmt.Errorf("invalid board in %s: %w", s.path, err)
	}

	return &data, nil
}

func (s *Store) write(data *storeData) error {
	content, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal store data: %w", err)
	}

	// Write to temp file first, then rename for atomicity
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, content, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath) // Clean up
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}

// Ensure Store implements the board ports.
var (
	_ domain.BoardRepository  = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
)
