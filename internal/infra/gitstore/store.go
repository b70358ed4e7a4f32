// Package gitstore provides a Git plumbing-based implementation of BoardRepository.
package gitstore

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"gopkg.in/yaml.v3"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// boardFile is the tree entry holding the serialized board.
const boardFile = "board.yaml"

// Store implements domain.BoardRepository using Git plumbing (refs, trees and commits).
//
// Data structure:
//
//	refs/<namespace>/
//	  initialized → blob (marker)
//	  board       → commit → tree { board.yaml }
//
// Every write creates a new commit whose parent is the previous board commit,
// so the ref doubles as an audit trail of board revisions.
type Store struct {
	repo      *git.Repository
	clock     domain.Clock
	namespace string // e.g., "salesdeck"
	mu        sync.RWMutex
}

// New opens the repository at repoPath and creates a Store for it.
func New(repoPath, namespace string) (*Store, error) {
	repo, err := git.PlainOpenWithOptions(repoPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open git repository: %w", err)
	}
	return NewWithRepo(repo, namespace), nil
}

// NewWithRepo creates a new Store with an existing repository instance.
func NewWithRepo(repo *git.Repository, namespace string) *Store {
	return &Store{
		repo:      repo,
		namespace: namespace,
		clock:     domain.RealClock{},
	}
}

// WithClock sets the clock used for commit timestamps.
func (s *Store) WithClock(clock domain.Clock) *Store {
	s.clock = clock
	return s
}

// refPrefix returns the ref prefix for this namespace.
func (s *Store) refPrefix() string {
	return "refs/" + s.namespace + "/"
}

// boardRef returns the ref name for the board commit.
func (s *Store) boardRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "board")
}

// initializedRef returns the ref name for the initialized marker.
func (s *Store) initializedRef() plumbing.ReferenceName {
	return plumbing.ReferenceName(s.refPrefix() + "initialized")
}

// Load returns the current board.
func (s *Store) Load() (domain.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.loadLocked()
}

// Save replaces the stored board.
func (s *Store) Save(board domain.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initializedLocked() {
		return domain.ErrNotInitialized
	}
	return s.commitLocked(board, "save board")
}

// Update applies fn to the stored board and commits the result.
func (s *Store) Update(fn func(domain.Board) (domain.Board, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.loadLocked()
	if err != nil {
		return err
	}

	next, err := fn(current)
	if errors.Is(err, domain.ErrUnchanged) {
		return nil
	}
	if err != nil {
		return err
	}

	return s.commitLocked(next, "update board")
}

// History returns up to limit board revisions, newest first.
// A non-positive limit returns the whole history.
func (s *Store) History(limit int) ([]domain.BoardRevision, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ref, err := s.repo.Reference(s.boardRef(), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return nil, domain.ErrNotInitialized
		}
		return nil, fmt.Errorf("get board ref: %w", err)
	}

	iter, err := s.repo.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		return nil, fmt.Errorf("walk board history: %w", err)
	}
	defer iter.Close()

	var revisions []domain.BoardRevision
	err = iter.ForEach(func(c *object.Commit) error {
		if limit > 0 && len(revisions) >= limit {
			return errStopIteration
		}
		revisions = append(revisions, domain.BoardRevision{
			Hash:    c.Hash.String(),
			Message: strings.TrimSpace(c.Message),
			Time:    c.Committer.When,
		})
		return nil
	})
	if err != nil && !errors.Is(err, errStopIteration) {
		return nil, err
	}

	return revisions, nil
}

var errStopIteration = errors.New("stop iteration")

// Initialize writes the first board commit with the given columns and the
// initialized marker. An existing store is left untouched.
func (s *Store) Initialize(columns []domain.Column) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initializedLocked() {
		return false, nil
	}

	if err := s.commitLocked(domain.NewBoard(columns), "initialize board"); err != nil {
		return false, err
	}

	hash, err := s.writeBlob([]byte("initialized"))
	if err != nil {
		return false, err
	}
	ref := plumbing.NewHashReference(s.initializedRef(), hash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return false, fmt.Errorf("set initialized ref: %w", err)
	}

	return true, nil
}

// IsInitialized checks if the store has been initialized.
func (s *Store) IsInitialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.initializedLocked()
}

func (s *Store) initializedLocked() bool {
	_, err := s.repo.Reference(s.initializedRef(), true)
	return err == nil
}

// loadLocked reads the board from the head commit (caller must hold lock).
func (s *Store) loadLocked() (domain.Board, error) {
	ref, err := s.repo.Reference(s.boardRef(), true)
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			return domain.Board{}, domain.ErrNotInitialized
		}
		return domain.Board{}, fmt.Errorf("get board ref: %w", err)
	}

	commit, err := s.repo.CommitObject(ref.Hash())
	if err != nil {
		return domain.Board{}, fmt.Errorf("get board commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return domain.Board{}, fmt.Errorf("get board tree: %w", err)
	}

	entry, err := tree.FindEntry(boardFile)
	if err != nil {
		return domain.Board{}, fmt.Errorf("get board file: %w", err)
	}

	content, err := s.readBlob(entry.Hash)
	if err != nil {
		return domain.Board{}, fmt.Errorf("read board file: %w", err)
	}

	var board domain.Board
	if err := yaml.Unmarshal(content, &board); err != nil {
		return domain.Board{}, fmt.Errorf("decode board: %w", err)
	}

	for i := range board.Columns {
		if board.Columns[i].Cards == nil {
			board.Columns[i].Cards = []domain.Card{}
		}
	}

	if err := board.Validate(); err != nil {
		return domain.Board{}, fmt.Errorf("invalid board in %s: %w", s.boardRef(), err)
	}

	return board, nil
}

// commitLocked writes board as a new commit on the board ref (caller must hold lock).
func (s *Store) commitLocked(board domain.Board, message string) error {
	data, err := yaml.Marshal(&board)
	if err != nil {
		return fmt.Errorf("marshal board: %w", err)
	}

	blobHash, err := s.writeBlob(data)
	if err != nil {
		return err
	}

	tree := &object.Tree{Entries: []object.TreeEntry{{
		Name: boardFile,
		Mode: filemode.Regular,
		Hash: blobHash,
	}}}
	treeHash, err := s.storeObject(tree.Encode)
	if err != nil {
		return fmt.Errorf("store tree: %w", err)
	}

	var parents []plumbing.Hash
	if ref, refErr := s.repo.Reference(s.boardRef(), true); refErr == nil {
		parents = append(parents, ref.Hash())
	} else if !errors.Is(refErr, plumbing.ErrReferenceNotFound) {
		return fmt.Errorf("get board ref: %w", refErr)
	}

	sig := object.Signature{Name: "salesdeck", Email: "salesdeck@localhost", When: s.clock.Now()}
	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     treeHash,
		ParentHashes: parents,
	}
	commitHash, err := s.storeObject(commit.Encode)
	if err != nil {
		return fmt.Errorf("store commit: %w", err)
	}

	ref := plumbing.NewHashReference(s.boardRef(), commitHash)
	if err := s.repo.Storer.SetReference(ref); err != nil {
		return fmt.Errorf("set board ref: %w", err)
	}

	return nil
}

// storeObject encodes an object with encode and stores it.
func (s *Store) storeObject(encode func(plumbing.EncodedObject) error) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	if err := encode(obj); err != nil {
		return plumbing.ZeroHash, err
	}
	return s.repo.Storer.SetEncodedObject(obj)
}

// writeBlob writes data to a blob and returns the hash.
func (s *Store) writeBlob(data []byte) (plumbing.Hash, error) {
	obj := s.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("create blob writer: %w", err)
	}

	if _, writeErr := writer.Write(data); writeErr != nil {
		_ = writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("write blob: %w", writeErr)
	}
	_ = writer.Close()

	hash, err := s.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("store blob: %w", err)
	}

	return hash, nil
}

// readBlob reads data from a blob.
func (s *Store) readBlob(hash plumbing.Hash) ([]byte, error) {
	blob, err := s.repo.BlobObject(hash)
	if err != nil {
		return nil, fmt.Errorf("get blob: %w", err)
	}

	reader, err := blob.Reader()
	if err != nil {
		return nil, fmt.Errorf("read blob: %w", err)
	}
	defer func() { _ = reader.Close() }()

	return io.ReadAll(reader)
}

// Ensure Store implements the board ports.
var (
	_ domain.BoardRepository  = (*Store)(nil)
	_ domain.StoreInitializer = (*Store)(nil)
	_ domain.BoardHistory     = (*Store)(nil)
)
