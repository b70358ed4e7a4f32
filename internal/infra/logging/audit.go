package logging

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// Ensure MoveAudit implements domain.MoveObserver.
var _ domain.MoveObserver = (*MoveAudit)(nil)

// MoveAudit appends every committed card move to a JSON-lines file
// (.salesdeck/logs/moves.log). The readable summary in salesdeck.log is written
// by the MoveCard use case.
type MoveAudit struct {
	path string
	mu   sync.Mutex
}

// NewMoveAudit creates a MoveAudit for the data directory.
func NewMoveAudit(dataDir string) *MoveAudit {
	return &MoveAudit{path: domain.MovesLogPath(dataDir)}
}

// CardMoved records the event.
func (a *MoveAudit) CardMoved(_ context.Context, event domain.MoveEvent) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal move event: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(a.path), 0o750); err != nil {
		return fmt.Errorf("create logs directory: %w", err)
	}
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o640) //nolint:gosec // Log file readable by owner and group
	if err != nil {
		return fmt.Errorf("open moves log: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write moves log: %w", err)
	}
	return nil
}

// Recent returns up to limit of the most recent move events, oldest first.
// A non-positive limit returns every recorded event. Unparseable lines are skipped.
func (a *MoveAudit) Recent(limit int) ([]domain.MoveEvent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	f, err := os.Open(a.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.MoveEvent{}, nil
		}
		return nil, fmt.Errorf("open moves log: %w", err)
	}
	defer func() { _ = f.Close() }()

	events := []domain.MoveEvent{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var event domain.MoveEvent
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			continue
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read moves log: %w", err)
	}

	if limit > 0 && len(events) > limit {
		events = events[len(events)-limit:]
	}
	return events, nil
}
