package usecase

import (
	"context"
	"fmt"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// BoardHistoryInput contains the input for the BoardHistory use case.
type BoardHistoryInput struct {
	Limit int // Most recent N revisions (0 = all)
}

// BoardHistoryOutput contains the output of the BoardHistory use case.
type BoardHistoryOutput struct {
	Revisions []domain.BoardRevision // Newest first
}

// BoardHistory lists stored revisions of the board.
type BoardHistory struct {
	history domain.BoardHistory
}

// NewBoardHistory creates a new BoardHistory use case.
// history is nil when the configured store does not keep revisions.
func NewBoardHistory(history domain.BoardHistory) *BoardHistory {
	return &BoardHistory{history: history}
}

// Execute returns the revisions.
func (uc *BoardHistory) Execute(_ context.Context, in BoardHistoryInput) (*BoardHistoryOutput, error) {
	if uc.history == nil {
		return nil, domain.ErrNoHistory
	}
	revisions, err := uc.history.History(in.Limit)
	if err != nil {
		return nil, fmt.Errorf("read board history: %w", err)
	}
	return &BoardHistoryOutput{Revisions: revisions}, nil
}
