package usecase

import (
	"context"
	"fmt"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// ShowBoardInput contains the input for the ShowBoard use case.
type ShowBoardInput struct{}

// ShowBoardOutput contains the output of the ShowBoard use case.
type ShowBoardOutput struct {
	Board domain.Board
}

// ShowBoard loads the current board.
type ShowBoard struct {
	boards domain.BoardRepository
}

// NewShowBoard creates a new ShowBoard use case.
func NewShowBoard(boards domain.BoardRepository) *ShowBoard {
	return &ShowBoard{boards: boards}
}

// Execute returns the current board.
func (uc *ShowBoard) Execute(_ context.Context, _ ShowBoardInput) (*ShowBoardOutput, error) {
	board, err := uc.boards.Load()
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	return &ShowBoardOutput{Board: board}, nil
}
