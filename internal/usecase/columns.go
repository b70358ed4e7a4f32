package usecase

import (
	"context"
	"fmt"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// AddColumnInput contains the parameters for adding a column.
type AddColumnInput struct {
	ID    string
	Title string // Defaults to ID
}

// AddColumnOutput contains the result of adding a column.
type AddColumnOutput struct {
	Board domain.Board
}

// AddColumn appends an empty column to the board.
type AddColumn struct {
	boards domain.BoardRepository
	logger domain.Logger
}

// NewAddColumn creates a new AddColumn use case.
func NewAddColumn(boards domain.BoardRepository, logger domain.Logger) *AddColumn {
	return &AddColumn{boards: boards, logger: logger}
}

// Execute adds the column.
func (uc *AddColumn) Execute(_ context.Context, in AddColumnInput) (*AddColumnOutput, error) {
	var result domain.Board
	err := uc.boards.Update(func(b domain.Board) (domain.Board, error) {
		next, err := b.AddColumn(domain.Column{ID: in.ID, Title: in.Title})
		result = next
		return next, err
	})
	if err != nil {
		return nil, fmt.Errorf("add column: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("board", fmt.Sprintf("added column %s", in.ID))
	}
	return &AddColumnOutput{Board: result}, nil
}

// RemoveColumnInput contains the parameters for removing a column.
type RemoveColumnInput struct {
	ID string
}

// RemoveColumnOutput contains the result of removing a column.
type RemoveColumnOutput struct {
	Board domain.Board
}

// RemoveColumn deletes an empty column.
type RemoveColumn struct {
	boards domain.BoardRepository
	logger domain.Logger
}

// NewRemoveColumn creates a new RemoveColumn use case.
func NewRemoveColumn(boards domain.BoardRepository, logger domain.Logger) *RemoveColumn {
	return &RemoveColumn{boards: boards, logger: logger}
}

// Execute removes the column. Columns that still hold cards are refused.
func (uc *RemoveColumn) Execute(_ context.Context, in RemoveColumnInput) (*RemoveColumnOutput, error) {
	var result domain.Board
	err := uc.boards.Update(func(b domain.Board) (domain.Board, error) {
		next, err := b.RemoveColumn(in.ID)
		result = next
		return next, err
	})
	if err != nil {
		return nil, fmt.Errorf("remove column: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("board", fmt.Sprintf("removed column %s", in.ID))
	}
	return &RemoveColumnOutput{Board: result}, nil
}
