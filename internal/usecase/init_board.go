// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// InitBoardInput contains the input parameters for InitBoard.
type InitBoardInput struct {
	DataDir string          // Path to .salesdeck directory
	Columns []domain.Column // Initial columns (empty = default pipeline)
}

// InitBoardOutput contains the output from InitBoard.
type InitBoardOutput struct {
	DataDir            string // Path to the data directory
	AlreadyInitialized bool   // True if a board already existed (left untouched)
}

// InitBoard creates the data directory and an empty board.
type InitBoard struct {
	storeInit domain.StoreInitializer
	logger    domain.Logger
}

// NewInitBoard creates a new InitBoard use case.
func NewInitBoard(storeInit domain.StoreInitializer, logger domain.Logger) *InitBoard {
	return &InitBoard{storeInit: storeInit, logger: logger}
}

// Execute initializes the board store. Running it again is harmless.
func (uc *InitBoard) Execute(_ context.Context, in InitBoardInput) (*InitBoardOutput, error) {
	if in.DataDir != "" {
		if err := os.MkdirAll(filepath.Join(in.DataDir, "logs"), 0o750); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	columns := in.Columns
	if len(columns) == 0 {
		columns = domain.DefaultColumns()
	}

	created, err := uc.storeInit.Initialize(columns)
	if err != nil {
		return nil, fmt.Errorf("initialize board store: %w", err)
	}

	if created && uc.logger != nil {
		uc.logger.Info("board", fmt.Sprintf("initialized board with %d columns", len(columns)))
	}

	return &InitBoardOutput{
		DataDir:            in.DataDir,
		AlreadyInitialized: !created,
	}, nil
}
