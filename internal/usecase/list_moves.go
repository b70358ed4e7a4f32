package usecase

import (
	"context"
	"fmt"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// ListMovesInput contains the input for the ListMoves use case.
type ListMovesInput struct {
	CardID string // Only moves of this card (optional)
	Limit  int    // Most recent N moves (0 = all)
}

// ListMovesOutput contains the output of the ListMoves use case.
type ListMovesOutput struct {
	Moves []domain.MoveEvent // Oldest first
}

// ListMoves returns recorded card moves.
type ListMoves struct {
	moves domain.MoveLog
}

// NewListMoves creates a new ListMoves use case.
func NewListMoves(moves domain.MoveLog) *ListMoves {
	return &ListMoves{moves: moves}
}

// Execute reads the move log.
func (uc *ListMoves) Execute(_ context.Context, in ListMovesInput) (*ListMovesOutput, error) {
	limit := in.Limit
	if in.CardID != "" {
		limit = 0 // Filter first, then cut
	}

	events, err := uc.moves.Recent(limit)
	if err != nil {
		return nil, fmt.Errorf("read moves: %w", err)
	}

	if in.CardID != "" {
		filtered := make([]domain.MoveEvent, 0, len(events))
		for _, e := range events {
			if e.CardID == in.CardID {
				filtered = append(filtered, e)
			}
		}
		events = filtered
		if in.Limit > 0 && len(events) > in.Limit {
			events = events[len(events)-in.Limit:]
		}
	}

	return &ListMovesOutput{Moves: events}, nil
}
