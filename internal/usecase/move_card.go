package usecase

import (
	"context"
	"fmt"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// MoveCardInput contains the parameters for moving a card.
// When CardID is set the source position is looked up on the current board
// and SourceColumnID/SourceIndex are ignored.
type MoveCardInput struct {
	CardID         string
	SourceColumnID string
	DestColumnID   string
	SourceIndex    int
	DestIndex      int // Clamped to the destination column
}

// MoveCardOutput contains the result of moving a card.
type MoveCardOutput struct {
	Board domain.Board     // Board after the move
	Event domain.MoveEvent // What happened, with the effective destination index
}

// MoveCard relocates a card and notifies observers once the move is stored.
type MoveCard struct {
	boards    domain.BoardRepository
	clock     domain.Clock
	logger    domain.Logger
	observers []domain.MoveObserver
}

// NewMoveCard creates a new MoveCard use case.
func NewMoveCard(boards domain.BoardRepository, clock domain.Clock, logger domain.Logger, observers ...domain.MoveObserver) *MoveCard {
	return &MoveCard{
		boards:    boards,
		clock:     clock,
		logger:    logger,
		observers: observers,
	}
}

// Execute performs the move.
// Observers run after the board has been saved, in registration order.
// Their errors are logged and do not fail the move. No-op moves are not
// reported to observers.
func (uc *MoveCard) Execute(ctx context.Context, in MoveCardInput) (*MoveCardOutput, error) {
	var (
		result domain.Board
		event  domain.MoveEvent
	)

	err := uc.boards.Update(func(b domain.Board) (domain.Board, error) {
		srcColumnID, srcIndex := in.SourceColumnID, in.SourceIndex
		if in.CardID != "" {
			colID, idx, ok := b.FindCard(in.CardID)
			if !ok {
				return b, fmt.Errorf("%w: %s", domain.ErrCardNotFound, in.CardID)
			}
			srcColumnID, srcIndex = colID, idx
		}

		next, ev, err := b.MoveCard(srcColumnID, srcIndex, in.DestColumnID, in.DestIndex)
		if err != nil {
			return b, err
		}
		result, event = next, ev
		if ev.NoOp {
			return b, domain.ErrUnchanged
		}
		return next, nil
	})
	if err != nil {
		return nil, fmt.Errorf("move card: %w", err)
	}

	event.Time = uc.clock.Now()

	if event.NoOp {
		if uc.logger != nil {
			uc.logger.Debug("card", fmt.Sprintf("card %s already at %s[%d]", event.CardID, event.DestColumnID, event.DestIndex))
		}
		return &MoveCardOutput{Board: result, Event: event}, nil
	}

	if uc.logger != nil {
		uc.logger.Info("card", fmt.Sprintf("moved card %s from %s[%d] to %s[%d]",
			event.CardID, event.SourceColumnID, event.SourceIndex, event.DestColumnID, event.DestIndex))
	}

	for _, obs := range uc.observers {
		if obsErr := obs.CardMoved(ctx, event); obsErr != nil && uc.logger != nil {
			uc.logger.Warn("card", fmt.Sprintf("move observer failed for card %s: %v", event.CardID, obsErr))
		}
	}

	return &MoveCardOutput{Board: result, Event: event}, nil
}
