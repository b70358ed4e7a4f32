package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// AddCardInput contains the parameters for adding a card.
// Empty Name and NextAction fall back to the new-lead defaults.
type AddCardInput struct {
	ColumnID   string // Destination column (required)
	Name       string
	Contact    string
	Email      string
	Phone      string
	NextAction string
	Notes      string
}

// AddCardOutput contains the result of adding a card.
type AddCardOutput struct {
	Card domain.Card
}

// AddCard appends a new card to the end of a column.
type AddCard struct {
	boards domain.BoardRepository
	clock  domain.Clock
	logger domain.Logger
	newID  func() string
}

// NewAddCard creates a new AddCard use case. Card IDs are random UUIDs.
func NewAddCard(boards domain.BoardRepository, clock domain.Clock, logger domain.Logger) *AddCard {
	return &AddCard{
		boards: boards,
		clock:  clock,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Execute creates the card and stores it.
func (uc *AddCard) Execute(_ context.Context, in AddCardInput) (*AddCardOutput, error) {
	if in.ColumnID == "" {
		return nil, domain.ErrEmptyColumnID
	}

	fields := domain.DefaultCardFields(uc.clock.Now())
	if in.Name != "" {
		fields.Name = in.Name
	}
	if in.NextAction != "" {
		fields.NextAction = in.NextAction
	}
	fields.Contact = in.Contact
	fields.Email = in.Email
	fields.Phone = in.Phone
	fields.Notes = in.Notes

	card := domain.Card{ID: uc.newID(), Status: in.ColumnID, Fields: fields}

	err := uc.boards.Update(func(b domain.Board) (domain.Board, error) {
		return b.AddCard(in.ColumnID, card)
	})
	if err != nil {
		return nil, fmt.Errorf("add card: %w", err)
	}

	if uc.logger != nil {
		uc.logger.Info("card", fmt.Sprintf("added card %s (%s) to %s", card.ID, fields.Name, in.ColumnID))
	}

	return &AddCardOutput{Card: card}, nil
}
