package domain

import (
	"fmt"
	"slices"
	"time"
)

// Board is an ordered collection of columns.
// Board values are treated as immutable: every operation returns a new Board
// and leaves the receiver untouched, so callers swap their reference.
type Board struct {
	Columns []Column `json:"columns" yaml:"columns"`
}

// NewBoard creates a board with the given columns and no cards.
func NewBoard(columns []Column) Board {
	cols := make([]Column, len(columns))
	for i, c := range columns {
		cols[i] = Column{ID: c.ID, Title: c.Title, Cards: []Card{}}
	}
	return Board{Columns: cols}
}

// MoveEvent describes a committed card move.
// Fields are ordered to minimize memory padding.
type MoveEvent struct {
	Time           time.Time `json:"time"`
	CardID         string    `json:"cardId"`
	SourceColumnID string    `json:"sourceColumnId"`
	DestColumnID   string    `json:"destColumnId"`
	SourceIndex    int       `json:"sourceIndex"`
	DestIndex      int       `json:"destIndex"` // Effective index after clamping
	NoOp           bool      `json:"noOp,omitempty"`
}

// CrossColumn returns true if the card changed columns.
func (e MoveEvent) CrossColumn() bool {
	return e.SourceColumnID != e.DestColumnID
}

// Column returns the column with the given ID and its position, or nil and -1.
func (b Board) Column(id string) (*Column, int) {
	for i := range b.Columns {
		if b.Columns[i].ID == id {
			return &b.Columns[i], i
		}
	}
	return nil, -1
}

// FindCard returns the column ID and index of the card with the given ID.
func (b Board) FindCard(cardID string) (columnID string, index int, ok bool) {
	for _, col := range b.Columns {
		for i, card := range col.Cards {
			if card.ID == cardID {
				return col.ID, i, true
			}
		}
	}
	return "", -1, false
}

// CardCount returns the total number of cards on the board.
func (b Board) CardCount() int {
	n := 0
	for _, col := range b.Columns {
		n += len(col.Cards)
	}
	return n
}

// MoveCard moves the card at srcIndex of column srcColumnID to dstIndex of
// column dstColumnID.
//
// dstIndex is interpreted against the destination sequence after the card has
// been removed; indexes past the end append, negative indexes insert first.
// Moving a card to its own position is an explicit no-op that returns the
// receiver unchanged. A cross-column move rewrites the card's status to the
// destination column ID.
func (b Board) MoveCard(srcColumnID string, srcIndex int, dstColumnID string, dstIndex int) (Board, MoveEvent, error) {
	_, si := b.Column(srcColumnID)
	if si < 0 {
		return b, MoveEvent{}, fmt.Errorf("%w: %s", ErrColumnNotFound, srcColumnID)
	}
	_, di := b.Column(dstColumnID)
	if di < 0 {
		return b, MoveEvent{}, fmt.Errorf("%w: %s", ErrColumnNotFound, dstColumnID)
	}

	src := b.Columns[si]
	if srcIndex < 0 || srcIndex >= len(src.Cards) {
		return b, MoveEvent{}, fmt.Errorf("%w: %d in column %s (%d cards)", ErrIndexOutOfRange, srcIndex, srcColumnID, len(src.Cards))
	}

	event := MoveEvent{
		CardID:         src.Cards[srcIndex].ID,
		SourceColumnID: srcColumnID,
		DestColumnID:   dstColumnID,
		SourceIndex:    srcIndex,
		DestIndex:      dstIndex,
	}

	if si == di {
		// Indices are positions after the card is taken out.
		at := clampIndex(dstIndex, len(src.Cards)-1)
		event.DestIndex = at
		if at == srcIndex {
			event.NoOp = true
			return b, event, nil
		}
	}

	columns := slices.Clone(b.Columns)
	from := src.clone()
	card := from.Cards[srcIndex]
	from.Cards = slices.Delete(from.Cards, srcIndex, srcIndex+1)

	if si == di {
		from.Cards = slices.Insert(from.Cards, event.DestIndex, card)
		columns[si] = from
		return Board{Columns: columns}, event, nil
	}

	to := b.Columns[di].clone()
	card.Status = to.ID
	at := clampIndex(dstIndex, len(to.Cards))
	to.Cards = slices.Insert(to.Cards, at, card)
	columns[si] = from
	columns[di] = to
	event.DestIndex = at
	return Board{Columns: columns}, event, nil
}

// AddCard appends card to the end of the column. The card's status is set to
// columnID regardless of its incoming value.
func (b Board) AddCard(columnID string, card Card) (Board, error) {
	_, ci := b.Column(columnID)
	if ci < 0 {
		return b, fmt.Errorf("%w: %s", ErrColumnNotFound, columnID)
	}
	columns := slices.Clone(b.Columns)
	col := b.Columns[ci].clone()
	card.Status = col.ID
	col.Cards = append(col.Cards, card)
	columns[ci] = col
	return Board{Columns: columns}, nil
}

// AddColumn appends an empty column to the board.
func (b Board) AddColumn(column Column) (Board, error) {
	if column.ID == "" {
		return b, ErrEmptyColumnID
	}
	if c, _ := b.Column(column.ID); c != nil {
		return b, fmt.Errorf("%w: %s", ErrColumnExists, column.ID)
	}
	if column.Title == "" {
		column.Title = column.ID
	}
	column.Cards = []Card{}
	columns := slices.Clone(b.Columns)
	columns = append(columns, column)
	return Board{Columns: columns}, nil
}

// RemoveColumn removes an empty column from the board.
func (b Board) RemoveColumn(id string) (Board, error) {
	c, ci := b.Column(id)
	if ci < 0 {
		return b, fmt.Errorf("%w: %s", ErrColumnNotFound, id)
	}
	if len(c.Cards) > 0 {
		return b, fmt.Errorf("%w: %s has %d cards", ErrColumnNotEmpty, id, len(c.Cards))
	}
	columns := slices.Clone(b.Columns)
	columns = slices.Delete(columns, ci, ci+1)
	return Board{Columns: columns}, nil
}

// Validate checks that every card's status equals the ID of the column that
// contains it and that card and column IDs are unique.
func (b Board) Validate() error {
	columnIDs := make(map[string]struct{}, len(b.Columns))
	cardIDs := make(map[string]string)
	for _, col := range b.Columns {
		if _, dup := columnIDs[col.ID]; dup {
			return fmt.Errorf("%w: %s", ErrColumnExists, col.ID)
		}
		columnIDs[col.ID] = struct{}{}
		for _, card := range col.Cards {
			if card.Status != col.ID {
				return fmt.Errorf("%w: card %s has status %q in column %q", ErrStatusMismatch, card.ID, card.Status, col.ID)
			}
			if other, dup := cardIDs[card.ID]; dup {
				return fmt.Errorf("%w: %s (columns %s and %s)", ErrDuplicateCard, card.ID, other, col.ID)
			}
			cardIDs[card.ID] = col.ID
		}
	}
	return nil
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}
