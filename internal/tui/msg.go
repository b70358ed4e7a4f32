package tui

import "github.com/salesdeck/salesdeck/internal/domain"

// Msg is the sealed interface for all TUI messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgBoardLoaded is sent when the board is loaded from the store.
type MsgBoardLoaded struct {
	Board domain.Board
}

func (MsgBoardLoaded) sealed() {}

// MsgCardMoved is sent after a move has been stored.
type MsgCardMoved struct {
	Board domain.Board
	Event domain.MoveEvent
}

func (MsgCardMoved) sealed() {}

// MsgCardAdded is sent after a card has been added.
type MsgCardAdded struct {
	Card domain.Card
}

func (MsgCardAdded) sealed() {}

// MsgError is sent when an operation fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
