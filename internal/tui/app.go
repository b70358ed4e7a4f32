package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/salesdeck/salesdeck/internal/app"
	"github.com/salesdeck/salesdeck/internal/domain"
	"github.com/salesdeck/salesdeck/internal/usecase"
)

// Model is the main bubbletea model for the board.
type Model struct {
	// Dependencies
	container *app.Container
	err       error

	// State
	board  domain.Board
	status string

	// Components
	keys      KeyMap
	styles    Styles
	help      help.Model
	nameInput textinput.Model

	// Numeric state
	mode   Mode
	column int // Focused column
	row    int // Selected card in the focused column
	width  int
	height int
	loaded bool
}

// New creates a new board Model with the given container.
func New(c *app.Container) *Model {
	ni := textinput.New()
	ni.Placeholder = "Lead name"
	ni.CharLimit = 200

	return &Model{
		container: c,
		mode:      ModeNormal,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		nameInput: ni,
	}
}

// Init loads the board.
func (m *Model) Init() tea.Cmd {
	return m.loadBoard()
}

// loadBoard returns a command that loads the board from the store.
func (m *Model) loadBoard() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ShowBoardUseCase().Execute(context.Background(), usecase.ShowBoardInput{})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgBoardLoaded{Board: out.Board}
	}
}

// moveCard returns a command that moves the selected card to dstColumn at dstIndex.
func (m *Model) moveCard(dstColumn string, dstIndex int) tea.Cmd {
	col := m.focusedColumn()
	if col == nil || m.row >= len(col.Cards) {
		return nil
	}
	in := usecase.MoveCardInput{
		CardID:       col.Cards[m.row].ID,
		DestColumnID: dstColumn,
		DestIndex:    dstIndex,
	}
	return func() tea.Msg {
		out, err := m.container.MoveCardUseCase().Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgCardMoved{Board: out.Board, Event: out.Event}
	}
}

// addCard returns a command that adds a card named name to the focused column.
func (m *Model) addCard(name string) tea.Cmd {
	col := m.focusedColumn()
	if col == nil {
		return nil
	}
	in := usecase.AddCardInput{ColumnID: col.ID, Name: name}
	return func() tea.Msg {
		out, err := m.container.AddCardUseCase().Execute(context.Background(), in)
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgCardAdded{Card: out.Card}
	}
}

// focusedColumn returns the focused column, or nil for an empty board.
func (m *Model) focusedColumn() *domain.Column {
	if m.column < 0 || m.column >= len(m.board.Columns) {
		return nil
	}
	return &m.board.Columns[m.column]
}

// SelectedCard returns the selected card, or nil if none.
func (m *Model) SelectedCard() *domain.Card {
	col := m.focusedColumn()
	if col == nil || m.row < 0 || m.row >= len(col.Cards) {
		return nil
	}
	return &col.Cards[m.row]
}

// clampCursor keeps the cursor inside the board.
func (m *Model) clampCursor() {
	if n := len(m.board.Columns); m.column >= n {
		m.column = n - 1
	}
	if m.column < 0 {
		m.column = 0
	}
	col := m.focusedColumn()
	if col == nil || len(col.Cards) == 0 {
		m.row = 0
		return
	}
	if m.row >= len(col.Cards) {
		m.row = len(col.Cards) - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

// focusCard moves the cursor onto the card with id.
func (m *Model) focusCard(id string) {
	colID, idx, ok := m.board.FindCard(id)
	if !ok {
		return
	}
	_, m.column = m.board.Column(colID)
	m.row = idx
}
