package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgBoardLoaded:
		m.board = msg.Board
		m.loaded = true
		m.err = nil
		m.clampCursor()
		return m, nil

	case MsgCardMoved:
		m.board = msg.Board
		m.err = nil
		m.focusCard(msg.Event.CardID)
		if !msg.Event.NoOp {
			m.status = fmt.Sprintf("moved to %s[%d]", msg.Event.DestColumnID, msg.Event.DestIndex)
		}
		return m, nil

	case MsgCardAdded:
		m.status = fmt.Sprintf("added %s", msg.Card.Fields.Name)
		return m, m.loadBoard()

	case MsgError:
		m.err = msg.Err
		m.status = ""
		return m, nil
	}

	return m, nil
}

// handleKeyMsg dispatches a key press according to the current mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeAddCard:
		return m.handleAddCardKey(msg)
	case ModeHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.mode = ModeNormal
		}
		return m, nil
	case ModeNormal:
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.status = ""
		return m, m.loadBoard()
	}

	if !m.loaded || len(m.board.Columns) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Left):
		if m.column > 0 {
			m.column--
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.Right):
		if m.column < len(m.board.Columns)-1 {
			m.column++
			m.clampCursor()
		}

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}

	case key.Matches(msg, m.keys.Down):
		if col := m.focusedColumn(); col != nil && m.row < len(col.Cards)-1 {
			m.row++
		}

	case key.Matches(msg, m.keys.MoveLeft):
		if m.column > 0 && m.SelectedCard() != nil {
			return m, m.moveCard(m.board.Columns[m.column-1].ID, m.row)
		}

	case key.Matches(msg, m.keys.MoveRight):
		if m.column < len(m.board.Columns)-1 && m.SelectedCard() != nil {
			return m, m.moveCard(m.board.Columns[m.column+1].ID, m.row)
		}

	case key.Matches(msg, m.keys.MoveUp):
		if m.row > 0 && m.SelectedCard() != nil {
			return m, m.moveCard(m.focusedColumn().ID, m.row-1)
		}

	case key.Matches(msg, m.keys.MoveDown):
		if col := m.focusedColumn(); col != nil && m.row < len(col.Cards)-1 {
			return m, m.moveCard(col.ID, m.row+1)
		}

	case key.Matches(msg, m.keys.New):
		m.mode = ModeAddCard
		m.nameInput.Reset()
		return m, m.nameInput.Focus()
	}

	return m, nil
}

// handleAddCardKey handles keys while the card name is being typed.
func (m *Model) handleAddCardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.nameInput.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Enter):
		name := strings.TrimSpace(m.nameInput.Value())
		m.mode = ModeNormal
		m.nameInput.Blur()
		return m, m.addCard(name)
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}
