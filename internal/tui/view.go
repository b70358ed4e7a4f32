package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/salesdeck/salesdeck/internal/domain"
)

// minColumnWidth is the narrowest a column is rendered.
const minColumnWidth = 18

// View renders the board.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("salesdeck"))
	b.WriteString("\n")

	switch {
	case m.mode == ModeHelp:
		b.WriteString(m.help.FullHelpView(m.keys.FullHelp()))
	case !m.loaded && m.err == nil:
		b.WriteString("Loading board...")
	case len(m.board.Columns) > 0:
		b.WriteString(m.viewBoard())
	}

	b.WriteString("\n")
	b.WriteString(m.viewFooter())

	return m.styles.App.Render(b.String())
}

// columnWidth returns the inner width of each column for the current terminal size.
func (m *Model) columnWidth() int {
	n := len(m.board.Columns)
	if n == 0 || m.width == 0 {
		return minColumnWidth
	}
	// Two for the app padding on each side, four for each column's border and padding.
	w := (m.width-4)/n - 4
	if w < minColumnWidth {
		return minColumnWidth
	}
	return w
}

// viewBoard renders the columns side by side.
func (m *Model) viewBoard() string {
	width := m.columnWidth()
	cols := make([]string, len(m.board.Columns))
	for i, col := range m.board.Columns {
		cols[i] = m.viewColumn(col, i == m.column, width)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

// viewColumn renders a single column with its cards.
func (m *Model) viewColumn(col domain.Column, focused bool, width int) string {
	var lines []string

	title := truncate.StringWithTail(col.Title, uint(width-4), "…")
	lines = append(lines, m.styles.ColumnTitle.Render(title)+" "+m.styles.ColumnCount.Render(fmt.Sprintf("(%d)", len(col.Cards))))
	lines = append(lines, "")

	if len(col.Cards) == 0 {
		lines = append(lines, m.styles.Empty.Render("no cards"))
	}
	for i, card := range col.Cards {
		selected := focused && i == m.row
		lines = append(lines, m.viewCard(card, selected, width)...)
	}

	style := m.styles.Column
	if focused {
		style = m.styles.ColumnFocused
	}
	return style.Width(width).Render(strings.Join(lines, "\n"))
}

// viewCard renders the lines of a card.
func (m *Model) viewCard(card domain.Card, selected bool, width int) []string {
	nameStyle, metaStyle, cursor := m.styles.CardName, m.styles.CardMeta, "  "
	if selected {
		nameStyle, metaStyle, cursor = m.styles.CardNameSelected, m.styles.CardMetaSelected, "> "
	}

	name := card.Fields.Name
	if name == "" {
		name = card.ID
	}
	lines := []string{cursor + nameStyle.Render(truncate.StringWithTail(name, uint(width-2), "…"))}
	if card.Fields.NextAction != "" {
		lines = append(lines, "  "+metaStyle.Render(truncate.StringWithTail(card.Fields.NextAction, uint(width-2), "…")))
	}
	return lines
}

// viewFooter renders the input line, status or error and the short help.
func (m *Model) viewFooter() string {
	var parts []string

	if m.mode == ModeAddCard {
		target := ""
		if col := m.focusedColumn(); col != nil {
			target = col.Title
		}
		parts = append(parts, m.styles.InputPrompt.Render("New card in "+target+": ")+m.nameInput.View())
	}

	switch {
	case m.err != nil:
		parts = append(parts, m.styles.ErrorMsg.Render("Error: "+m.err.Error()))
	case m.status != "":
		parts = append(parts, m.styles.StatusMsg.Render(m.status))
	}

	if m.mode != ModeHelp {
		parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))
	}

	return m.styles.Footer.Render(strings.Join(parts, "\n"))
}
