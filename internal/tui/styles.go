package tui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color

	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
	DescNormal    lipgloss.Color
	DescSelected  lipgloss.Color

	BorderNormal  lipgloss.Color
	BorderFocused lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"), // Purple
	Secondary: lipgloss.Color("#A29BFE"), // Lavender
	Muted:     lipgloss.Color("#636E72"), // Gray
	Error:     lipgloss.Color("#D63031"), // Red
	Success:   lipgloss.Color("#00B894"), // Green
	Warning:   lipgloss.Color("#FDCB6E"), // Yellow

	TitleNormal:   lipgloss.Color("#DFE6E9"), // Light gray
	TitleSelected: lipgloss.Color("#FFEAA7"), // Yellow (selected)
	DescNormal:    lipgloss.Color("#636E72"), // Gray
	DescSelected:  lipgloss.Color("#B2BEC3"), // Light gray

	BorderNormal:  lipgloss.Color("#2D3436"),
	BorderFocused: lipgloss.Color("#6C5CE7"),
}

// Styles contains all the lipgloss styles for the TUI.
type Styles struct {
	App    lipgloss.Style
	Header lipgloss.Style

	// Columns
	Column        lipgloss.Style
	ColumnFocused lipgloss.Style
	ColumnTitle   lipgloss.Style
	ColumnCount   lipgloss.Style

	// Cards
	CardName         lipgloss.Style
	CardNameSelected lipgloss.Style
	CardMeta         lipgloss.Style
	CardMetaSelected lipgloss.Style
	Empty            lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	StatusMsg lipgloss.Style
	ErrorMsg  lipgloss.Style

	// Input
	InputPrompt lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Colors.BorderNormal).
		Padding(0, 1)

	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		Column:        column,
		ColumnFocused: column.BorderForeground(Colors.BorderFocused),

		ColumnTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Secondary),

		ColumnCount: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		CardName: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		CardNameSelected: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.TitleSelected),

		CardMeta: lipgloss.NewStyle().
			Foreground(Colors.DescNormal),

		CardMetaSelected: lipgloss.NewStyle().
			Foreground(Colors.DescSelected),

		Empty: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			MarginTop(1),

		StatusMsg: lipgloss.NewStyle().
			Foreground(Colors.Success),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error),

		InputPrompt: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),
	}
}
