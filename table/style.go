package table

import "github.com/charmbracelet/lipgloss"

// Style controls the table's rendering.
type Style struct {
	Header       lipgloss.Style
	HeaderSorted lipgloss.Style

	Gutter       lipgloss.Style
	GutterActive lipgloss.Style

	Cell        lipgloss.Style
	Selected    lipgloss.Style
	Interactive lipgloss.Style
	Editing     lipgloss.Style

	// Separator is drawn between columns. It must be one cell wide.
	Separator string
}

func DefaultStyle() Style {
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	return Style{
		Header:       lipgloss.NewStyle().Bold(true),
		HeaderSorted: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111")),
		Gutter:       gutter,
		GutterActive: lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Bold(true),
		Cell:         lipgloss.NewStyle(),
		Selected:     lipgloss.NewStyle().Background(lipgloss.Color("237")),
		Interactive:  lipgloss.NewStyle().Reverse(true),
		Editing:      lipgloss.NewStyle().Underline(true),
		Separator:    "│",
	}
}
