package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles - look of the console output.
type Styles struct {
	Header   lipgloss.Style
	Pile     lipgloss.Style
	Opponent lipgloss.Style
	Winner   lipgloss.Style
	Error    lipgloss.Style
	Hint     lipgloss.Style
}

// NewStyles - styles bound to out; plain text when out is not a terminal.
func NewStyles(out io.Writer) *Styles {
	renderer := lipgloss.NewRenderer(out)

	return &Styles{
		Header: renderer.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Pile: renderer.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true),
		Opponent: renderer.NewStyle().
			Foreground(lipgloss.Color("#74B9FF")),
		Winner: renderer.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Error: renderer.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Hint: renderer.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
