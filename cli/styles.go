package cli

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Styles is the palette used for help and error output.
type Styles struct {
	Title   lipgloss.Style
	Section lipgloss.Style
	Command lipgloss.Style
	Flag    lipgloss.Style
	Muted   lipgloss.Style
	Italic  lipgloss.Style
	Error   lipgloss.Style
}

// NewStyles builds the palette for w. Colour is dropped automatically when
// w is not a terminal.
func NewStyles(w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	return Styles{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("208")),
		Section: r.NewStyle().Italic(true).Foreground(lipgloss.Color("208")),
		Command: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Flag:    r.NewStyle().Foreground(lipgloss.Color("13")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Italic:  r.NewStyle().Italic(true),
		Error:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}
