// Package render turns frames and placement options into terminal text.
package render

import (
	"framemap/internal/core"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles used for each cell state. A plain theme renders
// without escape sequences.
type Theme struct {
	Plain   bool
	Title   lipgloss.Style
	Empty   lipgloss.Style
	Linked  lipgloss.Style
	Blocked lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
}

// PlainTheme returns a theme that emits unstyled text.
func PlainTheme() Theme {
	return Theme{Plain: true}
}

// RendererTheme returns the colored theme bound to r, whose color profile
// decides which escape sequences are emitted.
func RendererTheme(r *lipgloss.Renderer) Theme {
	return Theme{
		Title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A")),
		Empty:   r.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Linked:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("#2196F3")),
		Blocked: r.NewStyle().Foreground(lipgloss.Color("#e53935")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#e53935")),
	}
}

func (t Theme) paint(s lipgloss.Style, text string) string {
	if t.Plain {
		return text
	}
	return s.Render(text)
}

func (t Theme) cell(c core.Cell, text string) string {
	switch c.Kind {
	case core.CellLinked:
		return t.paint(t.Linked, text)
	case core.CellBlocked:
		return t.paint(t.Blocked, text)
	default:
		return t.paint(t.Empty, text)
	}
}

func (t Theme) option(used bool, candidates int, text string) string {
	switch {
	case used:
		return t.paint(t.Muted, text)
	case candidates == 0:
		return t.paint(t.Empty, text)
	default:
		return t.paint(t.Linked, text)
	}
}

// Heading styles a section title.
func (t Theme) Heading(text string) string { return t.paint(t.Title, text) }

// Failure styles an error line.
func (t Theme) Failure(text string) string { return t.paint(t.Error, text) }
