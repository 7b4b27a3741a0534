package app

import (
	"io"

	"framemap/internal/render"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ThemeFor picks the render theme for a color mode and output writer. In
// auto mode colors are used only when out is a terminal.
func ThemeFor(mode string, out io.Writer) render.Theme {
	switch mode {
	case ColorNever:
		return render.PlainTheme()
	case ColorAlways:
		r := lipgloss.NewRenderer(out)
		r.SetColorProfile(termenv.ANSI256)
		return render.RendererTheme(r)
	default:
		r := lipgloss.NewRenderer(out)
		if r.ColorProfile() == termenv.Ascii {
			return render.PlainTheme()
		}
		return render.RendererTheme(r)
	}
}
