package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-crusher/internal/core"
)

// Styles maps core.Color to lipgloss styles for one renderer. SSH sessions
// get their own renderer so color profiles follow the client terminal.
type Styles map[core.Color]lipgloss.Style

// NewStyles builds the palette for r. A nil renderer uses the default one.
func NewStyles(r *lipgloss.Renderer) Styles {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	fg := func(c string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(c))
	}
	return Styles{
		core.ColorDefault:      r.NewStyle(),
		core.ColorRed:          fg("1"),
		core.ColorGreen:        fg("2"),
		core.ColorYellow:       fg("3"),
		core.ColorBlue:         fg("4"),
		core.ColorMagenta:      fg("5"),
		core.ColorCyan:         fg("6"),
		core.ColorWhite:        fg("7"),
		core.ColorBrightRed:    fg("9").Bold(true),
		core.ColorBrightGreen:  fg("10"),
		core.ColorBrightYellow: fg("11").Bold(true),
		core.ColorBrightCyan:   fg("14").Bold(true),
		core.ColorOrange:       fg("208"),
		core.ColorGray:         fg("245"),
		core.ColorDarkGray:     fg("238"),
	}
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func (st Styles) RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := st[startColor]
			if !ok {
				style = st[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
