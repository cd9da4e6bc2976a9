package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tank-rampage/internal/core"
)

// RenderScreen converts a Screen buffer to a styled string using the
// default renderer.
func RenderScreen(s *core.Screen) string {
	return renderScreen(lipgloss.DefaultRenderer(), s)
}

// renderScreen styles s with r. Cell colors are hex strings and go straight
// to lipgloss, which downsamples them to the terminal's profile.
// Adjacent cells with the same color share one escape sequence.
func renderScreen(r *lipgloss.Renderer, s *core.Screen) string {
	styles := make(map[core.Color]lipgloss.Style)
	styleFor := func(c core.Color) lipgloss.Style {
		if st, ok := styles[c]; ok {
			return st
		}
		st := r.NewStyle()
		if c != core.ColorDefault {
			st = st.Foreground(lipgloss.Color(string(c)))
		}
		styles[c] = st
		return st
	}

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
