package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/tui-2048/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorRed:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:    lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorGray:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBoard:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorText:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	core.ColorTile2:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	core.ColorTile4:     lipgloss.NewStyle().Foreground(lipgloss.Color("223")),
	core.ColorTile8:     lipgloss.NewStyle().Foreground(lipgloss.Color("215")),
	core.ColorTile16:    lipgloss.NewStyle().Foreground(lipgloss.Color("209")),
	core.ColorTile32:    lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	core.ColorTile64:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorTile128:   lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true),
	core.ColorTile256:   lipgloss.NewStyle().Foreground(lipgloss.Color("227")).Bold(true),
	core.ColorTile512:   lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
	core.ColorTile1024:  lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	core.ColorTile2048:  lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
	core.ColorTileSuper: lipgloss.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			// Apply style to the run
			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
