package components

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/ui/theme"
)

const (
	maxContentWidth = 72
	minContentWidth = 20
)

// ContentWidth is the column width centred screens lay out in, so cards
// stacked on one screen line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, minContentWidth), maxContentWidth)
}

// TerminalFrame draws the double cyan border of the access terminal and
// centres content inside it.
func TerminalFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// NeonCard is a rounded panel cw cells wide outlined in glow.
func NeonCard(content string, cw int, glow color.Color) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(glow).
		Width(cw-2).
		Padding(0, 1).
		Render(content)
}
