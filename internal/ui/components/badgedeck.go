package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/progression"
	"github.com/abhisek/karmaloop/internal/ui/theme"
)

// BadgeDeck renders badges as a row of small tiles, wrapping to fit width.
func BadgeDeck(badges []progression.BadgeState, width int) string {
	const tileWidth = 16
	perRow := width / (tileWidth + 1)
	if perRow < 1 {
		perRow = 1
	}

	var rows []string
	var row []string
	for _, b := range badges {
		row = append(row, badgeTile(b, tileWidth))
		if len(row) == perRow {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}

func badgeTile(b progression.BadgeState, w int) string {
	c := theme.BadgeColor(b.Style)
	titleStyle := lipgloss.NewStyle().Foreground(c).Bold(b.Unlocked)
	return lipgloss.NewStyle().
		Width(w).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Render(b.Icon + "\n" + titleStyle.Render(b.Title))
}
