package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/ui/theme"
)

// Meter is a segmented gauge: scan progress and the XP bar.
type Meter struct {
	Label string
	Value int
	Max   int
	Width int

	// Color of the lit segments. Nil uses theme.Primary.
	Color color.Color

	// Readout appends "Value/Max".
	Readout bool
}

// Lit returns how many of n segments are lit. A Max of zero or less
// reads as full.
func (m Meter) Lit(n int) int {
	if m.Max <= 0 || m.Value >= m.Max {
		return n
	}
	if m.Value <= 0 {
		return 0
	}
	return n * m.Value / m.Max
}

func (m Meter) View() string {
	var prefix, suffix string
	if m.Label != "" {
		prefix = theme.Body.Render(m.Label) + "  "
	}
	if m.Readout {
		suffix = theme.Hint.Render(fmt.Sprintf("  %02d/%02d", m.Value, m.Max))
	}

	n := max(m.Width-lipgloss.Width(prefix)-lipgloss.Width(suffix), 4)
	lit := m.Lit(n)

	c := m.Color
	if c == nil {
		c = theme.Primary
	}
	on := lipgloss.NewStyle().Foreground(c).Render(strings.Repeat("▰", lit))
	off := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("▱", n-lit))
	return prefix + on + off + suffix
}
