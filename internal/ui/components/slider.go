package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/ui/theme"
)

// Slider picks an integer in [Min, Max] with the arrow keys.
type Slider struct {
	Min, Max int
	Value    int
	Chosen   bool
}

// NewSlider creates a slider starting at value, clamped to the bounds.
func NewSlider(lo, hi, value int) Slider {
	s := Slider{Min: lo, Max: hi, Value: value}
	s.clamp()
	return s
}

func (s *Slider) clamp() {
	if s.Value < s.Min {
		s.Value = s.Min
	}
	if s.Value > s.Max {
		s.Value = s.Max
	}
}

// Update handles left/right adjustment, direct digits and confirmation.
func (s Slider) Update(msg tea.Msg) Slider {
	if s.Chosen {
		return s
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s
	}

	switch key := kmsg.String(); key {
	case "left", "h":
		s.Value--
	case "right", "l":
		s.Value++
	case "enter", "space":
		s.Chosen = true
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= s.Min && n <= s.Max {
			s.Value = n
		}
	}
	s.clamp()
	return s
}

// Answer returns the value as the answer string.
func (s Slider) Answer() string {
	return strconv.Itoa(s.Value)
}

// View renders the track with a marker on the current value.
func (s Slider) View() string {
	var b strings.Builder
	b.WriteString(theme.Hint.Render("DISAGREE "))
	for v := s.Min; v <= s.Max; v++ {
		cell := fmt.Sprintf(" %d ", v)
		switch {
		case v == s.Value:
			b.WriteString(lipgloss.NewStyle().
				Background(theme.Primary).
				Foreground(theme.BgDark).
				Bold(true).
				Render("[" + strconv.Itoa(v) + "]"))
		default:
			b.WriteString(theme.Disabled.Render(cell))
		}
		if v < s.Max {
			b.WriteString(theme.Disabled.Render("─"))
		}
	}
	b.WriteString(theme.Hint.Render(" AGREE"))
	return b.String()
}
