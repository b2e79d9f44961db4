package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/ui/theme"
)

// Button is a submit action inside a form. It only reacts while it holds
// focus.
type Button struct {
	Label   string
	Focused bool
	Press   func() tea.Cmd
}

func NewButton(label string, press func() tea.Cmd) Button {
	return Button{Label: label, Press: press}
}

// Update presses the button on enter or space.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok || !b.Focused || b.Press == nil {
		return b, nil
	}
	if s := key.String(); s == "enter" || s == "space" {
		return b, b.Press()
	}
	return b, nil
}

func (b Button) View() string {
	style := lipgloss.NewStyle().Padding(0, 2)
	if b.Focused {
		return style.Bold(true).
			Foreground(theme.Text).
			Background(theme.Secondary).
			Render("▸ " + b.Label)
	}
	return style.Foreground(theme.TextDim).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render("  " + b.Label)
}
