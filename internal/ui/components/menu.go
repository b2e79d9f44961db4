package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/ui/theme"
)

// MenuItem is one dashboard action. Disabled items stay visible but the
// cursor skips them.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of full-width buttons.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu puts the cursor on the first enabled item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.step(+1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step moves the cursor to the next enabled item in direction dir. The
// cursor stays put at either end.
func (m *Menu) step(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

// Focus moves the cursor to the enabled item labelled label, if any.
func (m *Menu) Focus(label string) {
	for i, it := range m.Items {
		if it.Label == label && !it.Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "up", "k":
		m.step(-1)
	case "down", "j":
		m.step(+1)
	case "enter":
		if it, ok := m.item(); ok && !it.Disabled && it.Action != nil {
			return m, it.Action()
		}
	}
	return m, nil
}

func (m Menu) item() (MenuItem, bool) {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return MenuItem{}, false
	}
	return m.Items[m.Selected], true
}

// Current is the label under the cursor.
func (m Menu) Current() string {
	it, _ := m.item()
	return it.Label
}

// View stacks the items as buttons width cells wide.
func (m Menu) View(width int) string {
	base := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Padding(0, 1)

	rows := make([]string, len(m.Items))
	for i, it := range m.Items {
		switch {
		case it.Disabled:
			rows[i] = base.Foreground(theme.TextDim).Render(it.Label)
		case i == m.Selected:
			rows[i] = base.Bold(true).
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Primary).
				Render("▸ " + it.Label)
		default:
			rows[i] = base.Foreground(theme.Text).
				Border(lipgloss.RoundedBorder()).
				BorderForeground(theme.Border).
				Render(it.Label)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center, rows...)
}
