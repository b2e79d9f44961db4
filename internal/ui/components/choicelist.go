package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/karmaloop/internal/questionbank"
	"github.com/abhisek/karmaloop/internal/ui/theme"
)

// ChoiceList selects one option of a choice question. Number keys jump
// straight to an option.
type ChoiceList struct {
	Options  []questionbank.Option
	Selected int
	// Chosen is set once the user confirms; the tag is the answer value.
	Chosen bool
}

// NewChoiceList creates a list over opts with the first option selected.
func NewChoiceList(opts []questionbank.Option) ChoiceList {
	return ChoiceList{Options: opts}
}

// Update handles navigation and confirmation.
func (c ChoiceList) Update(msg tea.Msg) ChoiceList {
	if c.Chosen {
		return c
	}
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Options)-1 {
			c.Selected++
		}
	case "enter", "space":
		c.Chosen = len(c.Options) > 0
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(c.Options) {
				c.Selected = i
				c.Chosen = true
			}
		}
	}
	return c
}

// Value returns the selected option's tag.
func (c ChoiceList) Value() string {
	if c.Selected < 0 || c.Selected >= len(c.Options) {
		return ""
	}
	return c.Options[c.Selected].Tag
}

// View renders the options.
func (c ChoiceList) View() string {
	var b strings.Builder
	for i, opt := range c.Options {
		prefix := "  "
		if i == c.Selected {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt.Label)
		switch {
		case i == c.Selected && c.Chosen:
			b.WriteString(theme.Alert.Render(line))
		case i == c.Selected:
			b.WriteString(theme.Selected.Render(line))
		default:
			b.WriteString(theme.Unselected.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}
