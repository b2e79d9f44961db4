// Package profile is the identity editor: name, field of study and primary
// interest.
package profile

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/identity"
	"github.com/abhisek/karmaloop/internal/router"
	"github.com/abhisek/karmaloop/internal/screen"
	"github.com/abhisek/karmaloop/internal/ui/components"
	"github.com/abhisek/karmaloop/internal/ui/layout"
	"github.com/abhisek/karmaloop/internal/ui/theme"
)

// SavedNotice is shown after a successful update.
const SavedNotice = "IDENTITY REWRITTEN. PROFILE UPDATED."

const (
	fieldName = iota
	fieldStudy
	fieldInterest
)

// fieldPaths maps validation paths to inputs.
var fieldPaths = map[string]int{
	"identity.name":  fieldName,
	"academic.field": fieldStudy,
}

// ProfileScreen edits the logged-in user.
type ProfileScreen struct {
	deps   *screen.Deps
	inputs []components.TextInput
	submit components.Button
	// focus indexes inputs; len(inputs) is the save button.
	focus  int
	saved  bool
	errMsg string
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates the editor prefilled from the session.
func New(deps *screen.Deps) *ProfileScreen {
	p := &ProfileScreen{
		deps: deps,
		inputs: []components.TextInput{
			components.NewTextInput("DESIGNATION", "your name", false, 64),
			components.NewTextInput("FIELD OF STUDY", "computer science", false, 64),
			components.NewTextInput("PRIMARY INTEREST", "leave blank to keep", false, 64),
		},
	}
	if u := screen.SessionUser(deps.Engine); u != nil {
		p.inputs[fieldName].SetValue(u.Identity.Name)
		p.inputs[fieldStudy].SetValue(u.Academic.Field)
		if len(u.Career.Interests) > 0 {
			p.inputs[fieldInterest].SetValue(u.Career.Interests[0])
		}
	}
	p.submit = components.NewButton("REWRITE IDENTITY", p.save)
	p.setFocus(fieldName)
	return p
}

func (p *ProfileScreen) setFocus(i int) {
	p.focus = i
	for j := range p.inputs {
		if j == i {
			p.inputs[j].Model.Focus()
		} else {
			p.inputs[j].Model.Blur()
		}
	}
	p.submit.Focused = i == len(p.inputs)
}

func (p *ProfileScreen) Init() tea.Cmd {
	return p.inputs[fieldName].Init()
}

func (p *ProfileScreen) Title() string {
	return "Edit Identity"
}

func (p *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "esc":
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "down":
			p.setFocus((p.focus + 1) % (len(p.inputs) + 1))
			return p, nil
		case "shift+tab", "up":
			p.setFocus((p.focus + len(p.inputs)) % (len(p.inputs) + 1))
			return p, nil
		}
		if p.submit.Focused {
			var cmd tea.Cmd
			p.submit, cmd = p.submit.Update(msg)
			return p, cmd
		}
		if kmsg.String() == "enter" {
			return p, p.save()
		}
		p.saved = false
	}

	if p.focus >= len(p.inputs) {
		return p, nil
	}
	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	return p, cmd
}

func (p *ProfileScreen) save() tea.Cmd {
	p.errMsg = ""
	sess, err := p.deps.Engine.UpdateProfile(context.Background(), identity.ProfileEdit{
		Name:     p.inputs[fieldName].Value(),
		Field:    p.inputs[fieldStudy].Value(),
		Interest: p.inputs[fieldInterest].Value(),
	})
	if err != nil {
		var verr *identity.ValidationError
		if errors.As(err, &verr) {
			for _, f := range verr.Fields {
				if i, ok := fieldPaths[f.Field]; ok {
					p.inputs[i].Err = "rejected: " + f.Rule
					p.setFocus(i)
					break
				}
			}
			return nil
		}
		p.errMsg = err.Error()
		return nil
	}

	p.saved = true
	ledger, err := p.deps.Engine.Ledger(context.Background())
	if err != nil {
		return nil
	}
	return screen.StatusCmd(&sess.User, ledger)
}

// Saved reports whether the last submit succeeded.
func (p *ProfileScreen) Saved() bool {
	return p.saved
}

func (p *ProfileScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{theme.Title.Render("EDIT IDENTITY"), ""}
	for _, in := range p.inputs {
		sections = append(sections, in.View(), "")
	}
	sections = append(sections, p.submit.View())
	if p.saved {
		sections = append(sections, theme.Alert.Render(SavedNotice))
	}
	if p.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(p.errMsg))
	}

	card := components.NeonCard(strings.Join(sections, "\n"), cw, theme.Primary)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
