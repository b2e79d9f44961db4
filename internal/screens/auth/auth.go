// Package auth is the sign-in screen: access-key login and the new
// operator registration wizard.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/identity"
	"github.com/abhisek/karmaloop/internal/router"
	"github.com/abhisek/karmaloop/internal/screen"
	"github.com/abhisek/karmaloop/internal/store"
	"github.com/abhisek/karmaloop/internal/ui/components"
	"github.com/abhisek/karmaloop/internal/ui/layout"
	"github.com/abhisek/karmaloop/internal/ui/theme"
)

type mode int

const (
	modeLogin mode = iota
	modeRegister
)

// step is one wizard prompt. field is the validation path it answers.
type step struct {
	label, placeholder, field string
	secret, optional          bool
}

var loginSteps = []step{
	{label: "EMAIL", placeholder: "neo@zion.io", field: "identity.email"},
	{label: "ACCESS KEY", placeholder: "KL-2025-XXXX", field: "identity.key", secret: true},
}

// Register steps. The access key is issued after the email step and shown
// on its own panel, it is never typed.
var registerSteps = []step{
	{label: "OPERATOR NAME", placeholder: "Thomas Anderson", field: "identity.name"},
	{label: "EMAIL", placeholder: "neo@zion.io", field: "identity.email"},
	{label: "INSTITUTION", placeholder: "Zion Institute of Technology", field: "academic.institution"},
	{label: "QUALIFICATION", placeholder: "B.Tech", field: "academic.qualification"},
	{label: "FIELD OF STUDY", placeholder: "Computer Science", field: "academic.field"},
	{label: "YEAR", placeholder: "3 (optional)", field: "academic.year", optional: true},
	{label: "INTERESTS", placeholder: "AI, Security, Design (comma separated)", field: "career.interests", optional: true},
}

const emailStep = 1

// AuthScreen handles both login and registration.
type AuthScreen struct {
	deps   *screen.Deps
	mode   mode
	steps  []step
	index  int
	values []string
	input  components.TextInput

	// issuedKey is set once the email is verified during registration.
	issuedKey string
	showKey   bool
	errMsg    string
}

var _ screen.Screen = (*AuthScreen)(nil)
var _ screen.KeyHintProvider = (*AuthScreen)(nil)

// New creates the sign-in screen in login mode.
func New(deps *screen.Deps) *AuthScreen {
	a := &AuthScreen{deps: deps}
	a.setMode(modeLogin)
	return a
}

func (a *AuthScreen) setMode(m mode) {
	a.mode = m
	a.steps = loginSteps
	if m == modeRegister {
		a.steps = registerSteps
	}
	a.values = make([]string, len(a.steps))
	a.issuedKey = ""
	a.showKey = false
	a.errMsg = ""
	a.focus(0)
}

func (a *AuthScreen) focus(i int) {
	a.index = i
	s := a.steps[i]
	a.input = components.NewTextInput(s.label, s.placeholder, s.secret, 120)
	a.input.SetValue(a.values[i])
}

func (a *AuthScreen) Init() tea.Cmd {
	return a.input.Init()
}

func (a *AuthScreen) Title() string {
	if a.mode == modeRegister {
		return "New Operator"
	}
	return "Access Terminal"
}

func (a *AuthScreen) KeyHints() []layout.KeyHint {
	if a.showKey {
		return []layout.KeyHint{{Key: "Enter", Description: "I saved my key"}}
	}
	other := "Register"
	if a.mode == modeRegister {
		other = "Login"
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Next"},
		{Key: "Shift+Tab", Description: "Previous"},
		{Key: "Tab", Description: other},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (a *AuthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd
	}

	if a.showKey {
		if kmsg.String() == "enter" {
			a.showKey = false
			a.focus(emailStep + 1)
			return a, a.input.Init()
		}
		return a, nil
	}

	switch kmsg.String() {
	case "tab":
		if a.mode == modeLogin {
			a.setMode(modeRegister)
		} else {
			a.setMode(modeLogin)
		}
		return a, a.input.Init()
	case "shift+tab":
		if a.index > 0 {
			a.values[a.index] = a.input.Value()
			a.focus(a.index - 1)
			return a, a.input.Init()
		}
		return a, nil
	case "enter":
		return a, a.submitStep()
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.errMsg = ""
	return a, cmd
}

func (a *AuthScreen) submitStep() tea.Cmd {
	cur := a.steps[a.index]
	val := strings.TrimSpace(a.input.Value())
	if val == "" && !cur.optional {
		a.input.Err = "required"
		return nil
	}
	a.values[a.index] = val

	ctx := context.Background()
	if a.mode == modeRegister && a.index == emailStep {
		key, err := a.deps.Engine.VerifyEmail(ctx, val)
		if err != nil {
			a.input.Err = describe(err)
			return nil
		}
		a.issuedKey = key
		a.showKey = true
		return nil
	}

	if a.index < len(a.steps)-1 {
		a.focus(a.index + 1)
		return a.input.Init()
	}

	var err error
	if a.mode == modeLogin {
		_, err = a.deps.Engine.Login(ctx, a.values[0], a.values[1])
	} else {
		_, err = a.deps.Engine.RegisterUser(ctx, a.record())
	}
	if err != nil {
		return a.fail(err)
	}
	next := a.deps.Dashboard()
	return func() tea.Msg { return router.ResetScreenMsg{Screen: next} }
}

// fail shows err. Validation failures jump back to the first bad field.
func (a *AuthScreen) fail(err error) tea.Cmd {
	var verr *identity.ValidationError
	if errors.As(err, &verr) {
		for i, s := range a.steps {
			if verr.Has(s.field) {
				a.focus(i)
				a.input.Err = "invalid " + strings.ToLower(s.label)
				return a.input.Init()
			}
		}
	}
	a.errMsg = describe(err)
	return nil
}

func (a *AuthScreen) record() store.UserRecord {
	v := a.values
	var interests []string
	for _, s := range strings.Split(v[6], ",") {
		if s = strings.TrimSpace(s); s != "" {
			interests = append(interests, s)
		}
	}
	return store.UserRecord{
		Identity: store.Identity{Name: v[0], Email: v[1], AccessKey: a.issuedKey},
		Academic: store.Academic{Institution: v[2], Qualification: v[3], Field: v[4], Year: v[5]},
		Career:   store.Career{Interests: interests, Clarity: identity.DefaultClarity},
	}
}

func describe(err error) string {
	switch {
	case errors.Is(err, identity.ErrNotFound):
		return "ACCESS DENIED: INVALID EMAIL OR KEY"
	case errors.Is(err, identity.ErrAlreadyRegistered):
		return "USER ALREADY EXISTS. PLEASE LOG IN."
	}
	var verr *identity.ValidationError
	if errors.As(err, &verr) {
		return "INVALID INPUT"
	}
	return strings.ToUpper(err.Error())
}

func (a *AuthScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var sections []string

	heading := "IDENTITY VERIFICATION"
	if a.mode == modeRegister {
		heading = "NEW OPERATOR REGISTRATION"
	}
	sections = append(sections, theme.Title.Width(cw).Render(heading))

	if a.showKey {
		sections = append(sections, components.NeonCard(
			theme.Alert.Render("ACCESS KEY GENERATED")+"\n\n"+
				lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(a.issuedKey)+"\n\n"+
				theme.Hint.Render("Store this key. It is the only way back into your profile."),
			cw, theme.Accent))
		return components.TerminalFrame(strings.Join(sections, "\n\n"), width, height)
	}

	progress := theme.Hint.Render(fmt.Sprintf("STEP %d / %d", a.index+1, len(a.steps)))
	sections = append(sections, progress)
	sections = append(sections, components.NeonCard(a.input.View(), cw, theme.Border))

	if a.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(a.errMsg))
	}
	return components.TerminalFrame(strings.Join(sections, "\n\n"), width, height)
}

