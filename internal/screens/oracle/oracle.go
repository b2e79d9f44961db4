// Package oracle is the advisory chat screen.
package oracle

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/llm"
	"github.com/abhisek/karmaloop/internal/oracle"
	"github.com/abhisek/karmaloop/internal/router"
	"github.com/abhisek/karmaloop/internal/screen"
	"github.com/abhisek/karmaloop/internal/ui/components"
	"github.com/abhisek/karmaloop/internal/ui/layout"
	"github.com/abhisek/karmaloop/internal/ui/theme"
)

// visibleLines caps the transcript drawn on screen.
const visibleLines = 12

type replyMsg struct {
	text  string
	reply oracle.Reply
	err   error
}

type line struct {
	role llm.Role
	text string
}

// OracleScreen chats with the advisor. The first visit per profile grants
// the advisory bonus.
type OracleScreen struct {
	deps         *screen.Deps
	announcement string
	greeting     string
	history      []llm.Message
	pending      string
	waiting      bool
	input        components.TextInput
	errMsg       string
}

var _ screen.Screen = (*OracleScreen)(nil)
var _ screen.KeyHintProvider = (*OracleScreen)(nil)

// New creates the chat screen.
func New(deps *screen.Deps) *OracleScreen {
	return &OracleScreen{
		deps:  deps,
		input: components.NewTextInput("", "transmit a query...", false, 500),
	}
}

func (o *OracleScreen) Init() tea.Cmd {
	ctx := context.Background()
	eng := o.deps.Engine

	var status tea.Cmd
	outcome, err := eng.VisitAdvisorySurface(ctx)
	if err != nil {
		o.errMsg = err.Error()
	} else {
		if outcome.Applied {
			o.announcement = outcome.Bonus.Announcement
		}
		status = screen.StatusCmd(screen.SessionUser(eng), outcome.Ledger())
	}

	greeting, err := eng.Greeting(ctx)
	if err != nil {
		o.errMsg = err.Error()
	}
	o.greeting = greeting

	return tea.Batch(o.input.Init(), status)
}

func (o *OracleScreen) Title() string {
	return "Oracle"
}

func (o *OracleScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (o *OracleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyMsg:
		o.waiting = false
		o.pending = ""
		if msg.err != nil {
			o.errMsg = msg.err.Error()
			return o, nil
		}
		o.history = append(o.history,
			llm.Message{Role: llm.RoleUser, Content: msg.text},
			llm.Message{Role: llm.RoleAssistant, Content: msg.reply.Text},
		)
		return o, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "esc":
			return o, func() tea.Msg { return router.PopScreenMsg{} }
		case "enter":
			return o, o.send()
		}
	}

	var cmd tea.Cmd
	o.input, cmd = o.input.Update(msg)
	return o, cmd
}

func (o *OracleScreen) send() tea.Cmd {
	text := strings.TrimSpace(o.input.Value())
	if o.waiting || text == "" {
		return nil
	}
	o.input.Reset()
	o.errMsg = ""
	o.waiting = true
	o.pending = text

	eng := o.deps.Engine
	timeout := o.deps.OracleTimeout
	history := append([]llm.Message(nil), o.history...)
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		reply, err := eng.Ask(ctx, history, text)
		return replyMsg{text: text, reply: reply, err: err}
	}
}

func (o *OracleScreen) transcript() []line {
	lines := []line{{role: llm.RoleAssistant, text: o.greeting}}
	for _, m := range o.history {
		lines = append(lines, line{role: m.Role, text: m.Content})
	}
	if o.pending != "" {
		lines = append(lines, line{role: llm.RoleUser, text: o.pending})
	}
	return lines
}

func (o *OracleScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	mode := "DIAGNOSTIC MODE"
	if o.deps.Engine.OracleOnline() {
		mode = "NEURAL LINK ONLINE"
	}
	sections = append(sections, theme.Title.Render("THE ORACLE")+"  "+theme.Hint.Render(mode))
	if o.announcement != "" {
		sections = append(sections, theme.Alert.Width(cw).Render(o.announcement))
	}
	sections = append(sections, "")

	var rendered []string
	for _, l := range o.transcript() {
		rendered = append(rendered, renderLine(l, cw))
	}
	if len(rendered) > visibleLines {
		rendered = rendered[len(rendered)-visibleLines:]
	}
	sections = append(sections, components.NeonCard(strings.Join(rendered, "\n"), cw, theme.Secondary))

	if o.waiting {
		sections = append(sections, theme.Hint.Render("oracle is computing..."))
	}
	sections = append(sections, o.input.View())
	if o.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(o.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}

func renderLine(l line, cw int) string {
	if l.role == llm.RoleUser {
		return lipgloss.NewStyle().Foreground(theme.Primary).Width(cw - 4).Align(lipgloss.Right).Render(l.text)
	}
	return theme.Body.Width(cw - 4).Render("◈ " + l.text)
}
