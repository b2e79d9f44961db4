// Package interview is the interview simulator: a deck of practice prompts
// shaped by the stored profile. The first visit grants the interview bonus.
package interview

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/router"
	"github.com/abhisek/karmaloop/internal/screen"
	"github.com/abhisek/karmaloop/internal/store"
	"github.com/abhisek/karmaloop/internal/ui/components"
	"github.com/abhisek/karmaloop/internal/ui/layout"
	"github.com/abhisek/karmaloop/internal/ui/theme"
)

// InterviewScreen shows one practice prompt at a time.
type InterviewScreen struct {
	deps         *screen.Deps
	announcement string
	prompts      []string
	index        int
	errMsg       string
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)

// New creates the simulator.
func New(deps *screen.Deps) *InterviewScreen {
	return &InterviewScreen{deps: deps}
}

func (s *InterviewScreen) Init() tea.Cmd {
	eng := s.deps.Engine
	outcome, err := eng.VisitInterviewSurface(context.Background())
	if err != nil {
		s.errMsg = err.Error()
		s.prompts = Prompts(nil)
		return nil
	}
	if outcome.Applied {
		s.announcement = outcome.Bonus.Announcement
	}
	s.prompts = Prompts(outcome.Profile)
	return screen.StatusCmd(screen.SessionUser(eng), outcome.Ledger())
}

// Prompts returns the practice deck for p. Without a profile the deck is
// generic.
func Prompts(p *store.ProfileRecord) []string {
	prompts := []string{
		"Introduce yourself in sixty seconds. What problem do you want to be hired to solve?",
		"Walk me through the most complex system you have built. Where did it break?",
	}
	if p != nil {
		prompts = append(prompts,
			fmt.Sprintf("Your scan reads %s. Give one concrete example that proves it.", p.Strength),
			fmt.Sprintf("We noticed %s. How are you patching it right now?", strings.ToLower(p.Weakness)),
			fmt.Sprintf("Why is %s the right path for you, and what have you shipped toward it?", p.Opportunity),
			fmt.Sprintf("The market shows %s. How will you stay relevant in three years?", strings.ToLower(p.Threat)),
		)
	}
	return append(prompts,
		"Describe a disagreement with a teammate and how it was resolved.",
		"Do you have any questions for us?",
	)
}

func (s *InterviewScreen) Title() string {
	return "Interview Simulator"
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Prompt"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "right", "l", "enter", "space":
		if s.index < len(s.prompts)-1 {
			s.index++
		}
	case "left", "h":
		if s.index > 0 {
			s.index--
		}
	}
	return s, nil
}

func (s *InterviewScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, theme.Title.Render("INTERVIEW SIMULATOR"))
	if s.announcement != "" {
		sections = append(sections, theme.Alert.Width(cw).Render(s.announcement))
	}
	sections = append(sections, "")

	if len(s.prompts) > 0 {
		counter := theme.Hint.Render(fmt.Sprintf("PROMPT %d/%d", s.index+1, len(s.prompts)))
		body := counter + "\n\n" + theme.Body.Width(cw-4).Render(s.prompts[s.index])
		sections = append(sections, components.NeonCard(body, cw, theme.Accent))
	}
	sections = append(sections, theme.Hint.Render("answer out loud, then move to the next prompt"))

	if s.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
