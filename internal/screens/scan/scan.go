// Package scan is the neural scan screen: one question at a time, in
// catalog order, with a short fade between questions.
package scan

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/questionbank"
	"github.com/abhisek/karmaloop/internal/router"
	"github.com/abhisek/karmaloop/internal/screen"
	"github.com/abhisek/karmaloop/internal/screens/levelup"
	"github.com/abhisek/karmaloop/internal/ui/components"
	"github.com/abhisek/karmaloop/internal/ui/layout"
	"github.com/abhisek/karmaloop/internal/ui/theme"
)

type fadeDoneMsg struct{}

// ScanScreen drives engine.SubmitAnswer from keyboard input.
type ScanScreen struct {
	deps     *screen.Deps
	question questionbank.Question
	choices  components.ChoiceList
	slider   components.Slider

	// pending is shown once the fade ends.
	pending *questionbank.Question
	fading  bool
	errMsg  string
}

var _ screen.Screen = (*ScanScreen)(nil)
var _ screen.KeyHintProvider = (*ScanScreen)(nil)

// New creates a scan screen. The scan starts on Init.
func New(deps *screen.Deps) *ScanScreen {
	return &ScanScreen{deps: deps}
}

func (s *ScanScreen) Init() tea.Cmd {
	s.show(s.deps.Engine.StartScan())
	return nil
}

func (s *ScanScreen) Title() string {
	return "Neural Scan"
}

func (s *ScanScreen) KeyHints() []layout.KeyHint {
	if s.question.Kind == questionbank.KindScalar {
		return []layout.KeyHint{
			{Key: "←→", Description: "Adjust"},
			{Key: "Enter", Description: "Confirm"},
			{Key: "Esc", Description: "Abort scan"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "1-9", Description: "Pick"},
		{Key: "Enter", Description: "Confirm"},
		{Key: "Esc", Description: "Abort scan"},
	}
}

func (s *ScanScreen) show(q questionbank.Question) {
	s.question = q
	s.choices = components.NewChoiceList(q.Options)
	s.slider = components.NewSlider(q.Min, q.Max, questionbank.ScalarDisplayDefault)
}

func (s *ScanScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case fadeDoneMsg:
		if s.pending != nil {
			s.show(*s.pending)
			s.pending = nil
		}
		s.fading = false
		return s, nil

	case tea.KeyPressMsg:
		if msg.String() == "esc" {
			s.deps.Engine.AbandonScan()
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		if s.fading {
			return s, nil
		}
		s.errMsg = ""

		value, chosen := s.input(msg)
		if !chosen {
			return s, nil
		}
		return s, s.submit(value)
	}
	return s, nil
}

// input feeds msg to the active widget and reports the confirmed value.
func (s *ScanScreen) input(msg tea.Msg) (string, bool) {
	if s.question.Kind == questionbank.KindScalar {
		s.slider = s.slider.Update(msg)
		return s.slider.Answer(), s.slider.Chosen
	}
	s.choices = s.choices.Update(msg)
	return s.choices.Value(), s.choices.Chosen
}

func (s *ScanScreen) submit(value string) tea.Cmd {
	step, err := s.deps.Engine.SubmitAnswer(context.Background(), s.question.ID, value)
	if err != nil {
		s.errMsg = err.Error()
		s.show(s.question)
		return nil
	}

	if step.Done() {
		next := levelup.New(*step.Profile)
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	if s.deps.ScanPacing <= 0 {
		s.show(*step.Next)
		return nil
	}
	s.pending = step.Next
	s.fading = true
	return tea.Tick(s.deps.ScanPacing, func(time.Time) tea.Msg { return fadeDoneMsg{} })
}

func (s *ScanScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	total := questionbank.Len()
	idx := questionbank.IndexOf(s.question.ID)

	var sections []string
	header := fmt.Sprintf("QUERY %02d/%02d  //  %s", idx+1, total,
		strings.ToUpper(questionbank.SectorDisplayName(s.question.Sector)))
	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.SectorColor(s.question.Sector)).Bold(true).Render(header))
	sections = append(sections, components.Meter{
		Value:   idx,
		Max:     total,
		Width:   cw,
		Color:   theme.SectorColor(s.question.Sector),
		Readout: true,
	}.View())
	sections = append(sections, "")

	prompt := theme.Body.Bold(true).Width(cw).Render(s.question.Prompt)
	var input string
	if s.question.Kind == questionbank.KindScalar {
		input = s.slider.View()
	} else {
		input = s.choices.View()
	}
	card := prompt + "\n\n" + input
	if s.fading {
		card = theme.Disabled.Width(cw).Render("decoding response...")
	}
	sections = append(sections, components.NeonCard(card, cw, theme.SectorColor(s.question.Sector)))

	if s.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
