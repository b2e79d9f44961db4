// Package levelup shows the scan completion celebration and closes itself.
package levelup

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/router"
	"github.com/abhisek/karmaloop/internal/screen"
	"github.com/abhisek/karmaloop/internal/store"
	"github.com/abhisek/karmaloop/internal/ui/components"
	"github.com/abhisek/karmaloop/internal/ui/theme"
)

// Duration is how long the overlay stays up without input.
const Duration = 2500 * time.Millisecond

type closeMsg struct{}

// LevelUpScreen announces a freshly decoded profile.
type LevelUpScreen struct {
	profile store.ProfileRecord
	closed  bool
}

var _ screen.Screen = (*LevelUpScreen)(nil)

// New creates the overlay for p.
func New(p store.ProfileRecord) *LevelUpScreen {
	return &LevelUpScreen{profile: p}
}

func (l *LevelUpScreen) Init() tea.Cmd {
	return tea.Tick(Duration, func(time.Time) tea.Msg { return closeMsg{} })
}

func (l *LevelUpScreen) Title() string {
	return "Scan Complete"
}

func (l *LevelUpScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case closeMsg, tea.KeyPressMsg:
		return l, l.close()
	}
	return l, nil
}

// close pops once; the timer and a key press may both arrive.
func (l *LevelUpScreen) close() tea.Cmd {
	if l.closed {
		return nil
	}
	l.closed = true
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (l *LevelUpScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	lines := []string{
		theme.Title.Render("⚡ LEVEL UP ⚡"),
		"",
		theme.Alert.Render(fmt.Sprintf("+%d XP", l.profile.XPEarned)),
		theme.Body.Render("NEURAL PROFILE DECODED"),
		"",
		theme.Subtitle.Render("ARCHETYPE: " + l.profile.Strength),
		"",
		theme.Hint.Render("press any key"),
	}
	card := components.NeonCard(
		lipgloss.NewStyle().Width(cw-4).Align(lipgloss.Center).Render(strings.Join(lines, "\n")),
		cw, theme.Accent)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
