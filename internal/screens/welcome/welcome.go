// Package welcome is the boot splash shown on every launch: banner, a
// scrolling boot log, then the tagline and a key prompt.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/router"
	"github.com/abhisek/karmaloop/internal/screen"
	"github.com/abhisek/karmaloop/internal/ui/theme"
)

// FrameInterval is the animation tick.
const FrameInterval = 100 * time.Millisecond

// Frames at which the boot log starts and the prompt appears. The
// animation stops advancing at lastFrame.
const (
	logFrame    = 5
	promptFrame = 15
	lastFrame   = 30
	lineFrames  = 2
)

var bootLog = []string{
	"> LOADING NEURAL CORE ........ OK",
	"> CALIBRATING SWOT MATRIX .... OK",
	"> SYNCING PROGRESSION LEDGER . OK",
	"> ESTABLISHING LINK .......... OK",
}

type frameMsg struct{}

// WelcomeScreen hands over to next on the first key press. It never
// advances on its own.
type WelcomeScreen struct {
	next  func() screen.Screen
	frame int
	done  bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return nextFrame() }

func nextFrame() tea.Cmd {
	return tea.Tick(FrameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case frameMsg:
		if w.done {
			return w, nil
		}
		w.frame++
		return w, nextFrame()
	case tea.KeyPressMsg:
		if w.done {
			return w, nil
		}
		w.done = true
		s := w.next()
		return w, func() tea.Msg { return router.ReplaceScreenMsg{Screen: s} }
	}
	return w, nil
}

// logLines is how many boot log lines are visible.
func (w *WelcomeScreen) logLines() int {
	if w.frame < logFrame {
		return 0
	}
	return min((w.frame-logFrame)/lineFrames+1, len(bootLog))
}

func (w *WelcomeScreen) View(width, height int) string {
	parts := []string{RenderBanner(width)}

	if n := w.logLines(); n > 0 {
		ok := lipgloss.NewStyle().Foreground(theme.Success)
		lines := make([]string, n)
		for i := range n {
			lines[i] = ok.Render(bootLog[i])
		}
		parts = append(parts, "", strings.Join(lines, "\n"))
	}

	if w.frame >= promptFrame {
		// The cursor blinks every half second.
		cursor := "█"
		if min(w.frame, lastFrame)/5%2 == 1 {
			cursor = " "
		}
		parts = append(parts, "",
			lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("DECODE YOUR CAREER DNA"),
			"",
			theme.Hint.Italic(true).Render("press any key to initialize neural link "+cursor),
		)
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(parts, "\n"))
}
