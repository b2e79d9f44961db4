package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/engine"
	"github.com/abhisek/karmaloop/internal/logging"
	"github.com/abhisek/karmaloop/internal/router"
	"github.com/abhisek/karmaloop/internal/screen"
	"github.com/abhisek/karmaloop/internal/screens/auth"
	"github.com/abhisek/karmaloop/internal/screens/dashboard"
	"github.com/abhisek/karmaloop/internal/screens/welcome"
	"github.com/abhisek/karmaloop/internal/ui/layout"
)

// Options carries the dependencies the TUI needs.
type Options struct {
	Engine *engine.Engine
	Log    *logging.Logger
	Deps   screen.Deps
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	status layout.Status
	width  int
	height int
}

// newAppModel boots the engine and picks the first screen after the
// splash: the dashboard for a remembered session, sign-in otherwise.
func newAppModel(ctx context.Context, opts Options) (AppModel, error) {
	deps := opts.Deps
	deps.Engine = opts.Engine
	deps.Log = opts.Log
	if deps.Log == nil {
		deps.Log = logging.Nop()
	}
	d := &deps
	d.Dashboard = func() screen.Screen { return dashboard.New(d) }
	d.SignIn = func() screen.Screen { return auth.New(d) }

	sess, err := d.Engine.Boot(ctx)
	if err != nil {
		return AppModel{}, fmt.Errorf("boot: %w", err)
	}
	ledger, err := d.Engine.Ledger(ctx)
	if err != nil {
		return AppModel{}, fmt.Errorf("boot: %w", err)
	}

	next := d.SignIn
	if sess != nil {
		next = d.Dashboard
	}

	m := AppModel{router: router.New(welcome.New(next))}
	if st, ok := screen.StatusCmd(screen.SessionUser(d.Engine), ledger)().(screen.StatusMsg); ok {
		m.status = st.Status
	}
	return m, nil
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case screen.StatusMsg:
		m.status = msg.Status
		return m, nil

	case tea.KeyPressMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	switch {
	case m.width == 0 || m.height == 0:
		// No WindowSizeMsg yet.
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
	default:
		v.SetContent(m.frame())
	}
	return v
}

// frame renders the active screen between the header and footer bars.
func (m AppModel) frame() string {
	active := m.router.Active()
	header := layout.RenderHeader(active.Title(), m.status, m.width)
	footer := layout.RenderFooter(m.hints(active), m.width)

	room := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.router.View(m.width, room), footer, m.width, m.height)
}

var (
	splashHints = []layout.KeyHint{{Key: "Any key", Description: "Continue"}, {Key: "Ctrl+C", Description: "Quit"}}
	backHints   = []layout.KeyHint{{Key: "Esc", Description: "Back"}, {Key: "Ctrl+C", Description: "Quit"}}
)

func (m AppModel) hints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return backHints
	}
	return splashHints
}

// Run boots the engine and blocks until the user quits or ctx ends.
func Run(ctx context.Context, opts Options) error {
	m, err := newAppModel(ctx, opts)
	if err != nil {
		return err
	}
	if _, err := tea.NewProgram(m, tea.WithContext(ctx)).Run(); err != nil {
		if opts.Log != nil {
			opts.Log.Error("tui exited", "error", err)
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
