// Package dashboard is the operator home: SWOT quadrants, XP and level,
// the badge deck and the module menu.
package dashboard

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/engine"
	"github.com/abhisek/karmaloop/internal/insight"
	"github.com/abhisek/karmaloop/internal/progression"
	"github.com/abhisek/karmaloop/internal/questionbank"
	"github.com/abhisek/karmaloop/internal/router"
	"github.com/abhisek/karmaloop/internal/screen"
	"github.com/abhisek/karmaloop/internal/screens/detail"
	"github.com/abhisek/karmaloop/internal/screens/interview"
	oraclescreen "github.com/abhisek/karmaloop/internal/screens/oracle"
	"github.com/abhisek/karmaloop/internal/screens/profile"
	scanscreen "github.com/abhisek/karmaloop/internal/screens/scan"
	"github.com/abhisek/karmaloop/internal/ui/components"
	"github.com/abhisek/karmaloop/internal/ui/layout"
	"github.com/abhisek/karmaloop/internal/ui/theme"
)

const (
	labelScan      = "INITIATE NEURAL SCAN"
	labelRescan    = "RE-CALIBRATE SYSTEM"
	labelOracle    = "CONSULT THE ORACLE"
	labelInterview = "INTERVIEW SIMULATOR"
	labelProfile   = "EDIT IDENTITY"
	labelLogout    = "LOGOUT"
	labelExit      = "EXIT"
)

type loadedMsg struct {
	data engine.Dashboard
	err  error
}

// DashboardScreen renders engine.Dashboard.
type DashboardScreen struct {
	deps   *screen.Deps
	data   engine.Dashboard
	loaded bool
	errMsg string
	menu   components.Menu
}

var _ screen.Screen = (*DashboardScreen)(nil)
var _ screen.KeyHintProvider = (*DashboardScreen)(nil)

// New creates the dashboard. Data loads on Init and on every resume.
func New(deps *screen.Deps) *DashboardScreen {
	d := &DashboardScreen{deps: deps}
	d.menu = d.buildMenu()
	return d
}

func (d *DashboardScreen) Init() tea.Cmd {
	return d.load()
}

func (d *DashboardScreen) load() tea.Cmd {
	eng := d.deps.Engine
	return func() tea.Msg {
		data, err := eng.Dashboard(context.Background())
		return loadedMsg{data: data, err: err}
	}
}

func (d *DashboardScreen) Title() string {
	return "Dashboard"
}

func (d *DashboardScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
	if d.data.Profile != nil {
		hints = append(hints, layout.KeyHint{Key: "S/W/O/T", Description: "Analysis"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (d *DashboardScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			d.errMsg = msg.err.Error()
			return d, nil
		}
		d.data = msg.data
		d.loaded = true
		d.errMsg = ""
		d.menu = d.rebuildMenu()
		return d, d.status()

	case router.ResumedMsg:
		return d, d.load()

	case tea.KeyPressMsg:
		if d.data.Profile != nil {
			if s, err := insight.ParseSector(msg.String()); err == nil && len(msg.String()) == 1 {
				return d, push(detail.New(*d.data.Profile, s))
			}
		}
	}

	var cmd tea.Cmd
	d.menu, cmd = d.menu.Update(msg)
	return d, cmd
}

func (d *DashboardScreen) status() tea.Cmd {
	return screen.StatusCmd(d.data.User, d.data.Ledger)
}

// rebuildMenu keeps the cursor on the same label when possible.
func (d *DashboardScreen) rebuildMenu() components.Menu {
	m := d.buildMenu()
	m.Focus(d.menu.Current())
	return m
}

func (d *DashboardScreen) buildMenu() components.Menu {
	deps := d.deps
	scanLabel := labelScan
	if d.data.Profile != nil {
		scanLabel = labelRescan
	}
	oracleLabel := labelOracle
	if !d.data.Ledger.OracleAccess {
		oracleLabel += fmt.Sprintf("  [%s %d XP]", progression.LockedIcon, progression.OracleAccessXP)
	}

	return components.NewMenu([]components.MenuItem{
		{Label: scanLabel, Action: func() tea.Cmd {
			return push(scanscreen.New(deps))
		}},
		{Label: oracleLabel, Disabled: !d.data.Ledger.OracleAccess, Action: func() tea.Cmd {
			return push(oraclescreen.New(deps))
		}},
		{Label: labelInterview, Action: func() tea.Cmd {
			return push(interview.New(deps))
		}},
		{Label: labelProfile, Disabled: d.data.User == nil, Action: func() tea.Cmd {
			return push(profile.New(deps))
		}},
		{Label: labelLogout, Action: func() tea.Cmd {
			if err := deps.Engine.Logout(context.Background()); err != nil {
				d.errMsg = err.Error()
				return nil
			}
			next := deps.SignIn()
			return tea.Batch(
				func() tea.Msg { return router.ResetScreenMsg{Screen: next} },
				func() tea.Msg { return screen.StatusMsg{} },
			)
		}},
		{Label: labelExit, Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (d *DashboardScreen) View(width, height int) string {
	if !d.loaded && d.errMsg == "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("syncing neural profile..."))
	}

	cw := components.ContentWidth(width)
	var sections []string

	sections = append(sections, d.renderGreeting(cw))
	sections = append(sections, d.renderQuadrants(cw))
	if d.data.Profile != nil {
		sections = append(sections, d.renderXP(cw))
	}
	if !layout.IsCompactHeight(height) {
		sections = append(sections, components.BadgeDeck(d.data.Ledger.Badges, cw))
	}
	sections = append(sections, d.menu.View(cw-4))
	if d.errMsg != "" {
		sections = append(sections, theme.ErrorText.Render(d.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}

func (d *DashboardScreen) renderGreeting(cw int) string {
	name := "OPERATOR"
	if d.data.User != nil {
		name = strings.ToUpper(d.data.User.Identity.Name)
	}
	return theme.Title.Width(cw).Render("WELCOME BACK, " + name)
}

func (d *DashboardScreen) renderQuadrants(cw int) string {
	tileWidth := cw/2 - 1
	var tiles []string
	if d.data.Profile == nil {
		for _, s := range questionbank.AllSectors() {
			tiles = append(tiles, quadrantTile(s, progression.LockedIcon+" "+progression.LockedTitle,
				"Run a neural scan to decode", "", tileWidth))
		}
	} else {
		for _, q := range insight.Quadrants(*d.data.Profile) {
			action := fmt.Sprintf("[%s] %s", strings.ToUpper(string(q.Sector)[:1]), q.Action)
			tiles = append(tiles, quadrantTile(q.Sector, q.Title, q.Subtext, action, tileWidth))
		}
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, tiles[0], " ", tiles[1])
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, tiles[2], " ", tiles[3])
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func quadrantTile(s questionbank.Sector, title, subtext, action string, w int) string {
	c := theme.SectorColor(s)
	body := lipgloss.NewStyle().Foreground(c).Bold(true).Render(questionbank.SectorDisplayName(s)) + "\n" +
		theme.Body.Bold(true).Render(title) + "\n" +
		theme.Hint.Render(subtext)
	if action != "" {
		body += "\n" + lipgloss.NewStyle().Foreground(c).Render(action)
	}
	return components.NeonCard(body, w, c)
}

func (d *DashboardScreen) renderXP(cw int) string {
	l := d.data.Ledger
	next := progression.NextThreshold(l.XP)
	label := fmt.Sprintf("LVL %d  %d XP", l.Level, l.XP)
	if next > 0 {
		label += fmt.Sprintf(" / %d", next)
	}
	return components.Meter{Label: label, Value: l.XP, Max: next, Width: cw, Color: theme.Accent}.View()
}
