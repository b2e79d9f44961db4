// Package detail renders the analysis write-up and resources for one SWOT
// sector.
package detail

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/insight"
	"github.com/abhisek/karmaloop/internal/questionbank"
	"github.com/abhisek/karmaloop/internal/router"
	"github.com/abhisek/karmaloop/internal/screen"
	"github.com/abhisek/karmaloop/internal/store"
	"github.com/abhisek/karmaloop/internal/ui/components"
	"github.com/abhisek/karmaloop/internal/ui/layout"
	"github.com/abhisek/karmaloop/internal/ui/theme"
)

// DetailScreen shows insight.For for one sector at a time.
type DetailScreen struct {
	profile store.ProfileRecord
	sector  questionbank.Sector
	content insight.Content
	errMsg  string
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// New opens the detail view of sector s.
func New(p store.ProfileRecord, s questionbank.Sector) *DetailScreen {
	d := &DetailScreen{profile: p}
	d.load(s)
	return d
}

func (d *DetailScreen) load(s questionbank.Sector) {
	d.sector = s
	c, err := insight.For(d.profile, s)
	if err != nil {
		d.errMsg = err.Error()
		return
	}
	d.content = c
	d.errMsg = ""
}

// Sector returns the sector on display.
func (d *DetailScreen) Sector() questionbank.Sector {
	return d.sector
}

func (d *DetailScreen) Init() tea.Cmd {
	return nil
}

func (d *DetailScreen) Title() string {
	return questionbank.SectorDisplayName(d.sector)
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Sector"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return d, nil
	}
	switch kmsg.String() {
	case "esc", "q":
		return d, func() tea.Msg { return router.PopScreenMsg{} }
	case "right", "l", "tab":
		d.load(d.step(1))
	case "left", "h", "shift+tab":
		d.load(d.step(-1))
	}
	return d, nil
}

func (d *DetailScreen) step(delta int) questionbank.Sector {
	all := questionbank.AllSectors()
	for i, s := range all {
		if s == d.sector {
			return all[(i+delta+len(all))%len(all)]
		}
	}
	return all[0]
}

func (d *DetailScreen) View(width, height int) string {
	if d.errMsg != "" {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorText.Render(d.errMsg))
	}

	cw := components.ContentWidth(width)
	c := theme.SectorColor(d.sector)

	var sections []string
	sections = append(sections, lipgloss.NewStyle().Foreground(c).Bold(true).Render(d.content.Heading))
	sections = append(sections, theme.Title.Render(d.content.Title))
	sections = append(sections, "")

	for _, p := range d.content.Paragraphs {
		sections = append(sections,
			lipgloss.NewStyle().Foreground(c).Bold(true).Render(p.Label),
			theme.Body.Width(cw).Render(p.Text),
			"")
	}

	var cards []string
	for _, r := range d.content.Resources {
		cards = append(cards, resourceLine(r))
	}
	sections = append(sections, components.NeonCard(strings.Join(cards, "\n"), cw, c))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}

func resourceLine(r insight.Resource) string {
	var head string
	switch r.Kind {
	case insight.ResourceVideo:
		head = "▶ " + r.Title
	case insight.ResourceJob:
		head = fmt.Sprintf("◆ %s  %s", r.Title, theme.Hint.Render(r.Subtitle+" · "+r.Location))
	case insight.ResourceMentor:
		head = fmt.Sprintf("%s %s  %s", r.Icon, r.Title, theme.Hint.Render(r.Subtitle))
	default:
		head = r.Title
	}
	return theme.Body.Render(head) + "  " + theme.Alert.Render("["+strings.ToUpper(r.Action)+"]")
}
