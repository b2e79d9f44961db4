// Package layout draws the frame around every screen: the header bar with
// the operator status, the key hint footer and the undersized-terminal
// notice.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this height the dashboard drops the badge deck.
	CompactHeightThreshold = 30
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the terminal with a resize request.
func RenderMinSizeMessage(width, height int) string {
	body := theme.Title.Render("DISPLAY SURFACE TOO SMALL") + "\n\n" +
		theme.Body.Render(fmt.Sprintf("REQUIRED  %d x %d", MinWidth, MinHeight)) + "\n" +
		theme.Hint.Render(fmt.Sprintf("CURRENT   %d x %d", width, height))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// Status is the operator readout on the right of the header. Level zero
// means no scan yet, so only the name is shown.
type Status struct {
	Operator string
	XP       int
	Level    int
}

func (s Status) render() string {
	name := s.Operator
	if name == "" {
		name = "GUEST"
	}
	out := lipgloss.NewStyle().Foreground(theme.TextDim).Render(name)
	if s.Level == 0 {
		return out
	}
	return out +
		lipgloss.NewStyle().Foreground(theme.Accent).Render(fmt.Sprintf("   LVL %d", s.Level)) +
		lipgloss.NewStyle().Foreground(theme.Success).Render(fmt.Sprintf("   %d XP", s.XP))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border)

// RenderHeader shows the brand on the left, title centred and the status
// on the right.
func RenderHeader(title string, st Status, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  KARMALOOP")
	right := st.render()
	inner := max(width-4, 0)

	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	// Centre the title on the full bar, then fit the status into what is
	// left on the right.
	lead := max((inner-lipgloss.Width(mid))/2-lipgloss.Width(brand), 1)
	tail := max(inner-lipgloss.Width(brand)-lead-lipgloss.Width(mid)-lipgloss.Width(right), 1)

	line := brand + strings.Repeat(" ", lead) + mid + strings.Repeat(" ", tail) + right
	return bar.Width(width).Render(line)
}

// RenderFooter lists the key hints of the active screen.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString(descStyle.Render("  ·  "))
		}
		b.WriteString(keyStyle.Render(h.Key) + " " + descStyle.Render(h.Description))
	}
	return bar.Width(width).Render(b.String())
}

// RenderFrame stacks header, content and footer, giving the content
// whatever height the bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	room := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(room).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}
