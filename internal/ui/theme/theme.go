package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/progression"
	"github.com/abhisek/karmaloop/internal/questionbank"
)

// Color palette: terminal neon on a near-black background.
var (
	Primary   = lipgloss.Color("#00F0FF") // Neon Cyan
	Secondary = lipgloss.Color("#FF2A6D") // Hot Magenta
	Accent    = lipgloss.Color("#F9F871") // Signal Yellow
	Success   = lipgloss.Color("#05FFA1") // Matrix Green
	Error     = lipgloss.Color("#FF3860") // Alarm Red
	Text      = lipgloss.Color("#E6F1FF") // Ice
	TextDim   = lipgloss.Color("#6B7A99") // Fog
	BgDark    = lipgloss.Color("#05060A") // Void
	BgCard    = lipgloss.Color("#0D1321") // Panel
	Border    = lipgloss.Color("#1F2A44") // Grid
)

// Sector colors follow the dashboard quadrant order.
var (
	StrengthColor    = lipgloss.Color("#05FFA1")
	WeaknessColor    = lipgloss.Color("#FF3860")
	OpportunityColor = lipgloss.Color("#00F0FF")
	ThreatColor      = lipgloss.Color("#F9A826")
)

// SectorColor returns the accent for a SWOT sector.
func SectorColor(s questionbank.Sector) color.Color {
	switch s {
	case questionbank.SectorStrength:
		return StrengthColor
	case questionbank.SectorWeakness:
		return WeaknessColor
	case questionbank.SectorOpportunity:
		return OpportunityColor
	case questionbank.SectorThreat:
		return ThreatColor
	default:
		return Text
	}
}

// BadgeColor returns the accent for a badge style.
func BadgeColor(s progression.Style) color.Color {
	switch s {
	case progression.StylePioneer:
		return Success
	case progression.StyleAnalyst:
		return Primary
	case progression.StyleWalker:
		return Secondary
	default:
		return TextDim
	}
}

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Alert = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)
)
