// Package screen defines the contract between the router and the TUI
// screens, plus the dependencies they share.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/karmaloop/internal/ui/layout"
)

// Screen is one routed view. The router sizes it; the app draws the header
// and footer around it.
type Screen interface {
	// Init runs when the screen becomes active for the first time.
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the body only.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen replace the default footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
