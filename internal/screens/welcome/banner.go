package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/karmaloop/internal/ui/theme"
)

const bannerArt = `
 ██╗  ██╗ █████╗ ██████╗ ███╗   ███╗ █████╗ ██╗      ██████╗  ██████╗ ██████╗
 ██║ ██╔╝██╔══██╗██╔══██╗████╗ ████║██╔══██╗██║     ██╔═══██╗██╔═══██╗██╔══██╗
 █████╔╝ ███████║██████╔╝██╔████╔██║███████║██║     ██║   ██║██║   ██║██████╔╝
 ██╔═██╗ ██╔══██║██╔══██╗██║╚██╔╝██║██╔══██║██║     ██║   ██║██║   ██║██╔═══╝
 ██║  ██╗██║  ██║██║  ██║██║ ╚═╝ ██║██║  ██║███████╗╚██████╔╝╚██████╔╝██║
 ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝     ╚═╝╚═╝  ╚═╝╚══════╝ ╚═════╝  ╚═════╝ ╚═╝`

const bannerCompact = "K A R M A L O O P"

// RenderBanner returns the KARMALOOP banner. Terminals narrower than the
// art get the compact fallback.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < lipgloss.Width(bannerArt)+2 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
