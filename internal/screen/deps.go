package screen

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/karmaloop/internal/engine"
	"github.com/abhisek/karmaloop/internal/logging"
	"github.com/abhisek/karmaloop/internal/progression"
	"github.com/abhisek/karmaloop/internal/store"
	"github.com/abhisek/karmaloop/internal/ui/layout"
)

// Deps is what every screen may need. It is shared by pointer. Screens
// call the engine from Update for local work; only model-backed calls and
// read-only loads run inside a tea.Cmd.
type Deps struct {
	Engine *engine.Engine
	Log    *logging.Logger

	// ScanPacing is the fade between scan questions.
	ScanPacing time.Duration
	// OracleTimeout bounds one advisory reply.
	OracleTimeout time.Duration

	// Navigation factories, set by the app. Screens that lead back to the
	// dashboard or the sign-in form use these instead of importing them.
	Dashboard func() Screen
	SignIn    func() Screen
}

// StatusMsg updates the header status line.
type StatusMsg struct {
	Status layout.Status
}

// StatusCmd reports the header status for user and ledger. A nil user
// shows as a guest.
func StatusCmd(user *store.UserRecord, l progression.Ledger) tea.Cmd {
	st := layout.Status{XP: l.XP, Level: l.Level}
	if user != nil {
		st.Operator = strings.ToUpper(user.Identity.Name)
	}
	return func() tea.Msg { return StatusMsg{Status: st} }
}

// SessionUser returns the logged-in user of eng, nil for a guest.
func SessionUser(eng *engine.Engine) *store.UserRecord {
	if sess := eng.Session(); sess != nil {
		return &sess.User
	}
	return nil
}
