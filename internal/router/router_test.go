package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/karmaloop/internal/screen"
)

// fakeScreen counts Init calls and remembers the last message it got.
type fakeScreen struct {
	name  string
	inits int
	last  tea.Msg
}

func (f *fakeScreen) Init() tea.Cmd { f.inits++; return nil }
func (f *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	f.last = msg
	return f, nil
}
func (f *fakeScreen) View(int, int) string { return f.name }
func (f *fakeScreen) Title() string        { return f.name }

func stack(r *Router) []string {
	out := make([]string, len(r.stack))
	for i, s := range r.stack {
		out[i] = s.Title()
	}
	return out
}

func TestScanFlowNavigation(t *testing.T) {
	dashboard := &fakeScreen{name: "dashboard"}
	scan := &fakeScreen{name: "scan"}
	levelUp := &fakeScreen{name: "levelup"}
	r := New(dashboard)

	r.Update(PushScreenMsg{Screen: scan})
	assert.Equal(t, []string{"dashboard", "scan"}, stack(r))
	assert.Equal(t, 1, scan.inits)

	r.Update(ReplaceScreenMsg{Screen: levelUp})
	assert.Equal(t, []string{"dashboard", "levelup"}, stack(r))
	assert.Equal(t, 1, levelUp.inits)

	cmd := r.Update(PopScreenMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, []string{"dashboard"}, stack(r))

	r.Update(cmd())
	assert.IsType(t, ResumedMsg{}, dashboard.last)
	assert.Equal(t, "dashboard", r.View(80, 24))
}

func TestPopKeepsRoot(t *testing.T) {
	r := New(&fakeScreen{name: "welcome"})
	assert.Nil(t, r.Pop())
	assert.Equal(t, 1, r.Depth())
}

func TestResetAfterLogout(t *testing.T) {
	r := New(&fakeScreen{name: "dashboard"})
	r.Push(&fakeScreen{name: "detail"})
	r.Push(&fakeScreen{name: "oracle"})

	signIn := &fakeScreen{name: "sign-in"}
	r.Update(ResetScreenMsg{Screen: signIn})
	assert.Equal(t, []string{"sign-in"}, stack(r))
	assert.Same(t, signIn, r.Active())
	assert.Equal(t, 1, signIn.inits)
}

func TestOtherMessagesReachActiveScreen(t *testing.T) {
	root := &fakeScreen{name: "dashboard"}
	top := &fakeScreen{name: "profile"}
	r := New(root)
	r.Push(top)

	key := tea.KeyPressMsg{Code: tea.KeyEnter}
	r.Update(key)
	assert.Equal(t, key, top.last)
	assert.Nil(t, root.last)
}
