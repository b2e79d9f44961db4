package auth

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/karmaloop/internal/router"
	"github.com/abhisek/karmaloop/internal/screens/screentest"
)

func enter(t *testing.T, a *AuthScreen, value string) tea.Cmd {
	t.Helper()
	a.input.SetValue(value)
	_, cmd := a.Update(screentest.Key(tea.KeyEnter))
	return cmd
}

func TestRegisterFlow(t *testing.T) {
	deps := screentest.Deps(t, nil)
	a := New(deps)

	a.Update(screentest.Key(tea.KeyTab))
	require.Equal(t, modeRegister, a.mode)

	enter(t, a, "Neo")
	enter(t, a, "neo@zion.io")
	require.True(t, a.showKey, "verified email should reveal the access key")
	require.Regexp(t, `^KL-2025-[A-Z0-9]{4}$`, a.issuedKey)

	a.Update(screentest.Key(tea.KeyEnter))
	require.False(t, a.showKey)
	assert.Equal(t, emailStep+1, a.index)

	enter(t, a, "Zion Tech")
	enter(t, a, "B.Tech")
	enter(t, a, "CS")
	enter(t, a, "")
	cmd := enter(t, a, "AI, Security")

	msg, ok := screentest.Run(cmd).(router.ResetScreenMsg)
	require.True(t, ok, "registration should reset to the dashboard")
	assert.Equal(t, "dashboard", msg.Screen.Title())

	s := deps.Engine.Session()
	require.NotNil(t, s)
	assert.Equal(t, []string{"AI", "Security"}, s.User.Career.Interests)
	assert.Equal(t, a.issuedKey, s.User.Identity.AccessKey)
}

func TestRegisterRejectsBadEmail(t *testing.T) {
	a := New(screentest.Deps(t, nil))
	a.Update(screentest.Key(tea.KeyTab))

	enter(t, a, "Neo")
	enter(t, a, "neo@zion")
	assert.False(t, a.showKey)
	assert.Equal(t, emailStep, a.index)
	assert.NotEmpty(t, a.input.Err)
}

func TestRequiredFieldBlocksAdvance(t *testing.T) {
	a := New(screentest.Deps(t, nil))
	enter(t, a, "   ")
	assert.Equal(t, 0, a.index)
	assert.Equal(t, "required", a.input.Err)
}

func TestLoginDeniedThenAccepted(t *testing.T) {
	deps := screentest.Deps(t, nil)
	ctx := context.Background()

	reg := New(deps)
	reg.Update(screentest.Key(tea.KeyTab))
	enter(t, reg, "Trinity")
	enter(t, reg, "trinity@zion.io")
	reg.Update(screentest.Key(tea.KeyEnter))
	for reg.index < len(reg.steps)-1 {
		enter(t, reg, "x-value")
	}
	require.NotNil(t, screentest.Run(enter(t, reg, "AI")))
	require.NoError(t, deps.Engine.Logout(ctx))

	login := New(deps)
	enter(t, login, "trinity@zion.io")
	cmd := enter(t, login, "KL-2025-!!!!")
	assert.Nil(t, cmd)
	assert.Equal(t, "ACCESS DENIED: INVALID EMAIL OR KEY", login.errMsg)

	cmd = enter(t, login, reg.issuedKey)
	_, ok := screentest.Run(cmd).(router.ResetScreenMsg)
	assert.True(t, ok)
	require.NotNil(t, deps.Engine.Session())
	assert.Equal(t, "Trinity", deps.Engine.Session().User.Identity.Name)
}
