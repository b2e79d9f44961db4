package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/karmaloop/internal/identity"
	"github.com/abhisek/karmaloop/internal/llm"
	"github.com/abhisek/karmaloop/internal/oracle"
	"github.com/abhisek/karmaloop/internal/progression"
	"github.com/abhisek/karmaloop/internal/questionbank"
	"github.com/abhisek/karmaloop/internal/scan"
	"github.com/abhisek/karmaloop/internal/store"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T, provider llm.Provider) (*Engine, *store.Store) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:engine_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	e := New(Deps{
		Directory: st.DirectoryRepo(),
		Session:   st.SessionRepo(),
		Results:   st.ResultRepo(),
		Provider:  provider,
		Oracle:    oracle.DefaultConfig(),
		Now:       func() time.Time { return fixedNow },
	})
	return e, st
}

// answerFor picks the first option for choice questions and the midpoint
// for scalars.
func answerFor(q questionbank.Question) string {
	if q.Kind == questionbank.KindChoice {
		return q.Options[0].Tag
	}
	return strconv.Itoa(questionbank.ScalarDisplayDefault)
}

func completeScan(t *testing.T, e *Engine) *store.ProfileRecord {
	t.Helper()
	ctx := context.Background()
	q := e.StartScan()
	for {
		step, err := e.SubmitAnswer(ctx, q.ID, answerFor(q))
		require.NoError(t, err)
		if step.Done() {
			return step.Profile
		}
		require.NotNil(t, step.Next)
		q = *step.Next
	}
}

func TestBootGuest(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	s, err := e.Boot(context.Background())
	require.NoError(t, err)
	assert.Nil(t, s)
	assert.Nil(t, e.Session())
}

func TestRegisterLoginLogout(t *testing.T) {
	e, st := newTestEngine(t, nil)
	ctx := context.Background()

	key, err := e.VerifyEmail(ctx, "neo@zion.io")
	require.NoError(t, err)

	s, err := e.RegisterUser(ctx, store.UserRecord{
		Identity: store.Identity{Name: "Neo", Email: "neo@zion.io", AccessKey: key},
		Academic: store.Academic{Institution: "Zion Tech", Qualification: "B.Tech", Field: "CS"},
		Career:   store.Career{Interests: []string{"AI"}, Clarity: identity.DefaultClarity},
	})
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "Neo", s.User.Identity.Name)

	// A fresh engine over the same store restores the session.
	e2 := New(Deps{Directory: st.DirectoryRepo(), Session: st.SessionRepo(), Results: st.ResultRepo()})
	restored, err := e2.Boot(ctx)
	require.NoError(t, err)
	require.NotNil(t, restored)
	assert.Equal(t, "neo@zion.io", restored.User.Identity.Email)

	completeScan(t, e)
	require.NoError(t, e.Logout(ctx))
	assert.Nil(t, e.Session())
	p, err := e.LatestProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p, "logout clears the result")

	_, err = e.Login(ctx, "neo@zion.io", "KL-2025-NOPE")
	assert.ErrorIs(t, err, identity.ErrNotFound)

	s, err = e.Login(ctx, "neo@zion.io", key)
	require.NoError(t, err)
	assert.Equal(t, key, s.User.Identity.AccessKey)
}

func TestScanCompletesAndSaves(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	ctx := context.Background()

	assert.Equal(t, scan.StateIdle, e.ScanState())
	p := completeScan(t, e)

	assert.Equal(t, scan.StateCompleted, e.ScanState())
	assert.Equal(t, 1.0, e.Progress())
	assert.Equal(t, 500, p.XPEarned)
	assert.Equal(t, fixedNow.Format(time.RFC3339Nano), p.Timestamp)

	stored, err := e.LatestProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, *p, *stored)
}

// flakyResults fails Save while down is set.
type flakyResults struct {
	store.ResultRepo
	down bool
}

func (r *flakyResults) Save(ctx context.Context, p store.ProfileRecord) error {
	if r.down {
		return &store.StorageError{Op: "put", Key: store.KeyResult, Err: errors.New("database is closed")}
	}
	return r.ResultRepo.Save(ctx, p)
}

func TestFailedSaveKeepsFinishedScan(t *testing.T) {
	_, st := newTestEngine(t, nil)
	ctx := context.Background()
	results := &flakyResults{ResultRepo: st.ResultRepo()}
	e := New(Deps{
		Directory: st.DirectoryRepo(),
		Session:   st.SessionRepo(),
		Results:   results,
		Now:       func() time.Time { return fixedNow },
	})

	q := e.StartScan()
	for i := 0; i < questionbank.Len()-1; i++ {
		step, err := e.SubmitAnswer(ctx, q.ID, answerFor(q))
		require.NoError(t, err)
		q = *step.Next
	}

	results.down = true
	_, err := e.SubmitAnswer(ctx, q.ID, answerFor(q))
	require.ErrorIs(t, err, store.ErrUnavailable)
	assert.True(t, e.HasUnsavedResult())

	_, err = e.SubmitAnswer(ctx, q.ID, answerFor(q))
	require.ErrorIs(t, err, store.ErrUnavailable, "still down, still retryable")

	results.down = false
	step, err := e.SubmitAnswer(ctx, q.ID, answerFor(q))
	require.NoError(t, err)
	require.True(t, step.Done())
	assert.False(t, e.HasUnsavedResult())
	assert.Equal(t, questionbank.Len(), e.scan.Answers().Len())

	stored, err := e.LatestProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, *step.Profile, *stored)

	_, err = e.SubmitAnswer(ctx, q.ID, answerFor(q))
	assert.ErrorIs(t, err, scan.ErrNotInProgress, "saved scans are not resubmitted")
}

func TestUserSwitchAbandonsScan(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	ctx := context.Background()

	register := func(name, email string) string {
		key, err := e.VerifyEmail(ctx, email)
		require.NoError(t, err)
		_, err = e.RegisterUser(ctx, store.UserRecord{
			Identity: store.Identity{Name: name, Email: email, AccessKey: key},
			Academic: store.Academic{Institution: "Zion Tech", Qualification: "B.Tech", Field: "CS"},
			Career:   store.Career{Interests: []string{"AI"}, Clarity: identity.DefaultClarity},
		})
		require.NoError(t, err)
		return key
	}

	neoKey := register("Neo", "neo@zion.io")
	e.StartScan()
	register("Trinity", "trinity@zion.io")
	assert.Equal(t, scan.StateIdle, e.ScanState(), "registering another user ends the scan")

	e.StartScan()
	_, err := e.Login(ctx, "neo@zion.io", neoKey)
	require.NoError(t, err)
	assert.Equal(t, scan.StateIdle, e.ScanState(), "login as another user ends the scan")

	e.StartScan()
	_, err = e.UpdateProfile(ctx, identity.ProfileEdit{Name: "Thomas Anderson", Field: "CS"})
	require.NoError(t, err)
	assert.Equal(t, scan.StateInProgress, e.ScanState(), "same user keeps the scan")

	require.NoError(t, e.Logout(ctx))
	e.StartScan()
	require.NoError(t, e.Logout(ctx))
	assert.Equal(t, scan.StateIdle, e.ScanState(), "logout ends a guest scan too")
}

func TestRescanOverwritesAndResetsMilestones(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	ctx := context.Background()

	completeScan(t, e)
	_, err := e.VisitAdvisorySurface(ctx)
	require.NoError(t, err)

	p := completeScan(t, e)
	assert.Equal(t, 500, p.XPEarned)
	assert.False(t, p.OracleVisited)
}

func TestSubmitAnswerOutOfOrder(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	ctx := context.Background()

	_, err := e.SubmitAnswer(ctx, "s1", "Analytical")
	assert.ErrorIs(t, err, scan.ErrNotInProgress)

	q := e.StartScan()
	_, err = e.SubmitAnswer(ctx, "w1", "x")
	assert.ErrorIs(t, err, scan.ErrOutOfOrder)

	step, err := e.SubmitAnswer(ctx, q.ID, answerFor(q))
	require.NoError(t, err)
	assert.False(t, step.Done())
	assert.InDelta(t, 1.0/float64(questionbank.Len()), e.Progress(), 1e-9)

	e.AbandonScan()
	assert.Equal(t, scan.StateIdle, e.ScanState())
	_, err = e.CurrentQuestion()
	assert.ErrorIs(t, err, scan.ErrNotInProgress)
}

func TestBonusesAndLedger(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	ctx := context.Background()

	// No profile: bonuses are no-ops.
	out, err := e.VisitAdvisorySurface(ctx)
	require.NoError(t, err)
	assert.False(t, out.Applied)

	completeScan(t, e)

	out, err = e.VisitAdvisorySurface(ctx)
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, 600, out.Profile.XPEarned)

	out, err = e.VisitAdvisorySurface(ctx)
	require.NoError(t, err)
	assert.False(t, out.Applied, "advisory bonus is granted once")

	out, err = e.VisitInterviewSurface(ctx)
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, progression.InterviewBonus.Announcement, out.Bonus.Announcement)

	l, err := e.Ledger(ctx)
	require.NoError(t, err)
	assert.Equal(t, 800, l.XP)
	assert.Equal(t, 3, l.Level)
	assert.True(t, l.OracleAccess)
}

func TestDashboard(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	ctx := context.Background()

	d, err := e.Dashboard(ctx)
	require.NoError(t, err)
	assert.Nil(t, d.User)
	assert.Nil(t, d.Profile)
	assert.Equal(t, 0, d.Ledger.XP)

	completeScan(t, e)
	d, err = e.Dashboard(ctx)
	require.NoError(t, err)
	require.NotNil(t, d.Profile)
	assert.Equal(t, 500, d.Ledger.XP)
	assert.Equal(t, 1, d.Ledger.Level)
}

func TestOracleThroughEngine(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"reply":"Ship it."}`)})
	e, _ := newTestEngine(t, mock)
	ctx := context.Background()
	assert.True(t, e.OracleOnline())

	g, err := e.Greeting(ctx)
	require.NoError(t, err)
	assert.Contains(t, g, "Greetings, User.")

	p := completeScan(t, e)
	g, err = e.Greeting(ctx)
	require.NoError(t, err)
	assert.Contains(t, g, p.Strength)

	r, err := e.Ask(ctx, nil, "what now?")
	require.NoError(t, err)
	assert.Equal(t, "Ship it.", r.Text)
	assert.Contains(t, mock.Calls[0].System, p.Strength)
}
