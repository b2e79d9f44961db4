// Package screentest builds screen dependencies over an in-memory store
// for screen tests.
package screentest

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/karmaloop/internal/engine"
	"github.com/abhisek/karmaloop/internal/llm"
	"github.com/abhisek/karmaloop/internal/oracle"
	"github.com/abhisek/karmaloop/internal/questionbank"
	"github.com/abhisek/karmaloop/internal/screen"
	"github.com/abhisek/karmaloop/internal/store"
)

// Stub is a named placeholder screen returned by the navigation factories.
type Stub struct{ Name string }

func (s *Stub) Init() tea.Cmd                          { return nil }
func (s *Stub) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *Stub) View(int, int) string                   { return s.Name }
func (s *Stub) Title() string                          { return s.Name }

// Deps returns deps over a fresh in-memory store. provider may be nil.
func Deps(t *testing.T, provider llm.Provider) *screen.Deps {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:screens_%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	eng := engine.New(engine.Deps{
		Directory: st.DirectoryRepo(),
		Session:   st.SessionRepo(),
		Results:   st.ResultRepo(),
		Provider:  provider,
		Oracle:    oracle.DefaultConfig(),
		Now:       func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) },
	})
	return &screen.Deps{
		Engine:        eng,
		ScanPacing:    0,
		OracleTimeout: time.Second,
		Dashboard:     func() screen.Screen { return &Stub{Name: "dashboard"} },
		SignIn:        func() screen.Screen { return &Stub{Name: "signin"} },
	}
}

// CompleteScan runs a full scan through the engine, picking the first
// option or the scalar default for every question.
func CompleteScan(t *testing.T, eng *engine.Engine) *store.ProfileRecord {
	t.Helper()
	q := eng.StartScan()
	for {
		val := strconv.Itoa(questionbank.ScalarDisplayDefault)
		if q.Kind == questionbank.KindChoice {
			val = q.Options[0].Tag
		}
		step, err := eng.SubmitAnswer(context.Background(), q.ID, val)
		if err != nil {
			t.Fatalf("submit %s: %v", q.ID, err)
		}
		if step.Done() {
			return step.Profile
		}
		q = *step.Next
	}
}

// Key builds a key press for a special key such as tea.KeyEnter.
func Key(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Text builds a printable key press.
func Text(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: []rune(s)[0], Text: s}
}

// Run executes cmd and returns its message, nil for a nil cmd. Batches
// are not expanded.
func Run(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}

// Register creates and logs in a user named name.
func Register(t *testing.T, eng *engine.Engine, name, email string) store.UserRecord {
	t.Helper()
	ctx := context.Background()
	key, err := eng.VerifyEmail(ctx, email)
	if err != nil {
		t.Fatalf("verify %s: %v", email, err)
	}
	sess, err := eng.RegisterUser(ctx, store.UserRecord{
		Identity: store.Identity{Name: name, Email: email, AccessKey: key},
		Academic: store.Academic{Institution: "Zion Tech", Qualification: "B.Tech", Field: "CS"},
		Career:   store.Career{Interests: []string{"AI"}, Clarity: 50},
	})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return sess.User
}
