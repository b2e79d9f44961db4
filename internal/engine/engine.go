// Package engine is the session context that ties the question bank, scan
// session, scorer, progression ledger and identity services together. It is
// the single entry point used by both the TUI and the CLI.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/karmaloop/internal/identity"
	"github.com/abhisek/karmaloop/internal/llm"
	"github.com/abhisek/karmaloop/internal/logging"
	"github.com/abhisek/karmaloop/internal/oracle"
	"github.com/abhisek/karmaloop/internal/progression"
	"github.com/abhisek/karmaloop/internal/questionbank"
	"github.com/abhisek/karmaloop/internal/scan"
	"github.com/abhisek/karmaloop/internal/store"
	"github.com/abhisek/karmaloop/internal/swot"
	"golang.org/x/sync/errgroup"
)

// Session is the logged-in user. A nil *Session means guest.
type Session struct {
	User store.UserRecord
}

// Deps wires the engine to storage and optional services.
type Deps struct {
	Directory store.DirectoryRepo
	Session   store.SessionRepo
	Results   store.ResultRepo

	// Provider backs the advisory chat; nil runs it in diagnostic mode.
	Provider llm.Provider
	Oracle   oracle.Config

	Log *logging.Logger
	// Now stamps finished scans. Defaults to time.Now.
	Now func() time.Time
}

// Engine is not safe for concurrent use. The TUI serializes calls through
// its update loop and the CLI makes one call per process.
type Engine struct {
	results     store.ResultRepo
	identity    *identity.Service
	progression *progression.Service
	advisor     *oracle.Advisor
	scan        *scan.Session
	session     *Session
	// unsaved is a scored profile whose save failed.
	unsaved *store.ProfileRecord
	now     func() time.Time
	log     *logging.Logger
}

// New creates an Engine in guest state. Call Boot to restore a session.
func New(d Deps) *Engine {
	log := d.Log
	if log == nil {
		log = logging.Nop()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	id := identity.NewService(d.Directory, d.Session, d.Results, log)
	id.Now = now
	return &Engine{
		results:     d.Results,
		identity:    id,
		progression: progression.NewService(d.Results, log),
		advisor:     oracle.New(d.Provider, d.Oracle, log),
		scan:        scan.New(),
		now:         now,
		log:         log.With("component", "engine"),
	}
}

// Boot restores the session from the stored pointer. It returns nil for a
// guest.
func (e *Engine) Boot(ctx context.Context) (*Session, error) {
	u, err := e.identity.Current(ctx)
	if err != nil {
		return nil, fmt.Errorf("boot: %w", err)
	}
	e.setSession(u)
	return e.session, nil
}

// Session returns the current session, nil for a guest.
func (e *Engine) Session() *Session {
	return e.session
}

// setSession installs u as the current user. Switching to a different
// user, or to guest, ends any scan the previous user had running.
func (e *Engine) setSession(u *store.UserRecord) {
	if !sameUser(e.session, u) {
		e.scan.Abandon()
		e.unsaved = nil
	}
	if u == nil {
		e.session = nil
		return
	}
	e.session = &Session{User: *u}
}

func sameUser(s *Session, u *store.UserRecord) bool {
	if s == nil || u == nil {
		return s == nil && u == nil
	}
	return s.User.Identity.Email == u.Identity.Email
}

// Identity

// VerifyEmail checks that email is usable and returns a fresh access key.
func (e *Engine) VerifyEmail(ctx context.Context, email string) (string, error) {
	return e.identity.VerifyEmail(ctx, email)
}

// RegisterUser stores rec and logs the user in.
func (e *Engine) RegisterUser(ctx context.Context, rec store.UserRecord) (*Session, error) {
	u, err := e.identity.Register(ctx, rec)
	if err != nil {
		return nil, err
	}
	e.setSession(u)
	return e.session, nil
}

// Login authenticates by email and access key.
func (e *Engine) Login(ctx context.Context, email, key string) (*Session, error) {
	u, err := e.identity.Login(ctx, email, key)
	if err != nil {
		return nil, err
	}
	e.setSession(u)
	return e.session, nil
}

// Logout clears the session pointer and the latest result, and drops any
// in-flight scan.
func (e *Engine) Logout(ctx context.Context) error {
	if err := e.identity.Logout(ctx); err != nil {
		return err
	}
	e.AbandonScan()
	e.setSession(nil)
	return nil
}

// UpdateProfile edits the current user's profile.
func (e *Engine) UpdateProfile(ctx context.Context, edit identity.ProfileEdit) (*Session, error) {
	u, err := e.identity.UpdateProfile(ctx, edit)
	if err != nil {
		return nil, err
	}
	e.setSession(u)
	return e.session, nil
}

// Scan

// StartScan begins a fresh scan and returns the first question.
func (e *Engine) StartScan() questionbank.Question {
	e.unsaved = nil
	e.scan.Start()
	e.log.Debug("scan started", "scan_id", e.scan.ID())
	q, _ := e.scan.Current()
	return q
}

// AbandonScan discards the in-flight scan.
func (e *Engine) AbandonScan() {
	if e.scan.State() == scan.StateInProgress {
		e.log.Debug("scan abandoned", "scan_id", e.scan.ID(), "answered", e.scan.Index())
	}
	e.scan.Abandon()
	e.unsaved = nil
}

// ScanState returns the scan session state.
func (e *Engine) ScanState() scan.State {
	return e.scan.State()
}

// CurrentQuestion returns the question awaiting an answer.
func (e *Engine) CurrentQuestion() (questionbank.Question, error) {
	return e.scan.Current()
}

// Progress returns answered / total for the current scan.
func (e *Engine) Progress() float64 {
	return e.scan.Progress()
}

// Step is the result of submitting one answer.
type Step struct {
	// Next is the following question, nil once the scan completed.
	Next *questionbank.Question
	// Profile is the scored and saved profile, set only on completion.
	Profile *store.ProfileRecord
}

// Done reports whether the scan completed with this step.
func (s Step) Done() bool {
	return s.Profile != nil
}

// SubmitAnswer records value for questionID. On the last answer the scan
// is scored and the result saved, replacing any previous one. If that save
// fails the scored profile is kept, and submitting the last question again
// retries the save.
func (e *Engine) SubmitAnswer(ctx context.Context, questionID, value string) (Step, error) {
	if e.unsaved != nil && e.scan.State() == scan.StateCompleted {
		last, err := questionbank.At(questionbank.Len() - 1)
		if err == nil && last.ID == questionID {
			return e.saveResult(ctx)
		}
	}

	answers, err := e.scan.SubmitFor(questionID, value)
	if err != nil {
		return Step{}, err
	}
	if answers == nil {
		q, err := e.scan.Current()
		if err != nil {
			return Step{}, err
		}
		return Step{Next: &q}, nil
	}

	p := swot.Score(answers, e.now())
	e.unsaved = &p
	return e.saveResult(ctx)
}

// HasUnsavedResult reports whether a completed scan is waiting for a
// successful save.
func (e *Engine) HasUnsavedResult() bool {
	return e.unsaved != nil
}

func (e *Engine) saveResult(ctx context.Context) (Step, error) {
	p := *e.unsaved
	if err := e.results.Save(ctx, p); err != nil {
		e.log.Warn("scan result not saved", "scan_id", e.scan.ID(), "error", err)
		return Step{}, fmt.Errorf("save result: %w", err)
	}
	e.unsaved = nil
	e.log.Info("scan completed", "scan_id", e.scan.ID(), "strength", p.Strength, "xp", p.XPEarned)
	return Step{Profile: &p}, nil
}

// Progression

// VisitAdvisorySurface grants the advisory bonus once per profile.
func (e *Engine) VisitAdvisorySurface(ctx context.Context) (progression.Outcome, error) {
	return e.progression.Award(ctx, progression.AdvisoryBonus)
}

// VisitInterviewSurface grants the interview bonus once per profile.
func (e *Engine) VisitInterviewSurface(ctx context.Context) (progression.Outcome, error) {
	return e.progression.Award(ctx, progression.InterviewBonus)
}

// LatestProfile returns the stored profile, nil if none.
func (e *Engine) LatestProfile(ctx context.Context) (*store.ProfileRecord, error) {
	p, err := e.results.Latest(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

// Ledger returns the progression ledger for the stored profile.
func (e *Engine) Ledger(ctx context.Context) (progression.Ledger, error) {
	return e.progression.Current(ctx)
}

// Oracle

// Greeting opens the advisory chat for the stored profile.
func (e *Engine) Greeting(ctx context.Context) (string, error) {
	p, err := e.LatestProfile(ctx)
	if err != nil {
		return "", err
	}
	return oracle.Greeting(p), nil
}

// Ask sends text to the advisor with the prior transcript.
func (e *Engine) Ask(ctx context.Context, history []llm.Message, text string) (oracle.Reply, error) {
	p, err := e.LatestProfile(ctx)
	if err != nil {
		return oracle.Reply{}, err
	}
	return e.advisor.Reply(ctx, p, history, text)
}

// OracleOnline reports whether the advisor is backed by a model.
func (e *Engine) OracleOnline() bool {
	return e.advisor.Online()
}

// Dashboard is everything the dashboard renders.
type Dashboard struct {
	User    *store.UserRecord
	Profile *store.ProfileRecord
	Ledger  progression.Ledger
}

// Dashboard loads the current user and profile concurrently.
func (e *Engine) Dashboard(ctx context.Context) (Dashboard, error) {
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := e.identity.Current(gctx)
		if err != nil {
			return err
		}
		d.User = u
		return nil
	})
	g.Go(func() error {
		p, err := e.LatestProfile(gctx)
		if err != nil {
			return err
		}
		d.Profile = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return Dashboard{}, fmt.Errorf("load dashboard: %w", err)
	}
	d.Ledger = progression.Derive(d.Profile)
	return d, nil
}
