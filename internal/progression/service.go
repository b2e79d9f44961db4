package progression

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/karmaloop/internal/logging"
	"github.com/abhisek/karmaloop/internal/store"
)

var (
	// ErrNegativeBonus is returned for a bonus that would lower XP.
	ErrNegativeBonus = errors.New("bonus XP must not be negative")

	// ErrUnknownMilestone is returned for a bonus whose milestone has no
	// profile flag.
	ErrUnknownMilestone = errors.New("unknown milestone")
)

// Outcome reports what Award did.
type Outcome struct {
	// Applied is true when the bonus was granted by this call.
	Applied bool
	// Profile is the stored profile after the call, nil if none exists.
	Profile *store.ProfileRecord
	Bonus   Bonus
}

// Ledger derives the ledger for the outcome's profile.
func (o Outcome) Ledger() Ledger {
	return Derive(o.Profile)
}

// Service applies milestone bonuses to the persisted profile.
type Service struct {
	results store.ResultRepo
	log     *logging.Logger
}

// NewService creates a Service over results.
func NewService(results store.ResultRepo, log *logging.Logger) *Service {
	if log == nil {
		log = logging.Nop()
	}
	return &Service{results: results, log: log}
}

// Award grants b at most once per profile record. Without a profile, or
// when the milestone is already reached, it is a no-op.
func (s *Service) Award(ctx context.Context, b Bonus) (Outcome, error) {
	if b.XP < 0 {
		return Outcome{}, fmt.Errorf("%w: %s %d", ErrNegativeBonus, b.Milestone, b.XP)
	}

	p, applied, err := s.results.Update(ctx, func(p *store.ProfileRecord) (bool, error) {
		if p == nil || b.Milestone.Reached(p) {
			return false, nil
		}
		if !b.Milestone.mark(p) {
			return false, fmt.Errorf("%w: %q", ErrUnknownMilestone, b.Milestone)
		}
		p.XPEarned += b.XP
		return true, nil
	})
	if err != nil {
		return Outcome{}, fmt.Errorf("award %s: %w", b.Milestone, err)
	}

	if !applied {
		s.log.Debug("bonus not applied", "milestone", b.Milestone, "has_profile", p != nil)
		return Outcome{Profile: p, Bonus: b}, nil
	}

	s.log.Info("bonus applied", "milestone", b.Milestone, "xp", b.XP, "total_xp", p.XPEarned)
	return Outcome{Applied: true, Profile: p, Bonus: b}, nil
}

// Current returns the ledger for the stored profile.
func (s *Service) Current(ctx context.Context) (Ledger, error) {
	p, err := s.results.Latest(ctx)
	if err != nil {
		return Ledger{}, fmt.Errorf("load profile: %w", err)
	}
	return Derive(p), nil
}
