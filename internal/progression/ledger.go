// Package progression derives XP, level and badges from the stored profile
// and applies one-time milestone bonuses.
package progression

import "github.com/abhisek/karmaloop/internal/store"

// OracleAccessXP is the XP at which the advisory chat is offered.
const OracleAccessXP = 500

// Ledger is the derived progression view. It is never persisted.
type Ledger struct {
	XP           int
	Level        int
	Badges       []BadgeState
	OracleAccess bool
}

// UnlockedCount returns the number of unlocked badges.
func (l Ledger) UnlockedCount() int {
	n := 0
	for _, b := range l.Badges {
		if b.Unlocked {
			n++
		}
	}
	return n
}

// Level returns 3 with the interview milestone, 2 with the advisory
// milestone and 1 otherwise. XP does not influence the level.
func Level(p *store.ProfileRecord) int {
	switch {
	case MilestoneInterviewUnlocked.Reached(p):
		return 3
	case MilestoneOracleVisited.Reached(p):
		return 2
	default:
		return 1
	}
}

// Derive computes the ledger for p. A nil profile yields XP 0, level 1 and
// every badge locked.
func Derive(p *store.ProfileRecord) Ledger {
	catalog := Badges()
	l := Ledger{
		Level:  Level(p),
		Badges: make([]BadgeState, len(catalog)),
	}
	if p != nil {
		l.XP = p.XPEarned
	}
	l.OracleAccess = l.XP >= OracleAccessXP
	for i, b := range catalog {
		l.Badges[i] = b.State(p)
	}
	return l
}

// NextThreshold returns the lowest XP badge threshold above xp, or 0 once
// every threshold badge is unlocked.
func NextThreshold(xp int) int {
	next := 0
	for _, b := range Badges() {
		g, ok := b.Gate.(ThresholdGate)
		if !ok || g.XP <= xp {
			continue
		}
		if next == 0 || g.XP < next {
			next = g.XP
		}
	}
	return next
}
