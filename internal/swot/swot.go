// Package swot turns a completed answer set into a SWOT profile. Scoring is
// a pure, total function: unknown or missing answers fall back to defaults.
package swot

import (
	"strings"
	"time"

	"github.com/abhisek/karmaloop/internal/store"
)

// BaseXP is the experience granted for completing a scan.
const BaseXP = 500

// Default picks used when the deciding answer is missing or unrecognized.
const (
	DefaultStrength    = "SYSTEM ARCHITECT"
	DefaultWeakness    = "CLARITY VOID"
	DefaultOpportunity = "STARTUP FRONTIER"
	DefaultThreat      = "AI OBSOLESCENCE"
)

// Answers is the read side of a scan answer set.
type Answers interface {
	Get(questionID string) (string, bool)
}

// strengthVoters are the choice questions whose tags elect the archetype,
// in tie-break order.
var strengthVoters = []string{"s1", "s3", "s5"}

var archetypes = map[string]string{
	"Analytical":  "SYSTEM ARCHITECT",
	"Leader":      "FACTION LEADER",
	"Creative":    "NEURAL ARTIST",
	"Operational": "OPERATIONS PRIME",
}

var blockers = map[string]string{
	"Clarity Gap":     "CLARITY VOID",
	"Confidence Gap":  "CONFIDENCE GLITCH",
	"Consistency Gap": "CONSISTENCY LAG",
	"Discipline Gap":  "TIME DILATION",
}

var paths = map[string]string{
	"Corporate": "CORPORATE NEXUS",
	"Startup":   "STARTUP FRONTIER",
	"Design":    "DESIGN SYNDICATE",
	"R&D":       "R&D LABS",
}

// Score derives the profile for a completed scan finished at now.
func Score(a Answers, now time.Time) store.ProfileRecord {
	return store.ProfileRecord{
		Strength:    Strength(a),
		Weakness:    Weakness(a),
		Opportunity: Opportunity(a),
		Threat:      Threat(a),
		XPEarned:    BaseXP,
		Timestamp:   now.UTC().Format(time.RFC3339Nano),
	}
}

// Strength elects the archetype by plurality over s1, s3 and s5. Ties go to
// the tag seen first. Missing answers do not vote.
func Strength(a Answers) string {
	counts := make(map[string]int, len(strengthVoters))
	var order []string
	for _, id := range strengthVoters {
		tag, ok := a.Get(id)
		if !ok {
			continue
		}
		if counts[tag] == 0 {
			order = append(order, tag)
		}
		counts[tag]++
	}

	winner, best := "", 0
	for _, tag := range order {
		if counts[tag] > best {
			winner, best = tag, counts[tag]
		}
	}
	if name, ok := archetypes[winner]; ok {
		return name
	}
	return DefaultStrength
}

// Weakness maps the w1 blocker.
func Weakness(a Answers) string {
	return lookup(a, "w1", blockers, DefaultWeakness)
}

// Opportunity maps the o1 path.
func Opportunity(a Answers) string {
	return lookup(a, "o1", paths, DefaultOpportunity)
}

// Threat upper-cases the t2 fear verbatim.
func Threat(a Answers) string {
	tag, ok := a.Get("t2")
	if !ok || tag == "" {
		return DefaultThreat
	}
	return strings.ToUpper(tag)
}

func lookup(a Answers, id string, table map[string]string, def string) string {
	tag, ok := a.Get(id)
	if !ok {
		return def
	}
	if v, ok := table[tag]; ok {
		return v
	}
	return def
}
