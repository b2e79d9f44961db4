package progression

import "github.com/abhisek/karmaloop/internal/store"

// Milestone is a one-time achievement flag stored on the profile record.
type Milestone string

const (
	MilestoneOracleVisited     Milestone = "oracle_visited"
	MilestoneInterviewUnlocked Milestone = "interview_unlocked"
)

// Reached reports whether p carries the milestone flag.
func (m Milestone) Reached(p *store.ProfileRecord) bool {
	if p == nil {
		return false
	}
	switch m {
	case MilestoneOracleVisited:
		return p.OracleVisited
	case MilestoneInterviewUnlocked:
		return p.InterviewUnlocked
	default:
		return false
	}
}

// mark sets the flag on p. It returns false for unknown milestones.
func (m Milestone) mark(p *store.ProfileRecord) bool {
	switch m {
	case MilestoneOracleVisited:
		p.OracleVisited = true
	case MilestoneInterviewUnlocked:
		p.InterviewUnlocked = true
	default:
		return false
	}
	return true
}

// Bonus is a one-time XP grant tied to a milestone.
type Bonus struct {
	Milestone Milestone
	XP        int
	// Announcement is shown to the user when the bonus is applied.
	Announcement string
}

var (
	// AdvisoryBonus is granted on the first visit to the advisory chat.
	AdvisoryBonus = Bonus{
		Milestone:    MilestoneOracleVisited,
		XP:           100,
		Announcement: "SYSTEM ALERT: Neural Link Established. +100 XP Awarded. New Badge Unlocked.",
	}

	// InterviewBonus is granted on the first visit to the interview simulator.
	InterviewBonus = Bonus{
		Milestone:    MilestoneInterviewUnlocked,
		XP:           200,
		Announcement: "NEW BADGE UNLOCKED: COMMUNICATOR (+200 XP)",
	}
)
