package progression

import "github.com/abhisek/karmaloop/internal/store"

// Style is the visual class of a badge.
type Style string

const (
	StylePioneer Style = "pioneer"
	StyleAnalyst Style = "analyst"
	StyleWalker  Style = "walker"
	StyleLocked  Style = "locked"
)

// Locked badges never reveal their identity.
const (
	LockedIcon  = "🔒"
	LockedTitle = "LOCKED"
)

// Gate decides whether a badge is unlocked. It is a closed set: ThresholdGate
// or MilestoneGate.
type Gate interface {
	gate()
}

// ThresholdGate unlocks once XP reaches the threshold.
type ThresholdGate struct {
	XP int
}

// MilestoneGate unlocks once the profile carries the milestone.
type MilestoneGate struct {
	Milestone Milestone
}

func (ThresholdGate) gate() {}
func (MilestoneGate) gate() {}

// Badge is a catalog entry.
type Badge struct {
	ID    string
	Title string
	Icon  string
	Style Style
	Gate  Gate
}

// BadgeState is a badge as the renderer should show it.
type BadgeState struct {
	ID       string
	Unlocked bool
	Icon     string
	Title    string
	Style    Style
}

// Badges returns the catalog in display order.
func Badges() []Badge {
	return []Badge{
		{ID: "pioneer", Title: "NEURAL PIONEER", Icon: "🧬", Style: StylePioneer, Gate: ThresholdGate{XP: 500}},
		{ID: "oracle", Title: "NEURAL LINK", Icon: "🤖", Style: StyleAnalyst, Gate: ThresholdGate{XP: 600}},
		{ID: "communicator", Title: "COMMUNICATOR", Icon: "🎙️", Style: StyleAnalyst, Gate: MilestoneGate{Milestone: MilestoneInterviewUnlocked}},
		{ID: "analyst", Title: "SECTOR ANALYST", Icon: "👁️", Style: StyleAnalyst, Gate: ThresholdGate{XP: 1000}},
		{ID: "walker", Title: "VOID WALKER", Icon: "🔒", Style: StyleWalker, Gate: ThresholdGate{XP: 2000}},
	}
}

// Unlocked evaluates the badge gate against p. A nil profile unlocks nothing.
func (b Badge) Unlocked(p *store.ProfileRecord) bool {
	if p == nil {
		return false
	}
	switch g := b.Gate.(type) {
	case ThresholdGate:
		return p.XPEarned >= g.XP
	case MilestoneGate:
		return g.Milestone.Reached(p)
	default:
		return false
	}
}

// State renders the badge for p.
func (b Badge) State(p *store.ProfileRecord) BadgeState {
	if !b.Unlocked(p) {
		return BadgeState{ID: b.ID, Icon: LockedIcon, Title: LockedTitle, Style: StyleLocked}
	}
	return BadgeState{ID: b.ID, Unlocked: true, Icon: b.Icon, Title: b.Title, Style: b.Style}
}
