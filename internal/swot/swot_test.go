package swot

import (
	"testing"
	"time"
)

// answers is a map-backed Answers for tests.
type answers map[string]string

func (a answers) Get(id string) (string, bool) {
	v, ok := a[id]
	return v, ok
}

func TestStrength(t *testing.T) {
	tests := []struct {
		name string
		in   answers
		want string
	}{
		{"unanimous leader", answers{"s1": "Leader", "s3": "Leader", "s5": "Leader"}, "FACTION LEADER"},
		{"two of three creative", answers{"s1": "Analytical", "s3": "Creative", "s5": "Creative"}, "NEURAL ARTIST"},
		{"three-way tie goes to first seen", answers{"s1": "Creative", "s3": "Leader", "s5": "Analytical"}, "NEURAL ARTIST"},
		{"leader analytical leader", answers{"s1": "Leader", "s3": "Analytical", "s5": "Leader"}, "FACTION LEADER"},
		{"leader analytical creative", answers{"s1": "Leader", "s3": "Analytical", "s5": "Creative"}, "FACTION LEADER"},
		{"tie with missing vote", answers{"s3": "Operational", "s5": "Leader"}, "OPERATIONS PRIME"},
		{"missing s1 does not vote", answers{"s3": "Leader", "s5": "Creative"}, "FACTION LEADER"},
		{"single vote", answers{"s5": "Leader"}, "FACTION LEADER"},
		{"no votes", answers{}, DefaultStrength},
		{"unknown tag wins", answers{"s1": "Wizard", "s3": "Wizard", "s5": "Leader"}, DefaultStrength},
		{"scalars ignored", answers{"s2": "5", "s4": "1", "s1": "Operational"}, "OPERATIONS PRIME"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Strength(tt.in); got != tt.want {
				t.Errorf("Strength = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWeakness(t *testing.T) {
	tests := []struct {
		in   answers
		want string
	}{
		{answers{"w1": "Clarity Gap"}, "CLARITY VOID"},
		{answers{"w1": "Confidence Gap"}, "CONFIDENCE GLITCH"},
		{answers{"w1": "Consistency Gap"}, "CONSISTENCY LAG"},
		{answers{"w1": "Discipline Gap"}, "TIME DILATION"},
		{answers{"w1": "Other"}, DefaultWeakness},
		{answers{"w3": "Fear"}, DefaultWeakness},
	}
	for _, tt := range tests {
		if got := Weakness(tt.in); got != tt.want {
			t.Errorf("Weakness(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOpportunity(t *testing.T) {
	tests := []struct {
		in   answers
		want string
	}{
		{answers{"o1": "Corporate"}, "CORPORATE NEXUS"},
		{answers{"o1": "Startup"}, "STARTUP FRONTIER"},
		{answers{"o1": "Design"}, "DESIGN SYNDICATE"},
		{answers{"o1": "R&D"}, "R&D LABS"},
		{answers{}, DefaultOpportunity},
	}
	for _, tt := range tests {
		if got := Opportunity(tt.in); got != tt.want {
			t.Errorf("Opportunity(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestThreat(t *testing.T) {
	tests := []struct {
		in   answers
		want string
	}{
		{answers{"t2": "Burnout"}, "BURNOUT"},
		{answers{"t2": "Financial Instability"}, "FINANCIAL INSTABILITY"},
		{answers{"t2": "anything goes"}, "ANYTHING GOES"},
		{answers{"t2": ""}, DefaultThreat},
		{answers{}, DefaultThreat},
	}
	for _, tt := range tests {
		if got := Threat(tt.in); got != tt.want {
			t.Errorf("Threat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestScore(t *testing.T) {
	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.FixedZone("IST", 5*3600+1800))
	p := Score(answers{
		"s1": "Leader", "s3": "Leader", "s5": "Creative",
		"w1": "Discipline Gap",
		"o1": "R&D",
		"t2": "Burnout",
	}, now)

	if p.Strength != "FACTION LEADER" || p.Weakness != "TIME DILATION" ||
		p.Opportunity != "R&D LABS" || p.Threat != "BURNOUT" {
		t.Errorf("profile = %+v", p)
	}
	if p.XPEarned != BaseXP {
		t.Errorf("xp = %d, want %d", p.XPEarned, BaseXP)
	}
	if p.Timestamp != "2025-03-14T03:56:53Z" {
		t.Errorf("timestamp = %q", p.Timestamp)
	}
	if p.OracleVisited || p.InterviewUnlocked {
		t.Error("new profile must not carry milestone flags")
	}
}

func TestScoreEmptyIsTotal(t *testing.T) {
	p := Score(answers{}, time.Unix(0, 0))
	if p.Strength != DefaultStrength || p.Weakness != DefaultWeakness ||
		p.Opportunity != DefaultOpportunity || p.Threat != DefaultThreat {
		t.Errorf("defaults = %+v", p)
	}
}
