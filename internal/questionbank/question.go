package questionbank

// Sector is one of the four SWOT dimensions a question feeds.
type Sector string

const (
	SectorStrength    Sector = "strength"
	SectorWeakness    Sector = "weakness"
	SectorOpportunity Sector = "opportunity"
	SectorThreat      Sector = "threat"
)

// AllSectors returns the sectors in scan order.
func AllSectors() []Sector {
	return []Sector{SectorStrength, SectorWeakness, SectorOpportunity, SectorThreat}
}

// SectorDisplayName returns the uppercase heading used on the dashboard.
func SectorDisplayName(s Sector) string {
	switch s {
	case SectorStrength:
		return "STRENGTH"
	case SectorWeakness:
		return "WEAKNESS"
	case SectorOpportunity:
		return "OPPORTUNITY"
	case SectorThreat:
		return "THREAT"
	default:
		return string(s)
	}
}

// Kind distinguishes tagged multiple choice from numeric scale questions.
type Kind int

const (
	KindChoice Kind = iota
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindChoice:
		return "choice"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// ScalarDisplayDefault is the value a scalar control starts at. It is the
// literal 3 regardless of the question's range.
const ScalarDisplayDefault = 3

// Option is one labelled answer of a choice question. Tag is the value
// recorded in the answer set.
type Option struct {
	Label string
	Tag   string
}

// Question is a single immutable catalog entry.
type Question struct {
	ID     string
	Prompt string
	Kind   Kind
	Sector Sector

	// Options is set for KindChoice.
	Options []Option

	// Min and Max are set for KindScalar.
	Min int
	Max int
}

// HasTag reports whether tag is one of the question's option tags.
func (q Question) HasTag(tag string) bool {
	for _, o := range q.Options {
		if o.Tag == tag {
			return true
		}
	}
	return false
}

// SectorOf derives the sector from a question id prefix (s, w, o, t).
func SectorOf(id string) (Sector, bool) {
	if id == "" {
		return "", false
	}
	switch id[0] {
	case 's':
		return SectorStrength, true
	case 'w':
		return SectorWeakness, true
	case 'o':
		return SectorOpportunity, true
	case 't':
		return SectorThreat, true
	default:
		return "", false
	}
}
