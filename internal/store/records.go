package store

// Identity is the login-relevant part of a user record.
type Identity struct {
	Name      string `json:"name" validate:"required,min=2"`
	Email     string `json:"email" validate:"required,email"`
	AccessKey string `json:"key" validate:"required"`
}

// Academic holds the registration wizard's education step.
type Academic struct {
	Institution   string `json:"institution" validate:"required"`
	Qualification string `json:"qualification" validate:"required"`
	Field         string `json:"field" validate:"required"`
	Year          string `json:"year,omitempty"`
}

// Career holds interests and the self-reported clarity slider (0-100).
type Career struct {
	Interests []string `json:"interests"`
	Clarity   int      `json:"clarity" validate:"min=0,max=100"`
}

// UserRecord is one directory entry. Email is unique across the directory.
type UserRecord struct {
	Identity  Identity `json:"identity"`
	Academic  Academic `json:"academic"`
	Career    Career   `json:"career"`
	Timestamp string   `json:"timestamp"`
}

// ProfileRecord is the latest SWOT result together with the progression
// state layered on top of it. Flags are omitted from JSON until set.
type ProfileRecord struct {
	Strength    string `json:"strength"`
	Weakness    string `json:"weakness"`
	Opportunity string `json:"opportunity"`
	Threat      string `json:"threat"`
	XPEarned    int    `json:"xp_earned"`
	Timestamp   string `json:"timestamp"`

	OracleVisited     bool `json:"oracle_visited,omitempty"`
	InterviewUnlocked bool `json:"interview_unlocked,omitempty"`
}
