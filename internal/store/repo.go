package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match when set
}

// DirectoryRepo manages the registered-user directory.
type DirectoryRepo interface {
	// All returns every record in registration order.
	All(ctx context.Context) ([]UserRecord, error)

	// Find returns the record with the given email, or nil if none.
	Find(ctx context.Context, email string) (*UserRecord, error)

	// Put inserts rec or replaces the record with the same email.
	Put(ctx context.Context, rec UserRecord) error
}

// SessionRepo manages the active-session pointer. Absence means guest.
type SessionRepo interface {
	Current(ctx context.Context) (*UserRecord, error)
	Set(ctx context.Context, rec UserRecord) error
	Clear(ctx context.Context) error
}

// ResultRepo manages the single latest-profile record.
type ResultRepo interface {
	// Latest returns the stored profile, or nil if none exists.
	Latest(ctx context.Context) (*ProfileRecord, error)

	// Save overwrites the stored profile.
	Save(ctx context.Context, p ProfileRecord) error

	// Update atomically reads the profile, passes it to fn (nil when
	// absent) and writes it back if fn reports a change. It returns the
	// profile as stored after the call and whether a write happened.
	Update(ctx context.Context, fn func(p *ProfileRecord) (bool, error)) (*ProfileRecord, bool, error)

	// Clear removes the stored profile.
	Clear(ctx context.Context) error
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one event by id, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	// LLMUsage aggregates token usage grouped by purpose or model.
	LLMUsage(ctx context.Context, by UsageGroup) ([]LLMUsageRecord, error)
}

// UsageGroup is the column LLMUsage groups by.
type UsageGroup string

const (
	UsageByPurpose UsageGroup = "purpose"
	UsageByModel   UsageGroup = "model"
)

// LLMUsageRecord is one aggregated usage row.
type LLMUsageRecord struct {
	Key          string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}
