// Package scan runs the sequential 20-question assessment: one answer per
// question, strictly in catalog order, until the catalog is exhausted.
package scan

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/abhisek/karmaloop/internal/questionbank"
)

var (
	// ErrNotInProgress is returned when an answer arrives outside a running scan.
	ErrNotInProgress = errors.New("scan not in progress")

	// ErrOutOfOrder is returned when an answer names a question other than
	// the current one. Questions cannot be skipped or re-answered.
	ErrOutOfOrder = errors.New("answer is not for the current question")
)

// InvalidAnswerError reports a value the current question cannot accept.
type InvalidAnswerError struct {
	QuestionID string
	Value      string
	Reason     string
}

func (e *InvalidAnswerError) Error() string {
	return fmt.Sprintf("invalid answer %q for %s: %s", e.Value, e.QuestionID, e.Reason)
}

// State is the lifecycle phase of a Session.
type State int

const (
	StateIdle State = iota
	StateInProgress
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateInProgress:
		return "in_progress"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Session is the scan state machine: Idle -> InProgress(index) -> Completed.
// It is not safe for concurrent use; callers serialize events.
type Session struct {
	id      string
	state   State
	index   int
	answers *AnswerSet
}

// New returns an idle session.
func New() *Session {
	return &Session{}
}

// Start begins a fresh scan at the first question. Any previous answers
// are discarded. Start never fails.
func (s *Session) Start() {
	s.id = uuid.New().String()
	s.state = StateInProgress
	s.index = 0
	s.answers = &AnswerSet{}
}

// ID identifies the current or last scan. Empty before the first Start.
func (s *Session) ID() string { return s.id }

// State returns the current phase.
func (s *Session) State() State { return s.state }

// Index returns the position of the current question.
func (s *Session) Index() int { return s.index }

// Current returns the question awaiting an answer.
func (s *Session) Current() (questionbank.Question, error) {
	if s.state != StateInProgress {
		return questionbank.Question{}, ErrNotInProgress
	}
	return questionbank.At(s.index)
}

// Progress returns the fraction of questions answered, in [0,1].
func (s *Session) Progress() float64 {
	switch s.state {
	case StateCompleted:
		return 1
	case StateInProgress:
		return float64(s.answers.Len()) / float64(questionbank.Len())
	default:
		return 0
	}
}

// Submit records value for the current question and advances. When the
// last question is answered the session completes and the finished set is
// returned; otherwise the returned set is nil.
func (s *Session) Submit(value string) (*AnswerSet, error) {
	q, err := s.Current()
	if err != nil {
		return nil, err
	}
	if err := checkValue(q, value); err != nil {
		return nil, err
	}

	s.answers.record(q.ID, value)
	s.index++

	if s.index >= questionbank.Len() {
		s.state = StateCompleted
		return s.answers, nil
	}
	return nil, nil
}

// SubmitFor is Submit guarded by the question id the caller believes is
// current.
func (s *Session) SubmitFor(questionID, value string) (*AnswerSet, error) {
	q, err := s.Current()
	if err != nil {
		return nil, err
	}
	if q.ID != questionID {
		return nil, fmt.Errorf("%w: got %q, current is %q", ErrOutOfOrder, questionID, q.ID)
	}
	return s.Submit(value)
}

// Answers returns the answers collected so far. Nil when idle.
func (s *Session) Answers() *AnswerSet {
	return s.answers
}

// Abandon discards the in-flight answers and returns to Idle.
func (s *Session) Abandon() {
	s.state = StateIdle
	s.index = 0
	s.answers = nil
}

func checkValue(q questionbank.Question, value string) error {
	switch q.Kind {
	case questionbank.KindChoice:
		if !q.HasTag(value) {
			return &InvalidAnswerError{QuestionID: q.ID, Value: value, Reason: "not one of the option tags"}
		}
	case questionbank.KindScalar:
		n, err := strconv.Atoi(value)
		if err != nil {
			return &InvalidAnswerError{QuestionID: q.ID, Value: value, Reason: "not an integer"}
		}
		if n < q.Min || n > q.Max {
			return &InvalidAnswerError{QuestionID: q.ID, Value: value,
				Reason: fmt.Sprintf("outside [%d,%d]", q.Min, q.Max)}
		}
	}
	return nil
}
