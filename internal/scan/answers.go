package scan

import "slices"

// Answer is one recorded response.
type Answer struct {
	QuestionID string
	Value      string
}

// AnswerSet maps question ids to recorded values and remembers the order
// in which they were answered. The zero value is ready to use.
type AnswerSet struct {
	order  []string
	values map[string]string
}

// NewAnswerSet builds a set from answers in the given order. Later
// duplicates of an id are ignored.
func NewAnswerSet(answers ...Answer) *AnswerSet {
	a := &AnswerSet{}
	for _, ans := range answers {
		a.record(ans.QuestionID, ans.Value)
	}
	return a
}

// record stores value under id unless id is already present.
func (a *AnswerSet) record(id, value string) bool {
	if a.values == nil {
		a.values = make(map[string]string)
	}
	if _, dup := a.values[id]; dup {
		return false
	}
	a.values[id] = value
	a.order = append(a.order, id)
	return true
}

// Get returns the value recorded for id.
func (a *AnswerSet) Get(id string) (string, bool) {
	if a == nil {
		return "", false
	}
	v, ok := a.values[id]
	return v, ok
}

// Len returns the number of answers.
func (a *AnswerSet) Len() int {
	if a == nil {
		return 0
	}
	return len(a.order)
}

// IDs returns answered question ids in answer order.
func (a *AnswerSet) IDs() []string {
	if a == nil {
		return nil
	}
	return slices.Clone(a.order)
}

// Answers returns the entries in answer order.
func (a *AnswerSet) Answers() []Answer {
	if a == nil {
		return nil
	}
	out := make([]Answer, len(a.order))
	for i, id := range a.order {
		out[i] = Answer{QuestionID: id, Value: a.values[id]}
	}
	return out
}
