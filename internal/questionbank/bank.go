package questionbank

import (
	"fmt"
	"slices"
)

// bank holds the catalog with precomputed indices.
type bank struct {
	questions []Question
	byID      map[string]int
	bySector  map[Sector][]Question
}

// b is the package-level catalog, set by init() in seed.go.
var b *bank

func buildBank(questions []Question) *bank {
	bk := &bank{
		questions: questions,
		byID:      make(map[string]int, len(questions)),
		bySector:  make(map[Sector][]Question),
	}
	for i, q := range questions {
		bk.byID[q.ID] = i
		bk.bySector[q.Sector] = append(bk.bySector[q.Sector], q)
	}
	return bk
}

// Len returns the number of questions in a scan.
func Len() int {
	return len(b.questions)
}

// At returns the question at position i in scan order.
func At(i int) (Question, error) {
	if i < 0 || i >= len(b.questions) {
		return Question{}, fmt.Errorf("question index %d out of range [0,%d)", i, len(b.questions))
	}
	return b.questions[i], nil
}

// ByID returns a question by id.
func ByID(id string) (Question, error) {
	i, ok := b.byID[id]
	if !ok {
		return Question{}, fmt.Errorf("question not found: %q", id)
	}
	return b.questions[i], nil
}

// IndexOf returns the scan position of id, or -1.
func IndexOf(id string) int {
	if i, ok := b.byID[id]; ok {
		return i
	}
	return -1
}

// All returns every question in scan order.
func All() []Question {
	return slices.Clone(b.questions)
}

// BySector returns the questions of one sector in scan order.
func BySector(s Sector) []Question {
	return slices.Clone(b.bySector[s])
}
