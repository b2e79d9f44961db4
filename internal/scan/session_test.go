package scan

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/karmaloop/internal/questionbank"
)

// defaultValue picks the first tag for choice questions and the display
// default for scalar ones.
func defaultValue(q questionbank.Question) string {
	if q.Kind == questionbank.KindChoice {
		return q.Options[0].Tag
	}
	return strconv.Itoa(questionbank.ScalarDisplayDefault)
}

func TestNewSessionIsIdle(t *testing.T) {
	s := New()
	assert.Equal(t, StateIdle, s.State())
	assert.Equal(t, 0.0, s.Progress())
	assert.Nil(t, s.Answers())

	_, err := s.Current()
	assert.ErrorIs(t, err, ErrNotInProgress)
}

func TestSubmitWhenIdle(t *testing.T) {
	s := New()
	set, err := s.Submit("Analytical")
	assert.Nil(t, set)
	assert.ErrorIs(t, err, ErrNotInProgress)
}

func TestFullScan(t *testing.T) {
	s := New()
	s.Start()
	require.Equal(t, StateInProgress, s.State())
	require.NotEmpty(t, s.ID())

	var done *AnswerSet
	for i := 0; i < questionbank.Len(); i++ {
		q, err := s.Current()
		require.NoError(t, err)
		require.Equal(t, i, s.Index())

		want := float64(i) / float64(questionbank.Len())
		assert.InDelta(t, want, s.Progress(), 1e-9)

		done, err = s.Submit(defaultValue(q))
		require.NoError(t, err)
		if i < questionbank.Len()-1 {
			assert.Nil(t, done, "set returned before the last question")
		}
	}

	require.NotNil(t, done)
	assert.Equal(t, StateCompleted, s.State())
	assert.Equal(t, 1.0, s.Progress())
	assert.Equal(t, 20, done.Len())

	ids := done.IDs()
	for i, q := range questionbank.All() {
		assert.Equal(t, q.ID, ids[i], "answer order must follow scan order")
	}
	v, ok := done.Get("s2")
	assert.True(t, ok)
	assert.Equal(t, "3", v)

	_, err := s.Submit("Analytical")
	assert.ErrorIs(t, err, ErrNotInProgress, "submit after completion")
}

func TestSubmitForRejectsOutOfOrder(t *testing.T) {
	s := New()
	s.Start()

	_, err := s.SubmitFor("s2", "4")
	assert.ErrorIs(t, err, ErrOutOfOrder, "skip ahead")

	_, err = s.SubmitFor("s1", "Leader")
	require.NoError(t, err)

	_, err = s.SubmitFor("s1", "Creative")
	assert.ErrorIs(t, err, ErrOutOfOrder, "re-answer")

	v, _ := s.Answers().Get("s1")
	assert.Equal(t, "Leader", v, "first answer kept")
	assert.Equal(t, 1, s.Index())
}

func TestSubmitValidatesValue(t *testing.T) {
	tests := []struct {
		name  string
		setup []string
		value string
	}{
		{"unknown tag", nil, "Wizard"},
		{"scalar not a number", []string{"Analytical"}, "lots"},
		{"scalar below range", []string{"Analytical"}, "0"},
		{"scalar above range", []string{"Analytical"}, "6"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			s.Start()
			for _, v := range tt.setup {
				_, err := s.Submit(v)
				require.NoError(t, err)
			}
			before := s.Index()

			_, err := s.Submit(tt.value)
			var invalid *InvalidAnswerError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, before, s.Index(), "index must not advance")
		})
	}
}

func TestScalarStoresSubmittedValue(t *testing.T) {
	s := New()
	s.Start()
	_, err := s.Submit("Analytical")
	require.NoError(t, err)
	_, err = s.Submit("5")
	require.NoError(t, err)

	v, _ := s.Answers().Get("s2")
	assert.Equal(t, "5", v)
}

func TestAbandonDiscardsAnswers(t *testing.T) {
	s := New()
	s.Start()
	_, err := s.Submit("Creative")
	require.NoError(t, err)

	s.Abandon()
	assert.Equal(t, StateIdle, s.State())
	assert.Nil(t, s.Answers())
	assert.Equal(t, 0.0, s.Progress())
}

func TestStartResets(t *testing.T) {
	s := New()
	s.Start()
	first := s.ID()
	_, err := s.Submit("Creative")
	require.NoError(t, err)

	s.Start()
	assert.NotEqual(t, first, s.ID())
	assert.Equal(t, 0, s.Index())
	assert.Equal(t, 0, s.Answers().Len())
}

func TestNewAnswerSetIgnoresDuplicates(t *testing.T) {
	a := NewAnswerSet(
		Answer{"s1", "Leader"},
		Answer{"w1", "Clarity Gap"},
		Answer{"s1", "Creative"},
	)
	assert.Equal(t, 2, a.Len())
	assert.Equal(t, []string{"s1", "w1"}, a.IDs())
	v, _ := a.Get("s1")
	assert.Equal(t, "Leader", v)

	var nilSet *AnswerSet
	_, ok := nilSet.Get("s1")
	assert.False(t, ok)
	assert.Equal(t, 0, nilSet.Len())
}
