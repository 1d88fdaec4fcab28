package simulator

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aromabench/internal/workbench"
)

func seqIDs() workbench.IDSource {
	n := 0
	return workbench.IDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
}

// testPattern returns a pattern where questions 2 and 5 are well-formed:
// Q2 choice 0 = {f1}, choice 1 = {f2}; Q5 choice 0 = {f1, f3}.
func testPattern() (workbench.Pattern, []workbench.Fragrance) {
	doc := workbench.Document{
		Fragrances: []workbench.Fragrance{{ID: "f1"}, {ID: "f2"}, {ID: "f3"}},
	}
	p := workbench.NewPattern("sim", seqIDs(), time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	doc = workbench.Apply(doc, workbench.AddPattern{Pattern: p})

	for _, a := range []struct {
		n   int
		f   string
		idx int
	}{{2, "f1", 0}, {2, "f2", 1}, {5, "f1", 0}, {5, "f3", 0}} {
		up, _ := workbench.Assign(doc, p.ID, a.n, a.f, a.idx)
		doc = workbench.Apply(doc, up)
	}
	return doc.Patterns[0], doc.Fragrances
}

func TestAvailableQuestionsSkipsIllFormed(t *testing.T) {
	p, _ := testPattern()
	qs := AvailableQuestions(p)
	require.Len(t, qs, 2)
	assert.Equal(t, 2, qs[0].Number)
	assert.Equal(t, 5, qs[1].Number)
}

func TestSimulationFlow(t *testing.T) {
	p, cat := testPattern()
	s := New(p, cat)

	assert.Equal(t, 2, s.Total())
	assert.False(t, s.Done())

	q, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, 2, q.Number)
	assert.Len(t, s.Choices(), workbench.ChoiceCount)

	s = s.Answer(q.Choices[0].ID)
	assert.Equal(t, 1, s.Step())

	preview := s.Scores()
	assert.Equal(t, "f1", preview[0].FragranceID)
	assert.Equal(t, 1, preview[0].Score)

	q, _ = s.Current()
	assert.Equal(t, 5, q.Number)
	s = s.Answer(q.Choices[0].ID)
	assert.True(t, s.Done())

	out := s.Outcome()
	assert.Equal(t, 2, out.MaxScore)
	assert.Equal(t, 2, out.TopScore)
	require.Len(t, out.Winners, 1)
	assert.Equal(t, "f1", out.Winners[0].FragranceID)
	assert.False(t, out.Tie)
	assert.Len(t, out.Scores, 3)

	c, ok := s.AnswerFor(5)
	require.True(t, ok)
	assert.Equal(t, q.Choices[0].ID, c.ID)
}

func TestSimulationIgnoresUnknownChoice(t *testing.T) {
	p, cat := testPattern()
	s := New(p, cat)
	s2 := s.Answer("nope")
	assert.Equal(t, 0, s2.Step())
	assert.Empty(t, s2.Answers())
}

func TestSimulationBackForgetsAnswer(t *testing.T) {
	p, cat := testPattern()
	s := New(p, cat)
	q, _ := s.Current()
	s = s.Answer(q.Choices[1].ID)
	require.Len(t, s.Answers(), 1)

	s = s.Back()
	assert.Equal(t, 0, s.Step())
	assert.Empty(t, s.Answers())

	// Back at the start is a no-op.
	assert.Equal(t, 0, s.Back().Step())
}

func TestSimulationIsAValue(t *testing.T) {
	p, cat := testPattern()
	start := New(p, cat)
	q, _ := start.Current()

	next := start.Answer(q.Choices[0].ID)
	assert.Equal(t, 0, start.Step())
	assert.Empty(t, start.Answers())
	assert.Len(t, next.Answers(), 1)

	assert.Equal(t, 0, next.Reset().Step())
	assert.Empty(t, next.Reset().Answers())
}

func TestSimulationTie(t *testing.T) {
	p, cat := testPattern()
	s := New(p, cat)
	q, _ := s.Current()
	s = s.Answer(q.Choices[0].ID) // f1
	q, _ = s.Current()
	s = s.Answer(q.Choices[0].ID) // f1, f3

	// Picking f2 on Q2 leaves f1, f2 and f3 on one point each.
	alt := New(p, cat)
	q, _ = alt.Current()
	alt = alt.Answer(q.Choices[1].ID) // f2
	q, _ = alt.Current()
	alt = alt.Answer(q.Choices[0].ID) // f1, f3

	out := alt.Outcome()
	assert.True(t, out.Tie)
	assert.Equal(t, 1, out.TopScore)
	assert.Len(t, out.Winners, 3)
	assert.False(t, s.Outcome().Tie)
}

func TestSimulationWithNoWellFormedQuestions(t *testing.T) {
	p := workbench.NewPattern("empty", seqIDs(), time.Now())
	s := New(p, workbench.DefaultFragrances())

	assert.True(t, s.Done())
	assert.Equal(t, 0, s.Total())
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Nil(t, s.Choices())

	out := s.Outcome()
	assert.Empty(t, out.Winners)
	assert.Len(t, out.Scores, 20)
}

func TestSimulationSkipsUnlabelledChoices(t *testing.T) {
	p, cat := testPattern()
	q, _ := p.Question(2)
	q = workbench.SetChoiceLabel(q, 3, "")
	doc := workbench.Apply(workbench.Document{Patterns: []workbench.Pattern{p}},
		workbench.UpsertQuestion{PatternID: p.ID, Question: q})

	s := New(doc.Patterns[0], cat)
	assert.Len(t, s.Choices(), 3)
	assert.Equal(t, 0, s.Answer(q.Choices[3].ID).Step())
}
