package simulator

import (
	"github.com/abhisek/aromabench/internal/scoring"
	"github.com/abhisek/aromabench/internal/workbench"
)

// AvailableQuestions returns the well-formed questions of p ordered by
// number. Questions that are not well-formed are never asked.
func AvailableQuestions(p workbench.Pattern) []workbench.Question {
	var out []workbench.Question
	for _, q := range p.SortedQuestions() {
		if workbench.WellFormed(q) {
			out = append(out, q)
		}
	}
	return out
}

// Simulation walks a quiz taker through a pattern one question at a time.
// It is a value type: every step returns a new Simulation.
type Simulation struct {
	pattern   workbench.Pattern
	catalog   []workbench.Fragrance
	questions []workbench.Question
	step      int
	answers   scoring.Answers
}

// New starts a simulation of p against the catalog.
func New(p workbench.Pattern, catalog []workbench.Fragrance) Simulation {
	return Simulation{
		pattern:   p.Clone(),
		catalog:   append([]workbench.Fragrance(nil), catalog...),
		questions: AvailableQuestions(p),
		answers:   scoring.Answers{},
	}
}

// Pattern returns the simulated pattern.
func (s Simulation) Pattern() workbench.Pattern {
	return s.pattern
}

// Questions returns the questions that will be asked, in order.
func (s Simulation) Questions() []workbench.Question {
	return s.questions
}

// Step returns the zero-based index of the current question.
func (s Simulation) Step() int {
	return s.step
}

// Total returns the number of questions that will be asked.
func (s Simulation) Total() int {
	return len(s.questions)
}

// Done reports whether every available question has been answered.
func (s Simulation) Done() bool {
	return s.step >= len(s.questions)
}

// Current returns the question being asked. ok is false once Done.
func (s Simulation) Current() (workbench.Question, bool) {
	if s.Done() {
		return workbench.Question{}, false
	}
	return s.questions[s.step], true
}

// Choices returns the labelled choices of the current question, the ones a
// quiz taker can pick.
func (s Simulation) Choices() []workbench.Choice {
	q, ok := s.Current()
	if !ok {
		return nil
	}
	var out []workbench.Choice
	for _, c := range q.Choices {
		if c.Label != "" {
			out = append(out, c)
		}
	}
	return out
}

// Answer records choiceID for the current question and moves to the next
// one. An id that is not one of Choices is ignored.
func (s Simulation) Answer(choiceID string) Simulation {
	q, ok := s.Current()
	if !ok {
		return s
	}
	c, ok := q.Choice(choiceID)
	if !ok || c.Label == "" {
		return s
	}
	s.answers = s.cloneAnswers()
	s.answers[q.Number] = choiceID
	s.step++
	return s
}

// Back returns to the previous question and forgets its answer.
func (s Simulation) Back() Simulation {
	if s.step == 0 {
		return s
	}
	s.step--
	s.answers = s.cloneAnswers()
	delete(s.answers, s.questions[s.step].Number)
	return s
}

// Reset starts over with no answers.
func (s Simulation) Reset() Simulation {
	s.step = 0
	s.answers = scoring.Answers{}
	return s
}

// Answers returns a copy of the recorded answers.
func (s Simulation) Answers() scoring.Answers {
	return s.cloneAnswers()
}

// AnswerFor returns the chosen choice for question number n.
func (s Simulation) AnswerFor(n int) (workbench.Choice, bool) {
	id, ok := s.answers[n]
	if !ok {
		return workbench.Choice{}, false
	}
	q, ok := s.pattern.Question(n)
	if !ok {
		return workbench.Choice{}, false
	}
	return q.Choice(id)
}

// Scores returns the live ranking for the answers given so far.
func (s Simulation) Scores() []scoring.Result {
	return scoring.Score(s.pattern, s.answers, s.catalog)
}

// Outcome is the result shown once the quiz is finished.
type Outcome struct {
	Winners  []scoring.Result
	TopScore int

	// MaxScore is the number of questions asked, the best score possible.
	MaxScore int
	Tie      bool
	Scores   []scoring.Result
}

// Outcome ranks the current answers. It can be called before Done to
// preview the result.
func (s Simulation) Outcome() Outcome {
	results := s.Scores()
	winners := scoring.Winners(results)
	return Outcome{
		Winners:  winners,
		TopScore: scoring.TopScore(results),
		MaxScore: len(s.questions),
		Tie:      len(winners) > 1,
		Scores:   results,
	}
}

func (s Simulation) cloneAnswers() scoring.Answers {
	out := make(scoring.Answers, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}
