package workbench

import "fmt"

// Status summarizes how far the design of a question has come.
type Status string

const (
	StatusEmpty    Status = "empty"
	StatusPartial  Status = "partial"
	StatusComplete Status = "complete"
)

// WellFormed reports whether the question can be shown to a quiz taker: it
// has text and at least one labelled choice with an assigned fragrance.
func WellFormed(q Question) bool {
	if q.Text == "" {
		return false
	}
	for _, c := range q.Choices {
		if c.Label != "" && len(c.FragranceIDs) > 0 {
			return true
		}
	}
	return false
}

// QuestionStatus classifies q. A question is complete when it has text and
// every choice carries at least one fragrance.
func QuestionStatus(q Question) Status {
	hasText := q.Text != ""
	allAssigned := len(q.Choices) > 0
	hasChoices := false
	for _, c := range q.Choices {
		if len(c.FragranceIDs) == 0 {
			allAssigned = false
		}
		if c.Label != "" && len(c.FragranceIDs) > 0 {
			hasChoices = true
		}
	}
	switch {
	case hasText && allAssigned:
		return StatusComplete
	case hasText || hasChoices:
		return StatusPartial
	default:
		return StatusEmpty
	}
}

// PatternQuestionStatus classifies question number n of p; a missing
// question is empty.
func PatternQuestionStatus(p Pattern, n int) Status {
	q, ok := p.Question(n)
	if !ok {
		return StatusEmpty
	}
	return QuestionStatus(q)
}

// Progress returns the number of well-formed questions in p.
func Progress(p Pattern) int {
	n := 0
	for _, q := range p.Questions {
		if WellFormed(q) {
			n++
		}
	}
	return n
}

// Completed reports whether every question of p has text and every choice a
// label and at least one fragrance.
func Completed(p Pattern) bool {
	for _, q := range p.Questions {
		if q.Text == "" {
			return false
		}
		for _, c := range q.Choices {
			if c.Label == "" || len(c.FragranceIDs) == 0 {
				return false
			}
		}
	}
	return true
}

// CompletedPatterns returns the patterns of doc that are Completed.
func CompletedPatterns(doc Document) []Pattern {
	var out []Pattern
	for _, p := range doc.Patterns {
		if Completed(p) {
			out = append(out, p)
		}
	}
	return out
}

// Position locates a fragrance assignment inside a pattern.
type Position struct {
	Number      int
	ChoiceIndex int
}

// Positions returns every (question, choice) the fragrance is assigned to,
// ordered by question number.
func Positions(p Pattern, fragranceID string) []Position {
	var out []Position
	for _, q := range p.SortedQuestions() {
		for i, c := range q.Choices {
			if c.Has(fragranceID) {
				out = append(out, Position{Number: q.Number, ChoiceIndex: i})
			}
		}
	}
	return out
}

// AssignedIDs returns the set of fragrance ids assigned anywhere in q.
func AssignedIDs(q Question) map[string]bool {
	ids := make(map[string]bool)
	for _, c := range q.Choices {
		for _, id := range c.FragranceIDs {
			ids[id] = true
		}
	}
	return ids
}

// AssignedCount returns the number of assignments across q's choices.
func AssignedCount(q Question) int {
	n := 0
	for _, c := range q.Choices {
		n += len(c.FragranceIDs)
	}
	return n
}

// Unassigned returns the catalog fragrances not assigned to any choice of q,
// in catalog order.
func Unassigned(q Question, catalog []Fragrance) []Fragrance {
	assigned := AssignedIDs(q)
	var out []Fragrance
	for _, f := range catalog {
		if !assigned[f.ID] {
			out = append(out, f)
		}
	}
	return out
}

// Violation describes a fragrance assigned to more than one choice of the
// same question.
type Violation struct {
	PatternID   string
	Number      int
	FragranceID string
	Choices     []int
}

func (v Violation) Error() string {
	return fmt.Sprintf("pattern %s question %d: fragrance %s assigned to choices %v",
		v.PatternID, v.Number, v.FragranceID, v.Choices)
}

// CheckExclusive reports fragrances that appear in more than one choice of a
// question. The rule is only enforced when assigning, so documents built
// from outside data may violate it; violations are reported, not repaired.
func CheckExclusive(p Pattern) []Violation {
	var out []Violation
	for _, q := range p.SortedQuestions() {
		seen := make(map[string][]int)
		var order []string
		for i, c := range q.Choices {
			for _, id := range c.FragranceIDs {
				if _, ok := seen[id]; !ok {
					order = append(order, id)
				}
				seen[id] = append(seen[id], i)
			}
		}
		for _, id := range order {
			if len(seen[id]) > 1 {
				out = append(out, Violation{
					PatternID:   p.ID,
					Number:      q.Number,
					FragranceID: id,
					Choices:     seen[id],
				})
			}
		}
	}
	return out
}

// CheckDocument runs CheckExclusive over every pattern.
func CheckDocument(doc Document) []Violation {
	var out []Violation
	for _, p := range doc.Patterns {
		out = append(out, CheckExclusive(p)...)
	}
	return out
}
