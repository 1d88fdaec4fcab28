package workbench

import (
	"slices"
	"sort"
	"time"
)

const (
	// QuestionCount is the number of questions in a pattern.
	QuestionCount = 7

	// ChoiceCount is the number of choices in every question.
	ChoiceCount = 4

	// PatternLevel is the question number used by notes that apply to the
	// whole pattern rather than to a single question.
	PatternLevel = 0
)

// Fragrance is one item of the catalog a quiz can recommend.
type Fragrance struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Choice is one answer option of a question. FragranceIDs holds the
// fragrances that score a point when this choice is picked.
type Choice struct {
	ID           string   `json:"id"`
	Label        string   `json:"label"`
	FragranceIDs []string `json:"fragranceIds"`
}

// Has reports whether the fragrance is assigned to the choice.
func (c Choice) Has(fragranceID string) bool {
	return slices.Contains(c.FragranceIDs, fragranceID)
}

// Question is a single quiz question. Number (1..7) is both the design slot
// and the order in which the quiz taker sees it; it never changes.
type Question struct {
	ID      string   `json:"id"`
	Number  int      `json:"number"`
	Text    string   `json:"text"`
	Choices []Choice `json:"choices"`
}

// Choice returns the choice with the given id.
func (q Question) Choice(id string) (Choice, bool) {
	for _, c := range q.Choices {
		if c.ID == id {
			return c, true
		}
	}
	return Choice{}, false
}

// ChoiceIndex returns the position of the choice with the given id, or -1.
func (q Question) ChoiceIndex(id string) int {
	for i, c := range q.Choices {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Note is a free-form memo attached to a pattern (QuestionNumber 0) or to
// one of its questions.
type Note struct {
	ID             string    `json:"id"`
	QuestionNumber int       `json:"questionNumber"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Pattern is one complete design of the 7-question quiz.
type Pattern struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Questions []Question `json:"questions"`
	Notes     []Note     `json:"notes"`
}

// Question returns the question with the given number.
func (p Pattern) Question(number int) (Question, bool) {
	for _, q := range p.Questions {
		if q.Number == number {
			return q, true
		}
	}
	return Question{}, false
}

// SortedQuestions returns the questions ordered by number.
func (p Pattern) SortedQuestions() []Question {
	out := make([]Question, len(p.Questions))
	copy(out, p.Questions)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}

// NotesFor returns the notes attached to the given question number, in
// creation order. Use PatternLevel for pattern-wide notes.
func (p Pattern) NotesFor(questionNumber int) []Note {
	var out []Note
	for _, n := range p.Notes {
		if n.QuestionNumber == questionNumber {
			out = append(out, n)
		}
	}
	return out
}

// Document is the root of everything the operator edits.
type Document struct {
	Fragrances []Fragrance `json:"fragrances"`
	Patterns   []Pattern   `json:"patterns"`
}

// Fragrance returns the catalog entry with the given id.
func (d Document) Fragrance(id string) (Fragrance, bool) {
	for _, f := range d.Fragrances {
		if f.ID == id {
			return f, true
		}
	}
	return Fragrance{}, false
}

// FragranceName returns the name for id, or the empty string when the id
// no longer resolves (deleted fragrances stay referenced by choices).
func (d Document) FragranceName(id string) string {
	f, ok := d.Fragrance(id)
	if !ok {
		return ""
	}
	return f.Name
}

// Pattern returns the pattern with the given id.
func (d Document) Pattern(id string) (Pattern, bool) {
	for _, p := range d.Patterns {
		if p.ID == id {
			return p, true
		}
	}
	return Pattern{}, false
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	out := Document{
		Fragrances: slices.Clone(d.Fragrances),
		Patterns:   make([]Pattern, len(d.Patterns)),
	}
	for i, p := range d.Patterns {
		out.Patterns[i] = p.Clone()
	}
	if d.Patterns == nil {
		out.Patterns = nil
	}
	return out
}

// Clone returns a deep copy of the pattern.
func (p Pattern) Clone() Pattern {
	out := p
	out.Notes = slices.Clone(p.Notes)
	if p.Questions != nil {
		out.Questions = make([]Question, len(p.Questions))
		for i, q := range p.Questions {
			out.Questions[i] = q.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the question.
func (q Question) Clone() Question {
	out := q
	if q.Choices != nil {
		out.Choices = make([]Choice, len(q.Choices))
		for i, c := range q.Choices {
			out.Choices[i] = c.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the choice.
func (c Choice) Clone() Choice {
	out := c
	out.FragranceIDs = slices.Clone(c.FragranceIDs)
	return out
}
