package workbench

import "time"

// CopySuffix is appended to the name of a duplicated pattern.
const CopySuffix = " (copy)"

// CreateEmptyPattern returns a new pattern seeded from the question
// templates, using random ids and the current time.
func CreateEmptyPattern(name string) Pattern {
	return NewPattern(name, UUIDSource{}, time.Now().UTC())
}

// NewPattern returns a pattern holding questions 1..7 seeded from the
// template table. Every question and choice gets a fresh id and no
// fragrance is assigned yet.
func NewPattern(name string, ids IDSource, now time.Time) Pattern {
	p := Pattern{
		ID:        ids.NewID(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Questions: make([]Question, 0, QuestionCount),
		Notes:     []Note{},
	}

	for i, tmpl := range questionTemplates {
		q := Question{
			ID:      ids.NewID(),
			Number:  i + 1,
			Text:    tmpl.Text,
			Choices: make([]Choice, 0, ChoiceCount),
		}
		for _, label := range tmpl.Labels {
			q.Choices = append(q.Choices, Choice{
				ID:           ids.NewID(),
				Label:        label,
				FragranceIDs: []string{},
			})
		}
		p.Questions = append(p.Questions, q)
	}

	return p
}

// DuplicatePattern returns a deep copy of p under new pattern, question and
// choice ids, with fresh timestamps. Assignments and notes are kept.
func DuplicatePattern(p Pattern, ids IDSource, now time.Time) Pattern {
	dup := p.Clone()
	dup.ID = ids.NewID()
	dup.Name = p.Name + CopySuffix
	dup.CreatedAt = now
	dup.UpdatedAt = now
	for i := range dup.Questions {
		q := &dup.Questions[i]
		q.ID = ids.NewID()
		for j := range q.Choices {
			q.Choices[j].ID = ids.NewID()
		}
	}
	if dup.Notes == nil {
		dup.Notes = []Note{}
	}
	return dup
}

// NewNote returns a note for the given question number (PatternLevel for a
// pattern-wide note).
func NewNote(questionNumber int, text string, ids IDSource, now time.Time) Note {
	return Note{
		ID:             ids.NewID(),
		QuestionNumber: questionNumber,
		Text:           text,
		CreatedAt:      now,
	}
}

// NewFragrance returns a catalog entry with a fresh id.
func NewFragrance(name, description string, ids IDSource) Fragrance {
	return Fragrance{
		ID:          ids.NewID(),
		Name:        name,
		Description: description,
	}
}
