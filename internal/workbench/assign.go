package workbench

import "slices"

// AssignFragrance returns a copy of q in which the fragrance belongs to the
// choice at choiceIndex and to no other choice. An out-of-range index
// returns an unchanged copy.
func AssignFragrance(q Question, fragranceID string, choiceIndex int) Question {
	out := q.Clone()
	if choiceIndex < 0 || choiceIndex >= len(out.Choices) {
		return out
	}
	for i := range out.Choices {
		c := &out.Choices[i]
		if i == choiceIndex {
			if !c.Has(fragranceID) {
				c.FragranceIDs = append(c.FragranceIDs, fragranceID)
			}
			continue
		}
		c.FragranceIDs = without(c.FragranceIDs, fragranceID)
	}
	return out
}

// RemoveFragrance returns a copy of q with the fragrance taken out of the
// choice at choiceIndex.
func RemoveFragrance(q Question, fragranceID string, choiceIndex int) Question {
	out := q.Clone()
	if choiceIndex < 0 || choiceIndex >= len(out.Choices) {
		return out
	}
	out.Choices[choiceIndex].FragranceIDs = without(out.Choices[choiceIndex].FragranceIDs, fragranceID)
	return out
}

// SetQuestionText returns a copy of q with new text.
func SetQuestionText(q Question, text string) Question {
	out := q.Clone()
	out.Text = text
	return out
}

// SetChoiceLabel returns a copy of q with the label of one choice replaced.
func SetChoiceLabel(q Question, choiceIndex int, label string) Question {
	out := q.Clone()
	if choiceIndex < 0 || choiceIndex >= len(out.Choices) {
		return out
	}
	out.Choices[choiceIndex].Label = label
	return out
}

// ClearQuestion returns a copy of q with blank text, blank labels and no
// assignments. Ids and the number are kept.
func ClearQuestion(q Question) Question {
	out := q.Clone()
	out.Text = ""
	for i := range out.Choices {
		out.Choices[i].Label = ""
		out.Choices[i].FragranceIDs = []string{}
	}
	return out
}

// Assign resolves question number in the pattern and returns the intent that
// assigns the fragrance to the choice at choiceIndex. ok is false when the
// pattern or question does not exist.
func Assign(doc Document, patternID string, number int, fragranceID string, choiceIndex int) (UpsertQuestion, bool) {
	return EditQuestion(doc, patternID, number, func(q Question) Question {
		return AssignFragrance(q, fragranceID, choiceIndex)
	})
}

// Unassign is the counterpart of Assign for RemoveFragrance.
func Unassign(doc Document, patternID string, number int, fragranceID string, choiceIndex int) (UpsertQuestion, bool) {
	return EditQuestion(doc, patternID, number, func(q Question) Question {
		return RemoveFragrance(q, fragranceID, choiceIndex)
	})
}

// EditQuestion resolves a question and returns the upsert carrying fn's
// result.
func EditQuestion(doc Document, patternID string, number int, fn func(Question) Question) (UpsertQuestion, bool) {
	p, ok := doc.Pattern(patternID)
	if !ok {
		return UpsertQuestion{}, false
	}
	q, ok := p.Question(number)
	if !ok {
		return UpsertQuestion{}, false
	}
	return UpsertQuestion{PatternID: patternID, Question: fn(q.Clone())}, true
}

func without(ids []string, id string) []string {
	return slices.DeleteFunc(ids, func(s string) bool { return s == id })
}
