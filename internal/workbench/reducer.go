package workbench

import "time"

// Reducer applies intents to documents. Now supplies the timestamp written
// to Pattern.UpdatedAt; it defaults to the UTC wall clock.
type Reducer struct {
	Now func() time.Time
}

// Apply applies the intent with the wall clock.
func Apply(doc Document, in Intent) Document {
	return Reducer{}.Apply(doc, in)
}

// Apply returns the document that results from applying the intent. The
// input document is never modified. Intents that reference ids that do not
// exist leave the document unchanged.
func (r Reducer) Apply(doc Document, in Intent) Document {
	out := doc.Clone()

	switch in := in.(type) {
	case AddFragrance:
		out.Fragrances = append(out.Fragrances, in.Fragrance)

	case UpdateFragrance:
		for i, f := range out.Fragrances {
			if f.ID == in.Fragrance.ID {
				out.Fragrances[i] = in.Fragrance
			}
		}

	case DeleteFragrance:
		kept := out.Fragrances[:0]
		for _, f := range out.Fragrances {
			if f.ID != in.ID {
				kept = append(kept, f)
			}
		}
		out.Fragrances = kept

	case AddPattern:
		out.Patterns = append(out.Patterns, in.Pattern.Clone())

	case UpdatePattern:
		for i, p := range out.Patterns {
			if p.ID == in.Pattern.ID {
				out.Patterns[i] = in.Pattern.Clone()
			}
		}

	case DeletePattern:
		kept := out.Patterns[:0]
		for _, p := range out.Patterns {
			if p.ID != in.ID {
				kept = append(kept, p)
			}
		}
		out.Patterns = kept

	case UpsertQuestion:
		r.updatePattern(&out, in.PatternID, true, func(p *Pattern) {
			p.Questions = upsertQuestion(p.Questions, in.Question.Clone())
		})

	case AddNote:
		r.updatePattern(&out, in.PatternID, true, func(p *Pattern) {
			p.Notes = append(p.Notes, in.Note)
		})

	case DeleteNote:
		// Deleting a note deliberately leaves UpdatedAt untouched.
		r.updatePattern(&out, in.PatternID, false, func(p *Pattern) {
			kept := p.Notes[:0]
			for _, n := range p.Notes {
				if n.ID != in.NoteID {
					kept = append(kept, n)
				}
			}
			p.Notes = kept
		})

	default:
		return doc
	}

	return out
}

// ApplyAll applies intents in order.
func (r Reducer) ApplyAll(doc Document, intents ...Intent) Document {
	for _, in := range intents {
		doc = r.Apply(doc, in)
	}
	return doc
}

func (r Reducer) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

// updatePattern runs fn on every pattern with the given id.
func (r Reducer) updatePattern(doc *Document, patternID string, touch bool, fn func(*Pattern)) {
	for i := range doc.Patterns {
		p := &doc.Patterns[i]
		if p.ID != patternID {
			continue
		}
		fn(p)
		if touch {
			p.UpdatedAt = r.now()
		}
	}
}

// upsertQuestion replaces the question sharing q's number in place, or
// appends q. Any further question with the same number is dropped so the
// slot ends up holding exactly one question.
func upsertQuestion(qs []Question, q Question) []Question {
	out := qs[:0]
	replaced := false
	for _, existing := range qs {
		if existing.Number != q.Number {
			out = append(out, existing)
			continue
		}
		if !replaced {
			out = append(out, q)
			replaced = true
		}
	}
	if !replaced {
		out = append(out, q)
	}
	return out
}
