package workbench

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// intentFromSeed decodes a generated integer into an intent against doc, so
// random sequences exercise every variant with both known and unknown ids.
func intentFromSeed(doc Document, seed int, ids IDSource) Intent {
	kind := seed % 9
	arg := seed / 9

	patternID := "missing"
	if len(doc.Patterns) > 0 && arg%4 != 0 {
		patternID = doc.Patterns[arg%len(doc.Patterns)].ID
	}
	fragranceID := fmt.Sprintf("f%d", arg%5)
	number := arg%9 + 1 // includes numbers outside 1..7

	switch kind {
	case 0:
		return AddFragrance{Fragrance: Fragrance{ID: ids.NewID(), Name: "new"}}
	case 1:
		return UpdateFragrance{Fragrance: Fragrance{ID: fragranceID, Name: "renamed"}}
	case 2:
		return DeleteFragrance{ID: fragranceID}
	case 3:
		return AddPattern{Pattern: NewPattern("gen", ids, t0)}
	case 4:
		return DeletePattern{ID: patternID}
	case 5:
		q := Question{ID: ids.NewID(), Number: number, Text: "generated"}
		for i := 0; i < ChoiceCount; i++ {
			q.Choices = append(q.Choices, Choice{ID: ids.NewID(), FragranceIDs: []string{}})
		}
		return UpsertQuestion{PatternID: patternID, Question: q}
	case 6:
		if up, ok := Assign(doc, patternID, number, fragranceID, arg%ChoiceCount); ok {
			return up
		}
		return UpsertQuestion{PatternID: patternID, Question: Question{Number: number}}
	case 7:
		return AddNote{PatternID: patternID, Note: Note{ID: ids.NewID(), QuestionNumber: number % 8}}
	default:
		noteID := "missing"
		if p, ok := doc.Pattern(patternID); ok && len(p.Notes) > 0 {
			noteID = p.Notes[arg%len(p.Notes)].ID
		}
		return DeleteNote{PatternID: patternID, NoteID: noteID}
	}
}

func uniqueNumbers(doc Document) bool {
	for _, p := range doc.Patterns {
		seen := make(map[int]bool)
		for _, q := range p.Questions {
			if seen[q.Number] {
				return false
			}
			seen[q.Number] = true
		}
	}
	return true
}

func TestPropertyReducerKeepsQuestionNumbersUnique(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("any intent sequence keeps one question per number", prop.ForAll(
		func(seeds []int) bool {
			r := fixedReducer(t1)
			ids := seqIDs()
			doc := testDoc()
			for _, s := range seeds {
				doc = r.Apply(doc, intentFromSeed(doc, s, ids))
				if !uniqueNumbers(doc) {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 10_000)),
	))

	properties.TestingRun(t)
}

func TestPropertyUpsertIsIdempotent(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("upserting the same question twice equals once", prop.ForAll(
		func(number int, text string, fragrance int, choice int) bool {
			r := fixedReducer(t1)
			doc := testDoc()
			pid := doc.Patterns[0].ID

			q := Question{ID: "gen", Number: number, Text: text}
			for i := 0; i < ChoiceCount; i++ {
				q.Choices = append(q.Choices, Choice{ID: fmt.Sprintf("c%d", i), FragranceIDs: []string{}})
			}
			q = AssignFragrance(q, fmt.Sprintf("f%d", fragrance), choice)

			in := UpsertQuestion{PatternID: pid, Question: q}
			once := r.Apply(doc, in)
			twice := r.Apply(once, in)
			return reflect.DeepEqual(once, twice)
		},
		gen.IntRange(1, 9),
		gen.AlphaString(),
		gen.IntRange(1, 3),
		gen.IntRange(0, ChoiceCount-1),
	))

	properties.TestingRun(t)
}

func TestPropertyAssignmentIsExclusive(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("the last assignment wins and is the only one", prop.ForAll(
		func(number, i, j int) bool {
			doc := testDoc()
			pid := doc.Patterns[0].ID

			for _, idx := range []int{i, j} {
				up, ok := Assign(doc, pid, number, "f1", idx)
				if !ok {
					return false
				}
				doc = Apply(doc, up)
			}

			q, _ := doc.Patterns[0].Question(number)
			got := occurrences(q, "f1")
			return len(got) == 1 && got[0] == j
		},
		gen.IntRange(1, QuestionCount),
		gen.IntRange(0, ChoiceCount-1),
		gen.IntRange(0, ChoiceCount-1),
	))

	properties.TestingRun(t)
}
