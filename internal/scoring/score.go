package scoring

import (
	"sort"

	"github.com/abhisek/aromabench/internal/workbench"
)

// Answers maps a question number to the id of the chosen choice.
type Answers map[int]string

// Result is the score of one catalog fragrance.
type Result struct {
	FragranceID string `json:"fragranceId"`
	Score       int    `json:"score"`

	// MatchedQuestions lists, in ascending order, the answered questions
	// whose chosen choice includes the fragrance.
	MatchedQuestions []int `json:"matchedQuestions"`
}

// Score ranks every catalog fragrance against the answers. Each answered
// question whose chosen choice includes a fragrance adds one point to it.
//
// Answers that point at a question missing from the pattern, or at a choice
// missing from the question, are skipped. Fragrance ids that are no longer in
// the catalog are ignored. The result always has one entry per catalog
// fragrance, sorted by score descending; equal scores keep catalog order, so
// the ranking of tied fragrances depends on how the catalog is ordered.
func Score(p workbench.Pattern, answers Answers, catalog []workbench.Fragrance) []Result {
	results := make([]Result, len(catalog))
	index := make(map[string]int, len(catalog))
	for i, f := range catalog {
		results[i] = Result{FragranceID: f.ID, MatchedQuestions: []int{}}
		if _, dup := index[f.ID]; !dup {
			index[f.ID] = i
		}
	}

	for _, number := range answeredNumbers(answers) {
		q, ok := p.Question(number)
		if !ok {
			continue
		}
		choice, ok := q.Choice(answers[number])
		if !ok {
			continue
		}
		for _, id := range choice.FragranceIDs {
			i, ok := index[id]
			if !ok {
				continue
			}
			results[i].Score++
			results[i].MatchedQuestions = append(results[i].MatchedQuestions, number)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// answeredNumbers returns the answered question numbers in ascending order.
func answeredNumbers(answers Answers) []int {
	numbers := make([]int, 0, len(answers))
	for n := range answers {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	return numbers
}

// TopScore returns the highest score in results, or 0 when empty.
func TopScore(results []Result) int {
	top := 0
	for _, r := range results {
		if r.Score > top {
			top = r.Score
		}
	}
	return top
}

// Winners returns every result sharing the top score. Nothing wins while the
// top score is 0.
func Winners(results []Result) []Result {
	top := TopScore(results)
	if top == 0 {
		return nil
	}
	var out []Result
	for _, r := range results {
		if r.Score == top {
			out = append(out, r)
		}
	}
	return out
}

// IsTie reports whether more than one fragrance shares a positive top score.
func IsTie(results []Result) bool {
	return len(Winners(results)) > 1
}
