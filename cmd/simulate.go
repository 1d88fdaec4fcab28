package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aromabench/internal/scoring"
	"github.com/abhisek/aromabench/internal/workbench"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <pattern-id>",
	Short: "Score a set of answers against a pattern",
	Long: `Score answers without the TUI. Each --answer is N=K: question N, choice K
(1-4). Unanswered questions score nothing.`,
	Example: "  aromabench simulate 4c1d... --answer 1=2 --answer 7=4",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetStringArray("answer")
		top, _ := cmd.Flags().GetInt("top")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		doc := s.ws.Document()
		p, ok := doc.Pattern(args[0])
		if !ok {
			return fmt.Errorf("pattern %q not found", args[0])
		}
		answers, err := parseAnswers(p, raw)
		if err != nil {
			return err
		}
		if top == 0 {
			top = s.cfg.Simulator.PreviewLimit
		}
		printScores(cmd.OutOrStdout(), doc, scoring.Score(p, answers, doc.Fragrances), top)
		return nil
	},
}

func init() {
	simulateCmd.Flags().StringArray("answer", nil, "Answer as N=K (question number = 1-based choice)")
	simulateCmd.Flags().Int("top", 0, "Rows to print (0 = config simulator.preview_limit, -1 = all)")
}

// parseAnswers turns N=K pairs into choice ids of p.
func parseAnswers(p workbench.Pattern, raw []string) (scoring.Answers, error) {
	answers := scoring.Answers{}
	for _, a := range raw {
		left, right, ok := strings.Cut(a, "=")
		if !ok {
			return nil, fmt.Errorf("answer %q: want N=K", a)
		}
		n, err := strconv.Atoi(strings.TrimSpace(left))
		if err != nil || n < 1 || n > workbench.QuestionCount {
			return nil, fmt.Errorf("answer %q: question must be 1-%d", a, workbench.QuestionCount)
		}
		k, err := strconv.Atoi(strings.TrimSpace(right))
		if err != nil || k < 1 || k > workbench.ChoiceCount {
			return nil, fmt.Errorf("answer %q: choice must be 1-%d", a, workbench.ChoiceCount)
		}
		q, ok := p.Question(n)
		if !ok || k > len(q.Choices) {
			return nil, fmt.Errorf("answer %q: pattern has no such choice", a)
		}
		if _, dup := answers[n]; dup {
			return nil, fmt.Errorf("question %d answered twice", n)
		}
		answers[n] = q.Choices[k-1].ID
	}
	return answers, nil
}

func printScores(w io.Writer, doc workbench.Document, results []scoring.Result, top int) {
	winners := scoring.Winners(results)
	switch {
	case scoring.TopScore(results) == 0:
		fmt.Fprintln(w, "No fragrance scored.")
	case scoring.IsTie(results):
		fmt.Fprintf(w, "Tie between %d fragrances at %d points:\n", len(winners), scoring.TopScore(results))
	default:
		fmt.Fprintf(w, "Recommendation (%d points):\n", scoring.TopScore(results))
	}
	if scoring.TopScore(results) > 0 {
		for _, r := range winners {
			fmt.Fprintf(w, "  * %s\n", doc.FragranceName(r.FragranceID))
		}
	}

	if top < 0 || top > len(results) {
		top = len(results)
	}
	fmt.Fprintf(w, "\n%4s  %-28s  %5s  %s\n", "Rank", "Fragrance", "Score", "Matched")
	fmt.Fprintln(w, strings.Repeat("─", 60))
	for i, r := range results[:top] {
		matched := make([]string, len(r.MatchedQuestions))
		for j, n := range r.MatchedQuestions {
			matched[j] = "Q" + strconv.Itoa(n)
		}
		fmt.Fprintf(w, "%4d  %-28s  %5d  %s\n", i+1, clip(doc.FragranceName(r.FragranceID), 28), r.Score, strings.Join(matched, " "))
	}
}
