package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aromabench/internal/workbench"
)

var patternCmd = &cobra.Command{
	Use:   "pattern",
	Short: "Browse quiz patterns",
}

var patternListCmd = &cobra.Command{
	Use:   "list",
	Short: "List patterns with their progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		printPatterns(cmd.OutOrStdout(), s.ws.Document())
		return nil
	},
}

var patternShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print every question of a pattern",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		return printPattern(cmd.OutOrStdout(), s.ws.Document(), args[0])
	},
}

func init() {
	patternCmd.AddCommand(patternListCmd)
	patternCmd.AddCommand(patternShowCmd)
}

func printPatterns(w io.Writer, doc workbench.Document) {
	if len(doc.Patterns) == 0 {
		fmt.Fprintln(w, "No patterns yet.")
		return
	}

	fmt.Fprintf(w, "%-36s  %-28s  %5s  %-8s  %s\n", "ID", "Name", "Ready", "Status", "Updated")
	fmt.Fprintln(w, strings.Repeat("─", 100))
	for _, p := range doc.Patterns {
		status := "draft"
		if workbench.Completed(p) {
			status = "complete"
		}
		fmt.Fprintf(w, "%-36s  %-28s  %3d/%d  %-8s  %s\n",
			p.ID, clip(p.Name, 28), workbench.Progress(p), workbench.QuestionCount, status,
			p.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "\n%d patterns, %d complete\n", len(doc.Patterns), len(workbench.CompletedPatterns(doc)))
}

func printPattern(w io.Writer, doc workbench.Document, id string) error {
	p, ok := doc.Pattern(id)
	if !ok {
		return fmt.Errorf("pattern %q not found", id)
	}

	sep := strings.Repeat("─", 60)
	fmt.Fprintf(w, "%s\n%s\n", p.Name, sep)

	for _, q := range p.SortedQuestions() {
		channel := ""
		if c, ok := workbench.ChannelFor(q.Number); ok {
			channel = c.Label
		}
		fmt.Fprintf(w, "\nQ%d [%s] (%s)\n  %s\n", q.Number, channel, workbench.QuestionStatus(q), q.Text)
		for i, c := range q.Choices {
			names := make([]string, 0, len(c.FragranceIDs))
			for _, fid := range c.FragranceIDs {
				name := doc.FragranceName(fid)
				if name == "" {
					name = "(missing " + fid + ")"
				}
				names = append(names, name)
			}
			fmt.Fprintf(w, "  %d. %-40s -> %s\n", i+1, c.Label, strings.Join(names, ", "))
		}
		for _, n := range p.NotesFor(q.Number) {
			fmt.Fprintf(w, "  note: %s\n", n.Text)
		}
	}

	if notes := p.NotesFor(workbench.PatternLevel); len(notes) > 0 {
		fmt.Fprintf(w, "\nNotes\n")
		for _, n := range notes {
			fmt.Fprintf(w, "  - %s\n", n.Text)
		}
	}

	for _, v := range workbench.CheckExclusive(p) {
		fmt.Fprintf(w, "\nwarning: %s\n", v.Error())
	}
	return nil
}
