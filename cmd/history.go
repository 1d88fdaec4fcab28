package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aromabench/internal/screens/history"
	"github.com/abhisek/aromabench/internal/store"
	"github.com/abhisek/aromabench/internal/workbench"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded edits, oldest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		kind, _ := cmd.Flags().GetString("kind")
		patternID, _ := cmd.Flags().GetString("pattern")

		if kind != "" && !slices.Contains(workbench.AllIntentKinds(), workbench.IntentKind(kind)) {
			return fmt.Errorf("unknown kind %q", kind)
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.ws.History(cmd.Context(), store.QueryOpts{
			Kind:      workbench.IntentKind(kind),
			PatternID: patternID,
		})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}
		if limit > 0 && len(events) > limit {
			events = events[len(events)-limit:]
		}
		printHistory(cmd.OutOrStdout(), s.ws.Document(), events)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 50, "Show only the most recent N events (0 = all)")
	historyCmd.Flags().String("kind", "", "Filter by kind (e.g. upsert_question)")
	historyCmd.Flags().String("pattern", "", "Filter by pattern id")
}

func printHistory(w io.Writer, doc workbench.Document, events []store.IntentEvent) {
	if len(events) == 0 {
		fmt.Fprintln(w, "No events found.")
		return
	}
	fmt.Fprintf(w, "%-6s  %-19s  %-17s  %s\n", "Seq", "Timestamp", "Kind", "Summary")
	fmt.Fprintln(w, strings.Repeat("─", 90))
	for _, e := range events {
		fmt.Fprintf(w, "%-6d  %-19s  %-17s  %s\n",
			e.Sequence,
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Kind,
			history.Describe(e, doc))
	}
}
