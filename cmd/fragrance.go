package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/aromabench/internal/workbench"
)

var fragranceCmd = &cobra.Command{
	Use:   "fragrance",
	Short: "Browse the fragrance catalog",
}

var fragranceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the catalog in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		printFragrances(cmd.OutOrStdout(), s.ws.Document())
		return nil
	},
}

func init() {
	fragranceCmd.AddCommand(fragranceListCmd)
}

// printFragrances writes the catalog with how many patterns use each entry.
func printFragrances(w io.Writer, doc workbench.Document) {
	fmt.Fprintf(w, "%-36s  %-28s  %5s  %s\n", "ID", "Name", "Used", "Description")
	fmt.Fprintln(w, strings.Repeat("─", 110))

	for _, f := range doc.Fragrances {
		used := 0
		for _, p := range doc.Patterns {
			if len(workbench.Positions(p, f.ID)) > 0 {
				used++
			}
		}
		fmt.Fprintf(w, "%-36s  %-28s  %5d  %s\n", f.ID, clip(f.Name, 28), used, clip(f.Description, 40))
	}
	fmt.Fprintf(w, "\n%d fragrances\n", len(doc.Fragrances))
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
