package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/abhisek/aromabench/internal/store"
)

// snapshotLister is implemented by backends that keep every saved document.
type snapshotLister interface {
	History(ctx context.Context, limit int) ([]store.SnapshotInfo, error)
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List saved document snapshots, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		lister, ok := s.backend.Documents().(snapshotLister)
		if !ok {
			return errors.New("the configured storage driver keeps only the latest document")
		}
		infos, err := lister.History(cmd.Context(), limit)
		if err != nil {
			return err
		}
		printSnapshots(cmd.OutOrStdout(), infos)
		return nil
	},
}

func init() {
	snapshotsCmd.Flags().Int("limit", 20, "Show at most N snapshots (0 = all)")
}

func printSnapshots(w io.Writer, infos []store.SnapshotInfo) {
	if len(infos) == 0 {
		fmt.Fprintln(w, "No snapshots saved.")
		return
	}
	fmt.Fprintf(w, "%-6s  %-19s  %s\n", "Seq", "Saved", "Size")
	for _, in := range infos {
		fmt.Fprintf(w, "%-6d  %-19s  %s\n",
			in.Sequence,
			in.SavedAt.Local().Format("2006-01-02 15:04:05"),
			humanize.Bytes(uint64(in.Size)))
	}
}
