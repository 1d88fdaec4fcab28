package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/aromabench/internal/workbench"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the document with the default catalog and no patterns",
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return errors.New("reset discards every pattern; run again with --yes to confirm")
		}

		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		doc := workbench.DefaultDocument()
		if err := s.ws.Replace(cmd.Context(), doc); err != nil {
			return err
		}
		s.logger.Info("document reset")
		fmt.Fprintf(cmd.OutOrStdout(), "Reset to %d default fragrances.\n", len(doc.Fragrances))
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
