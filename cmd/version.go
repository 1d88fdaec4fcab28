package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is stamped by the release build with
// -ldflags "-X github.com/abhisek/aromabench/cmd.version=...".
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the aromabench build version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "aromabench", version)
	},
}
