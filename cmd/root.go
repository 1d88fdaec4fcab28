package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "aromabench",
	Short: "Fragrance quiz workbench",
	Long:  "aromabench: design 7-question fragrance quizzes in the terminal and see which fragrance each answer path recommends.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to the database file or badger directory (overrides AROMABENCH_DB and the config file)")
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file (default $XDG_CONFIG_HOME/aromabench/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(fragranceCmd)
	rootCmd.AddCommand(patternCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(snapshotsCmd)
}
