package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/aromabench/internal/app"
	"github.com/abhisek/aromabench/internal/screens"
)

// runApp opens the workspace and launches the TUI.
func runApp(cmd *cobra.Command) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	return app.Run(screens.Env{
		WS:           s.ws,
		PreviewLimit: s.cfg.Simulator.PreviewLimit,
	})
}
