// Package screens holds what every TUI screen shares: access to the
// workspace and a few rendering helpers.
package screens

import (
	"context"
	"errors"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/ui/theme"
	"github.com/abhisek/aromabench/internal/workspace"
)

// DefaultPreviewLimit is how many ranked fragrances the simulator preview
// shows when the config does not say.
const DefaultPreviewLimit = 8

// Env is passed to every screen constructor.
type Env struct {
	WS           *workspace.Workspace
	PreviewLimit int
}

// Ctx returns the context screens use for workspace calls.
func (e Env) Ctx() context.Context {
	return context.Background()
}

// Limit returns PreviewLimit or the default.
func (e Env) Limit() int {
	if e.PreviewLimit > 0 {
		return e.PreviewLimit
	}
	return DefaultPreviewLimit
}

// Status turns a workspace error into the one-line message screens show.
// Save failures keep the edit, so they read as a warning.
func Status(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, workspace.ErrNotFound):
		return "Not found: " + err.Error()
	default:
		return "Not saved: " + err.Error()
	}
}

// Placeholder renders a centered dim message, used for empty lists.
func Placeholder(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
		Render("\n\n" + msg)
}

// StatusView renders a status message, or nothing.
func StatusView(status string) string {
	if status == "" {
		return ""
	}
	return "\n" + theme.ErrorText.Render(status)
}
