// Package screen defines the contract between the app shell and its pages.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aromabench/internal/ui/layout"
)

// Screen is one page of the TUI stack. The app draws the header and footer;
// a screen only draws its body.
type Screen interface {
	// Init runs once when the screen is pushed.
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	// View draws the body into width x height cells.
	View(width, height int) string
	// Title is the screen's breadcrumb segment.
	Title() string
}

// KeyHintProvider supplies the footer hints for the active screen.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Resumer is implemented by screens that re-read workspace state when they
// become active again after the screen above them is popped.
type Resumer interface {
	Resume() tea.Cmd
}

// InputCapturer is implemented by screens with text entry. While Capturing
// reports true, Esc and printable keys go to the screen instead of the
// global bindings.
type InputCapturer interface {
	Capturing() bool
}

// IsCapturing reports whether s is currently taking text input.
func IsCapturing(s Screen) bool {
	c, ok := s.(InputCapturer)
	return ok && c.Capturing()
}
