package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a prompt label and an optional
// validation rule applied on submit.
type TextInput struct {
	Model    textinput.Model
	Label    string
	Validate func(string) error
	err      error
}

// NewTextInput creates a focused text input prefilled with value.
func NewTextInput(label, placeholder, value string, maxWidth int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()

	if maxWidth > 0 {
		ti.CharLimit = maxWidth
	}

	return TextInput{
		Model: ti,
		Label: label,
	}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update forwards messages to the underlying input and clears a previous
// validation error.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		t.err = nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// Submit validates the current value. ok is false when the rule rejects
// it; the error is then shown under the input.
func (t *TextInput) Submit() (string, bool) {
	v := strings.TrimSpace(t.Model.Value())
	if t.Validate != nil {
		if err := t.Validate(v); err != nil {
			t.err = err
			return v, false
		}
	}
	return v, true
}

// View renders the label, the input and any validation error.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.Label != "" {
		view = lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(t.Label) + "\n" + view
	}
	if t.err != nil {
		view += "\n" + lipgloss.NewStyle().Foreground(theme.Error).Render("✗ "+t.err.Error())
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// NotBlank is a Validate rule rejecting empty input.
func NotBlank(what string) func(string) error {
	return func(s string) error {
		if s == "" {
			return blankError(what)
		}
		return nil
	}
}

type blankError string

func (e blankError) Error() string { return string(e) + " cannot be empty" }
