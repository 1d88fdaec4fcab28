package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/ui/theme"
)

// ChoicePicker is a lettered single-choice selector. Options are picked
// with the arrow keys and Enter, or directly with a-d.
type ChoicePicker struct {
	Prompt   string
	Options  []string
	Selected int
	Chosen   int // -1 until an option is picked
}

// NewChoicePicker creates a picker with nothing chosen.
func NewChoicePicker(prompt string, options []string) ChoicePicker {
	return ChoicePicker{
		Prompt:  prompt,
		Options: options,
		Chosen:  -1,
	}
}

// Update handles keyboard navigation and selection.
func (m ChoicePicker) Update(msg tea.Msg) (ChoicePicker, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Options) == 0 {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Chosen = m.Selected
	default:
		if len(key) == 1 && key[0] >= 'a' && int(key[0]-'a') < len(m.Options) {
			m.Selected = int(key[0] - 'a')
			m.Chosen = m.Selected
		}
	}
	return m, nil
}

// Picked returns the chosen index and clears it, so one pick is consumed
// once.
func (m *ChoicePicker) Picked() (int, bool) {
	if m.Chosen < 0 {
		return 0, false
	}
	i := m.Chosen
	m.Chosen = -1
	return i, true
}

// View renders the prompt and lettered options.
func (m ChoicePicker) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Prompt))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == m.Selected {
			prefix = "▸ "
			style = theme.Selected
		}
		letter := lipgloss.NewStyle().Foreground(theme.ChoiceColor(i)).Bold(true).
			Render(theme.ChoiceLetter(i) + ")")
		b.WriteString(fmt.Sprintf("%s%s  %s\n", style.Render(prefix), letter, style.Render(opt)))
	}
	return b.String()
}
