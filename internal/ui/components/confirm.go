package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/ui/theme"
)

// Confirm is a yes/no prompt for destructive actions.
type Confirm struct {
	Question string
	Active   bool
	OnYes    func() tea.Cmd
}

// Ask opens the prompt.
func (c Confirm) Ask(question string, onYes func() tea.Cmd) Confirm {
	return Confirm{Question: question, Active: true, OnYes: onYes}
}

// Update answers the prompt on y/enter or dismisses it on n/esc.
func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.Active {
		return c, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "y", "enter":
			c.Active = false
			if c.OnYes != nil {
				return c, c.OnYes()
			}
		case "n", "esc":
			c.Active = false
		}
	}
	return c, nil
}

// View renders the prompt, or nothing when inactive.
func (c Confirm) View() string {
	if !c.Active {
		return ""
	}
	q := lipgloss.NewStyle().Foreground(theme.Warning).Bold(true).Render(c.Question)
	return q + "  " + theme.ButtonActive.Render("y") + " " + theme.ButtonInactive.Render("n")
}
