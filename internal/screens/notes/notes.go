// Package notes is the note list embedded in the editor and question
// screens.
package notes

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aromabench/internal/screens"
	"github.com/abhisek/aromabench/internal/ui/components"
	"github.com/abhisek/aromabench/internal/ui/layout"
	"github.com/abhisek/aromabench/internal/ui/theme"
	"github.com/abhisek/aromabench/internal/workbench"
)

// List shows the notes of one pattern attached to one question number
// (workbench.PatternLevel for the pattern itself) and adds or deletes them.
type List struct {
	env       screens.Env
	patternID string
	number    int
	notes     []workbench.Note
	selected  int

	adding  bool
	input   components.TextInput
	confirm components.Confirm
	status  string
}

// NewList creates a list for patternID's notes on question number.
func NewList(env screens.Env, patternID string, number int) List {
	return List{env: env, patternID: patternID, number: number}.Refresh()
}

// Refresh re-reads the notes from the workspace.
func (l List) Refresh() List {
	l.notes = nil
	if p, ok := l.env.WS.Document().Pattern(l.patternID); ok {
		l.notes = p.NotesFor(l.number)
	}
	if l.selected >= len(l.notes) {
		l.selected = len(l.notes) - 1
	}
	if l.selected < 0 {
		l.selected = 0
	}
	return l
}

// Notes returns the notes shown.
func (l List) Notes() []workbench.Note {
	return l.notes
}

// Capturing reports whether the list owns the keyboard.
func (l List) Capturing() bool {
	return l.adding || l.confirm.Active
}

// KeyHints returns the note bindings.
func (l List) KeyHints() []layout.KeyHint {
	if l.adding {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save note"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "n", Description: "Note"},
		{Key: "Tab", Description: "Next note"},
		{Key: "x", Description: "Delete note"},
	}
}

// Update handles n (add), tab (cycle) and x (delete).
func (l List) Update(msg tea.Msg) (List, tea.Cmd) {
	if m, ok := msg.(StatusMsg); ok {
		l.status = string(m)
		return l, nil
	}
	if l.confirm.Active {
		var cmd tea.Cmd
		l.confirm, cmd = l.confirm.Update(msg)
		return l, cmd
	}
	if l.adding {
		return l.updateInput(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}
	switch kmsg.String() {
	case "n":
		l.adding = true
		l.status = ""
		l.input = components.NewTextInput("New note", "what to remember", "", 200)
		l.input.Validate = components.NotBlank("note")
		return l, l.input.Init()
	case "tab":
		if len(l.notes) > 0 {
			l.selected = (l.selected + 1) % len(l.notes)
		}
	case "x":
		if l.selected < len(l.notes) {
			id := l.notes[l.selected].ID
			env, patternID := l.env, l.patternID
			l.confirm = l.confirm.Ask("Delete this note?", func() tea.Cmd {
				if err := env.WS.DeleteNote(env.Ctx(), patternID, id); err != nil {
					return func() tea.Msg { return StatusMsg(screens.Status(err)) }
				}
				return nil
			})
		}
	}
	return l, nil
}

// StatusMsg carries a failure from a deferred note action.
type StatusMsg string

func (l List) updateInput(msg tea.Msg) (List, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			l.adding = false
			return l, nil
		case "enter":
			text, ok := l.input.Submit()
			if !ok {
				return l, nil
			}
			l.adding = false
			_, err := l.env.WS.AddNote(l.env.Ctx(), l.patternID, l.number, text)
			l.status = screens.Status(err)
			l = l.Refresh()
			l.selected = len(l.notes) - 1
			return l, nil
		}
	}
	var cmd tea.Cmd
	l.input, cmd = l.input.Update(msg)
	return l, cmd
}

// View renders the notes, the input and the confirm prompt.
func (l List) View(width int) string {
	var b strings.Builder
	if len(l.notes) == 0 && !l.adding {
		b.WriteString("  " + theme.Hint.Render("No notes.") + "\n")
	}
	for i, n := range l.notes {
		prefix := "  • "
		style := theme.Body
		if i == l.selected {
			prefix = "  ▸ "
			style = theme.Selected
		}
		stamp := theme.Hint.Render(n.CreatedAt.Local().Format("Jan 02 15:04"))
		b.WriteString(style.Render(prefix+layout.Truncate(n.Text, width-24)) + "  " + stamp + "\n")
	}
	if l.adding {
		b.WriteString(theme.Card.Render(l.input.View()) + "\n")
	}
	if l.confirm.Active {
		b.WriteString("  " + l.confirm.View() + "\n")
	}
	b.WriteString(screens.StatusView(l.status))
	return b.String()
}
