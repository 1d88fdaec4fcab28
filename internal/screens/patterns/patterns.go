package patterns

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aromabench/internal/router"
	"github.com/abhisek/aromabench/internal/screen"
	"github.com/abhisek/aromabench/internal/screens"
	"github.com/abhisek/aromabench/internal/screens/editor"
	"github.com/abhisek/aromabench/internal/screens/overview"
	"github.com/abhisek/aromabench/internal/screens/simulate"
	"github.com/abhisek/aromabench/internal/ui/components"
	"github.com/abhisek/aromabench/internal/ui/layout"
	"github.com/abhisek/aromabench/internal/ui/theme"
	"github.com/abhisek/aromabench/internal/workbench"
)

// Mode selects what Enter does on a pattern.
type Mode int

const (
	ModeEdit Mode = iota
	ModeSimulate
)

// PatternScreen lists patterns with their progress.
type PatternScreen struct {
	env      screens.Env
	mode     Mode
	doc      workbench.Document
	selected int

	naming   bool
	renaming string // pattern id, "" when creating
	input    components.TextInput
	confirm  components.Confirm
	status   string
}

var _ screen.Screen = (*PatternScreen)(nil)
var _ screen.KeyHintProvider = (*PatternScreen)(nil)
var _ screen.InputCapturer = (*PatternScreen)(nil)
var _ screen.Resumer = (*PatternScreen)(nil)

// New creates a new PatternScreen.
func New(env screens.Env, mode Mode) *PatternScreen {
	s := &PatternScreen{env: env, mode: mode}
	s.refresh()
	return s
}

func (s *PatternScreen) refresh() {
	s.doc = s.env.WS.Document()
	if s.selected >= len(s.doc.Patterns) {
		s.selected = len(s.doc.Patterns) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (s *PatternScreen) Init() tea.Cmd { return nil }

func (s *PatternScreen) Resume() tea.Cmd {
	s.refresh()
	return nil
}

func (s *PatternScreen) Title() string {
	if s.mode == ModeSimulate {
		return "Simulate: pick a pattern"
	}
	return "Patterns"
}

func (s *PatternScreen) Capturing() bool {
	return s.naming || s.confirm.Active
}

func (s *PatternScreen) KeyHints() []layout.KeyHint {
	if s.naming {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	if s.mode == ModeSimulate {
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Simulate"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Edit"},
		{Key: "n", Description: "New"},
		{Key: "r", Description: "Rename"},
		{Key: "c", Description: "Copy"},
		{Key: "x", Description: "Delete"},
		{Key: "s", Description: "Simulate"},
		{Key: "o", Description: "Overview"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *PatternScreen) current() (workbench.Pattern, bool) {
	if s.selected < 0 || s.selected >= len(s.doc.Patterns) {
		return workbench.Pattern{}, false
	}
	return s.doc.Patterns[s.selected], true
}

func (s *PatternScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.confirm.Active {
		var cmd tea.Cmd
		s.confirm, cmd = s.confirm.Update(msg)
		return s, cmd
	}
	if s.naming {
		return s.updateName(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, router.Pop()
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
		return s, nil
	case "down", "j":
		if s.selected < len(s.doc.Patterns)-1 {
			s.selected++
		}
		return s, nil
	case "enter":
		p, ok := s.current()
		if !ok {
			return s, nil
		}
		if s.mode == ModeSimulate {
			return s, router.Push(simulate.New(s.env, p.ID))
		}
		return s, router.Push(editor.New(s.env, p.ID))
	}

	if s.mode == ModeSimulate {
		return s, nil
	}

	switch kmsg.String() {
	case "n":
		s.openName("", "")
		return s, s.input.Init()
	case "r":
		if p, ok := s.current(); ok {
			s.openName(p.ID, p.Name)
			return s, s.input.Init()
		}
	case "c":
		if p, ok := s.current(); ok {
			_, err := s.env.WS.DuplicatePattern(s.env.Ctx(), p.ID)
			s.status = screens.Status(err)
			s.refresh()
			s.selected = len(s.doc.Patterns) - 1
		}
	case "x", "delete":
		if p, ok := s.current(); ok {
			id := p.ID
			s.confirm = s.confirm.Ask(fmt.Sprintf("Delete pattern %q?", p.Name), func() tea.Cmd {
				s.status = screens.Status(s.env.WS.DeletePattern(s.env.Ctx(), id))
				s.refresh()
				return nil
			})
		}
	case "s":
		if p, ok := s.current(); ok {
			return s, router.Push(simulate.New(s.env, p.ID))
		}
	case "o":
		if p, ok := s.current(); ok {
			return s, router.Push(overview.New(s.env, p.ID))
		}
	}
	return s, nil
}

func (s *PatternScreen) openName(id, name string) {
	s.naming = true
	s.renaming = id
	s.status = ""
	s.input = components.NewTextInput("Pattern name", "e.g. Spring launch", name, 60)
	s.input.Validate = components.NotBlank("name")
}

func (s *PatternScreen) updateName(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			s.naming = false
			return s, nil
		case "enter":
			name, ok := s.input.Submit()
			if !ok {
				return s, nil
			}
			s.naming = false
			ctx := s.env.Ctx()
			if s.renaming != "" {
				s.status = screens.Status(s.env.WS.RenamePattern(ctx, s.renaming, name))
				s.refresh()
				return s, nil
			}
			p, err := s.env.WS.NewPattern(ctx, name)
			s.status = screens.Status(err)
			s.refresh()
			s.selected = len(s.doc.Patterns) - 1
			return s, router.Push(editor.New(s.env, p.ID))
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *PatternScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	if len(s.doc.Patterns) == 0 {
		hint := "No patterns yet. Press n to create one."
		if s.mode == ModeSimulate {
			hint = "No patterns to simulate yet."
		}
		b.WriteString(screens.Placeholder(width, hint) + "\n")
	}

	rows := (height - 8) / 2
	start, end := layout.Window(len(s.doc.Patterns), s.selected, rows)
	for i := start; i < end; i++ {
		p := s.doc.Patterns[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}

		status := theme.Empty.Render("draft")
		if workbench.Completed(p) {
			status = theme.Complete.Render("complete")
		}
		b.WriteString("  " + style.Render(prefix+layout.Truncate(p.Name, 40)) + "  " + status +
			"  " + theme.Hint.Render("updated "+p.UpdatedAt.Local().Format("Jan 02 15:04")) + "\n")

		bar := components.NewProgressBar("", workbench.Progress(p), workbench.QuestionCount, true, 40)
		b.WriteString("      " + bar.View() + "\n")
	}

	if s.naming {
		b.WriteString("\n" + theme.Card.Render(s.input.View()) + "\n")
	}
	if s.confirm.Active {
		b.WriteString("\n  " + s.confirm.View() + "\n")
	}
	b.WriteString(screens.StatusView(s.status))
	return b.String()
}
