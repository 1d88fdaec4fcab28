package fragrances

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/router"
	"github.com/abhisek/aromabench/internal/screen"
	"github.com/abhisek/aromabench/internal/screens"
	"github.com/abhisek/aromabench/internal/ui/components"
	"github.com/abhisek/aromabench/internal/ui/layout"
	"github.com/abhisek/aromabench/internal/ui/theme"
	"github.com/abhisek/aromabench/internal/workbench"
)

// formStep tracks the two-field add/edit form.
type formStep int

const (
	formClosed formStep = iota
	formName
	formDescription
)

// FragranceScreen lists the catalog and edits it.
type FragranceScreen struct {
	env      screens.Env
	doc      workbench.Document
	selected int

	step    formStep
	editing string // id being edited, "" when adding
	name    string
	input   components.TextInput
	confirm components.Confirm
	status  string
}

var _ screen.Screen = (*FragranceScreen)(nil)
var _ screen.KeyHintProvider = (*FragranceScreen)(nil)
var _ screen.InputCapturer = (*FragranceScreen)(nil)

// New creates a new FragranceScreen.
func New(env screens.Env) *FragranceScreen {
	s := &FragranceScreen{env: env}
	s.refresh()
	return s
}

func (s *FragranceScreen) refresh() {
	s.doc = s.env.WS.Document()
	if s.selected >= len(s.doc.Fragrances) {
		s.selected = len(s.doc.Fragrances) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
}

func (s *FragranceScreen) Init() tea.Cmd { return nil }

func (s *FragranceScreen) Title() string { return "Fragrances" }

func (s *FragranceScreen) Capturing() bool {
	return s.step != formClosed || s.confirm.Active
}

func (s *FragranceScreen) KeyHints() []layout.KeyHint {
	if s.step != formClosed {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "a", Description: "Add"},
		{Key: "e", Description: "Edit"},
		{Key: "x", Description: "Delete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *FragranceScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.confirm.Active {
		var cmd tea.Cmd
		s.confirm, cmd = s.confirm.Update(msg)
		return s, cmd
	}
	if s.step != formClosed {
		return s.updateForm(msg)
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
	case "down", "j":
		if s.selected < len(s.doc.Fragrances)-1 {
			s.selected++
		}
	case "a":
		s.openForm("", "")
		return s, s.input.Init()
	case "e":
		if f, ok := s.current(); ok {
			s.openForm(f.ID, f.Name)
			return s, s.input.Init()
		}
	case "x", "delete":
		if f, ok := s.current(); ok {
			id := f.ID
			s.confirm = s.confirm.Ask(fmt.Sprintf("Delete %s? Choices keep the reference.", f.Name), func() tea.Cmd {
				s.status = screens.Status(s.env.WS.DeleteFragrance(s.env.Ctx(), id))
				s.refresh()
				return nil
			})
		}
	}
	return s, nil
}

func (s *FragranceScreen) current() (workbench.Fragrance, bool) {
	if s.selected < 0 || s.selected >= len(s.doc.Fragrances) {
		return workbench.Fragrance{}, false
	}
	return s.doc.Fragrances[s.selected], true
}

func (s *FragranceScreen) openForm(id, name string) {
	s.step = formName
	s.editing = id
	s.status = ""
	s.input = components.NewTextInput("Name", "e.g. Neroli", name, 40)
	s.input.Validate = components.NotBlank("name")
}

func (s *FragranceScreen) updateForm(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			s.step = formClosed
			return s, nil
		case "enter":
			v, ok := s.input.Submit()
			if !ok {
				return s, nil
			}
			if s.step == formName {
				s.name = v
				s.step = formDescription
				desc := ""
				if f, ok := s.doc.Fragrance(s.editing); ok {
					desc = f.Description
				}
				s.input = components.NewTextInput("Description", "a few words", desc, 80)
				return s, s.input.Init()
			}
			s.save(v)
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *FragranceScreen) save(description string) {
	s.step = formClosed
	ctx := s.env.Ctx()
	if s.editing == "" {
		_, err := s.env.WS.AddFragrance(ctx, s.name, description)
		s.status = screens.Status(err)
		s.refresh()
		s.selected = len(s.doc.Fragrances) - 1
		return
	}
	f, _ := s.doc.Fragrance(s.editing)
	f.Name = s.name
	f.Description = description
	s.status = screens.Status(s.env.WS.UpdateFragrance(ctx, f))
	s.refresh()
}

// usage counts how many choices reference each fragrance id.
func usage(doc workbench.Document) map[string]int {
	out := make(map[string]int)
	for _, p := range doc.Patterns {
		for _, q := range p.Questions {
			for _, c := range q.Choices {
				for _, id := range c.FragranceIDs {
					out[id]++
				}
			}
		}
	}
	return out
}

func (s *FragranceScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString("\n")

	if len(s.doc.Fragrances) == 0 {
		b.WriteString(screens.Placeholder(width, "The catalog is empty. Press a to add a fragrance."))
	}

	used := usage(s.doc)
	rows := height - 8
	start, end := layout.Window(len(s.doc.Fragrances), s.selected, rows)
	nameWidth := 22
	for i := start; i < end; i++ {
		f := s.doc.Fragrances[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		name := fmt.Sprintf("%-*s", nameWidth, layout.Truncate(f.Name, nameWidth))
		desc := layout.Truncate(f.Description, width-nameWidth-20)
		line := style.Render(prefix+name) + "  " + theme.Hint.Render(desc)
		if n := used[f.ID]; n > 0 {
			line += "  " + lipgloss.NewStyle().Foreground(theme.Secondary).Render(fmt.Sprintf("×%d", n))
		}
		b.WriteString("  " + line + "\n")
	}

	if s.step != formClosed {
		b.WriteString("\n" + theme.Card.Render(s.input.View()) + "\n")
	}
	if s.confirm.Active {
		b.WriteString("\n  " + s.confirm.View() + "\n")
	}
	b.WriteString(screens.StatusView(s.status))
	return b.String()
}
