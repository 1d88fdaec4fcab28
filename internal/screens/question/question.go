package question

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/router"
	"github.com/abhisek/aromabench/internal/screen"
	"github.com/abhisek/aromabench/internal/screens"
	"github.com/abhisek/aromabench/internal/screens/notes"
	"github.com/abhisek/aromabench/internal/ui/components"
	"github.com/abhisek/aromabench/internal/ui/layout"
	"github.com/abhisek/aromabench/internal/ui/theme"
	"github.com/abhisek/aromabench/internal/workbench"
)

type editStep int

const (
	editNone editStep = iota
	editText
	editPickChoice
	editLabel
)

// QuestionScreen edits one question: its text, its choice labels and which
// fragrances each choice scores.
type QuestionScreen struct {
	env       screens.Env
	patternID string
	number    int

	doc      workbench.Document
	question workbench.Question
	found    bool

	catalog        []workbench.Fragrance
	selected       int
	unassignedOnly bool

	step    editStep
	choice  int
	input   components.TextInput
	picker  components.ChoicePicker
	confirm components.Confirm
	notes   notes.List
	status  string
}

var _ screen.Screen = (*QuestionScreen)(nil)
var _ screen.KeyHintProvider = (*QuestionScreen)(nil)
var _ screen.InputCapturer = (*QuestionScreen)(nil)
var _ screen.Resumer = (*QuestionScreen)(nil)

// New creates a screen for question number of the pattern patternID.
func New(env screens.Env, patternID string, number int) *QuestionScreen {
	s := &QuestionScreen{
		env:       env,
		patternID: patternID,
		number:    number,
		notes:     notes.NewList(env, patternID, number),
	}
	s.refresh()
	return s
}

func (s *QuestionScreen) refresh() {
	s.doc = s.env.WS.Document()
	s.found = false
	if p, ok := s.doc.Pattern(s.patternID); ok {
		s.question, s.found = p.Question(s.number)
	}
	s.catalog = s.doc.Fragrances
	if s.unassignedOnly {
		s.catalog = workbench.Unassigned(s.question, s.doc.Fragrances)
	}
	if s.selected >= len(s.catalog) {
		s.selected = len(s.catalog) - 1
	}
	if s.selected < 0 {
		s.selected = 0
	}
	s.notes = s.notes.Refresh()
}

func (s *QuestionScreen) Init() tea.Cmd { return nil }

func (s *QuestionScreen) Resume() tea.Cmd {
	s.refresh()
	return nil
}

func (s *QuestionScreen) Title() string {
	if c, ok := workbench.ChannelFor(s.number); ok {
		return fmt.Sprintf("Q%d · %s", s.number, c.Label)
	}
	return fmt.Sprintf("Q%d", s.number)
}

func (s *QuestionScreen) Capturing() bool {
	return s.step != editNone || s.confirm.Active || s.notes.Capturing()
}

func (s *QuestionScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.step == editPickChoice:
		return []layout.KeyHint{{Key: "a-d", Description: "Choice"}, {Key: "Esc", Description: "Cancel"}}
	case s.step != editNone:
		return []layout.KeyHint{{Key: "Enter", Description: "Save"}, {Key: "Esc", Description: "Cancel"}}
	case s.notes.Capturing():
		return s.notes.KeyHints()
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Fragrance"},
		{Key: "1-4", Description: "Assign"},
		{Key: "0", Description: "Unassign"},
		{Key: "u", Description: "Unassigned only"},
		{Key: "t", Description: "Text"},
		{Key: "l", Description: "Label"},
		{Key: "c", Description: "Clear"},
	}
	hints = append(hints, s.notes.KeyHints()...)
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Back"})
}

// SelectedFragrance returns the fragrance under the cursor.
func (s *QuestionScreen) SelectedFragrance() (workbench.Fragrance, bool) {
	if s.selected < len(s.catalog) {
		return s.catalog[s.selected], true
	}
	return workbench.Fragrance{}, false
}

func (s *QuestionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.confirm.Active {
		var cmd tea.Cmd
		s.confirm, cmd = s.confirm.Update(msg)
		s.refresh()
		return s, cmd
	}
	switch s.step {
	case editPickChoice:
		return s.updatePicker(msg)
	case editText, editLabel:
		return s.updateInput(msg)
	}
	if _, ok := msg.(notes.StatusMsg); ok || s.notes.Capturing() {
		var cmd tea.Cmd
		s.notes, cmd = s.notes.Update(msg)
		s.refresh()
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()
	if key == "esc" {
		return s, router.Pop()
	}
	if !s.found {
		return s, nil
	}

	switch key {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(s.catalog)-1 {
			s.selected++
		}
	case "1", "2", "3", "4":
		if f, ok := s.SelectedFragrance(); ok {
			err := s.env.WS.Assign(s.env.Ctx(), s.patternID, s.number, f.ID, int(key[0]-'1'))
			s.status = screens.Status(err)
			s.refresh()
		}
	case "0", "backspace":
		if f, ok := s.SelectedFragrance(); ok {
			s.status = ""
			for i, c := range s.question.Choices {
				if c.Has(f.ID) {
					if err := s.env.WS.Unassign(s.env.Ctx(), s.patternID, s.number, f.ID, i); err != nil {
						s.status = screens.Status(err)
					}
				}
			}
			s.refresh()
		}
	case "u":
		s.unassignedOnly = !s.unassignedOnly
		s.selected = 0
		s.refresh()
	case "t":
		s.step = editText
		s.input = components.NewTextInput("Question text", "what the quiz taker reads", s.question.Text, 200)
		return s, s.input.Init()
	case "l":
		s.step = editPickChoice
		labels := make([]string, len(s.question.Choices))
		for i, c := range s.question.Choices {
			labels[i] = c.Label
		}
		s.picker = components.NewChoicePicker("Which choice?", labels)
	case "c":
		env, patternID, number := s.env, s.patternID, s.number
		s.confirm = s.confirm.Ask("Clear text, labels and assignments?", func() tea.Cmd {
			if err := env.WS.EditQuestion(env.Ctx(), patternID, number, workbench.ClearQuestion); err != nil {
				return func() tea.Msg { return notes.StatusMsg(screens.Status(err)) }
			}
			return nil
		})
	default:
		var cmd tea.Cmd
		s.notes, cmd = s.notes.Update(msg)
		s.refresh()
		return s, cmd
	}
	return s, nil
}

func (s *QuestionScreen) updatePicker(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		s.step = editNone
		return s, nil
	}
	s.picker, _ = s.picker.Update(msg)
	if i, ok := s.picker.Picked(); ok {
		s.choice = i
		s.step = editLabel
		s.input = components.NewTextInput(
			fmt.Sprintf("Label for choice %s", theme.ChoiceLetter(i)), "what the quiz taker picks",
			s.question.Choices[i].Label, 120)
		return s, s.input.Init()
	}
	return s, nil
}

func (s *QuestionScreen) updateInput(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			s.step = editNone
			return s, nil
		case "enter":
			value, ok := s.input.Submit()
			if !ok {
				return s, nil
			}
			var err error
			if s.step == editText {
				err = s.env.WS.EditQuestion(s.env.Ctx(), s.patternID, s.number, func(q workbench.Question) workbench.Question {
					return workbench.SetQuestionText(q, value)
				})
			} else {
				choice := s.choice
				err = s.env.WS.EditQuestion(s.env.Ctx(), s.patternID, s.number, func(q workbench.Question) workbench.Question {
					return workbench.SetChoiceLabel(q, choice, value)
				})
			}
			s.step = editNone
			s.status = screens.Status(err)
			s.refresh()
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *QuestionScreen) View(width, height int) string {
	if !s.found {
		return screens.Placeholder(width, "This question no longer exists.")
	}

	var b strings.Builder
	b.WriteString("\n")
	if c, ok := workbench.ChannelFor(s.number); ok {
		b.WriteString("  " + theme.Hint.Render(c.Description) + "\n")
	}
	text := s.question.Text
	if text == "" {
		text = "(no text)"
	}
	b.WriteString("  " + theme.Title.Render(layout.Truncate(text, width-4)) + "\n\n")

	b.WriteString(s.choicesView(width))
	b.WriteString("\n" + s.catalogView(width, height))

	switch s.step {
	case editPickChoice:
		b.WriteString("\n" + theme.Card.Render(s.picker.View()) + "\n")
	case editText, editLabel:
		b.WriteString("\n" + theme.Card.Render(s.input.View()) + "\n")
	}
	if s.confirm.Active {
		b.WriteString("\n  " + s.confirm.View() + "\n")
	}

	b.WriteString("\n" + theme.Heading.Render("  Notes") + "\n")
	b.WriteString(s.notes.View(width))
	b.WriteString(screens.StatusView(s.status))
	return b.String()
}

func (s *QuestionScreen) choicesView(width int) string {
	var b strings.Builder
	for i, c := range s.question.Choices {
		letter := lipgloss.NewStyle().Foreground(theme.ChoiceColor(i)).Bold(true).
			Render(fmt.Sprintf("%d %s)", i+1, theme.ChoiceLetter(i)))
		label := c.Label
		if label == "" {
			label = "(no label)"
		}
		names := make([]string, 0, len(c.FragranceIDs))
		for _, id := range c.FragranceIDs {
			if name := s.doc.FragranceName(id); name != "" {
				names = append(names, name)
			} else {
				names = append(names, "?"+id)
			}
		}
		assigned := theme.Hint.Render("nothing assigned")
		if len(names) > 0 {
			assigned = theme.Body.Render(layout.Truncate(strings.Join(names, ", "), width-10))
		}
		b.WriteString(fmt.Sprintf("  %s %s\n      %s\n", letter, theme.Body.Render(label), assigned))
	}
	return b.String()
}

func (s *QuestionScreen) catalogView(width, height int) string {
	var b strings.Builder
	heading := "  Catalog"
	if s.unassignedOnly {
		heading += " (unassigned)"
	}
	b.WriteString(theme.Heading.Render(heading) + "\n")
	if len(s.catalog) == 0 {
		b.WriteString("  " + theme.Hint.Render("Nothing to show.") + "\n")
		return b.String()
	}

	start, end := layout.Window(len(s.catalog), s.selected, max(height/3, 3))
	for i := start; i < end; i++ {
		f := s.catalog[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		tag := theme.Hint.Render("·")
		for ci, c := range s.question.Choices {
			if c.Has(f.ID) {
				tag = lipgloss.NewStyle().Foreground(theme.ChoiceColor(ci)).Render(theme.ChoiceLetter(ci))
			}
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", tag, style.Render(prefix+layout.Truncate(f.Name, width-8))))
	}
	return b.String()
}
