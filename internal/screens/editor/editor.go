package editor

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/router"
	"github.com/abhisek/aromabench/internal/screen"
	"github.com/abhisek/aromabench/internal/screens"
	"github.com/abhisek/aromabench/internal/screens/notes"
	"github.com/abhisek/aromabench/internal/screens/overview"
	"github.com/abhisek/aromabench/internal/screens/question"
	"github.com/abhisek/aromabench/internal/screens/simulate"
	"github.com/abhisek/aromabench/internal/ui/components"
	"github.com/abhisek/aromabench/internal/ui/layout"
	"github.com/abhisek/aromabench/internal/ui/theme"
	"github.com/abhisek/aromabench/internal/workbench"
)

// EditorScreen shows one pattern's questions in design order, last
// question first.
type EditorScreen struct {
	env       screens.Env
	patternID string
	pattern   workbench.Pattern
	found     bool
	selected  int // index into workbench.DesignOrder
	notes     notes.List
}

var _ screen.Screen = (*EditorScreen)(nil)
var _ screen.KeyHintProvider = (*EditorScreen)(nil)
var _ screen.InputCapturer = (*EditorScreen)(nil)
var _ screen.Resumer = (*EditorScreen)(nil)

// New creates an editor for the pattern with id patternID.
func New(env screens.Env, patternID string) *EditorScreen {
	s := &EditorScreen{
		env:       env,
		patternID: patternID,
		notes:     notes.NewList(env, patternID, workbench.PatternLevel),
	}
	s.refresh()
	return s
}

func (s *EditorScreen) refresh() {
	s.pattern, s.found = s.env.WS.Document().Pattern(s.patternID)
	s.notes = s.notes.Refresh()
}

func (s *EditorScreen) Init() tea.Cmd { return nil }

func (s *EditorScreen) Resume() tea.Cmd {
	s.refresh()
	return nil
}

func (s *EditorScreen) Title() string {
	if !s.found {
		return "Editor"
	}
	return "Editing: " + layout.Truncate(s.pattern.Name, 30)
}

func (s *EditorScreen) Capturing() bool {
	return s.notes.Capturing()
}

func (s *EditorScreen) KeyHints() []layout.KeyHint {
	if s.notes.Capturing() {
		return s.notes.KeyHints()
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Question"},
		{Key: "Enter", Description: "Open"},
	}
	hints = append(hints, s.notes.KeyHints()...)
	return append(hints,
		layout.KeyHint{Key: "s", Description: "Simulate"},
		layout.KeyHint{Key: "o", Description: "Overview"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

// SelectedNumber returns the question number under the cursor.
func (s *EditorScreen) SelectedNumber() int {
	return workbench.DesignOrder[s.selected]
}

func (s *EditorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.notes.Capturing() {
		var cmd tea.Cmd
		s.notes, cmd = s.notes.Update(msg)
		s.refresh()
		return s, cmd
	}

	if _, ok := msg.(notes.StatusMsg); ok {
		s.notes, _ = s.notes.Update(msg)
		return s, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, router.Pop()
	}
	if !s.found {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.selected > 0 {
			s.selected--
		}
	case "down", "j":
		if s.selected < len(workbench.DesignOrder)-1 {
			s.selected++
		}
	case "enter":
		return s, router.Push(question.New(s.env, s.patternID, s.SelectedNumber()))
	case "s":
		return s, router.Push(simulate.New(s.env, s.patternID))
	case "o":
		return s, router.Push(overview.New(s.env, s.patternID))
	default:
		var cmd tea.Cmd
		s.notes, cmd = s.notes.Update(msg)
		s.refresh()
		return s, cmd
	}
	return s, nil
}

func statusStyle(st workbench.Status) (string, lipgloss.Style) {
	switch st {
	case workbench.StatusComplete:
		return "●", theme.Complete
	case workbench.StatusPartial:
		return "◐", theme.Partial
	default:
		return "○", theme.Empty
	}
}

func (s *EditorScreen) View(width, height int) string {
	if !s.found {
		return screens.Placeholder(width, "This pattern no longer exists.")
	}

	var b strings.Builder
	b.WriteString("\n")
	bar := components.NewProgressBar("Ready to ask", workbench.Progress(s.pattern), workbench.QuestionCount, true, 50)
	b.WriteString("  " + bar.View() + "\n\n")

	for i, n := range workbench.DesignOrder {
		q, _ := s.pattern.Question(n)
		icon, st := statusStyle(workbench.QuestionStatus(q))

		channel := ""
		if c, ok := workbench.ChannelFor(n); ok {
			channel = c.Label
		}

		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}

		text := q.Text
		if text == "" {
			text = "(no text)"
		}
		line := fmt.Sprintf("%sQ%d %-10s", prefix, n, channel)
		detail := fmt.Sprintf("%d assigned", workbench.AssignedCount(q))
		if k := len(s.pattern.NotesFor(n)); k > 0 {
			detail += fmt.Sprintf(", %d notes", k)
		}
		b.WriteString("  " + st.Render(icon) + " " + style.Render(line) + " " +
			theme.Body.Render(layout.Truncate(text, width-50)) + "  " + theme.Hint.Render(detail) + "\n")
	}

	if c, ok := workbench.ChannelFor(s.SelectedNumber()); ok {
		b.WriteString("\n  " + theme.Hint.Render(c.Description) + "\n")
	}

	b.WriteString("\n" + theme.Heading.Render("  Pattern notes") + "\n")
	b.WriteString(s.notes.View(width))
	return b.String()
}
