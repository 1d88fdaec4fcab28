package history

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/router"
	"github.com/abhisek/aromabench/internal/screen"
	"github.com/abhisek/aromabench/internal/screens"
	"github.com/abhisek/aromabench/internal/store"
	"github.com/abhisek/aromabench/internal/ui/layout"
	"github.com/abhisek/aromabench/internal/ui/theme"
	"github.com/abhisek/aromabench/internal/workbench"
)

// MaxEvents is how many of the most recent events the screen loads.
const MaxEvents = 200

type historyLoadedMsg struct {
	Events []store.IntentEvent
	Err    error
}

// HistoryScreen lists recorded edits, newest first.
type HistoryScreen struct {
	env      screens.Env
	doc      workbench.Document
	kind     workbench.IntentKind // "" shows every kind
	events   []store.IntentEvent
	selected int
	expanded map[int64]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env screens.Env) *HistoryScreen {
	return &HistoryScreen{
		env:      env,
		doc:      env.WS.Document(),
		expanded: make(map[int64]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	env, kind := s.env, s.kind
	return func() tea.Msg {
		events, err := env.WS.History(env.Ctx(), store.QueryOpts{Kind: kind})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		if len(events) > MaxEvents {
			events = events[len(events)-MaxEvents:]
		}
		slices.Reverse(events)
		return historyLoadedMsg{Events: events}
	}
}

func (s *HistoryScreen) Title() string {
	if s.kind != "" {
		return "Activity: " + string(s.kind)
	}
	return "Activity"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "f", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

// nextKind cycles "" -> each intent kind -> "".
func nextKind(k workbench.IntentKind) workbench.IntentKind {
	kinds := workbench.AllIntentKinds()
	if k == "" {
		return kinds[0]
	}
	i := slices.Index(kinds, k)
	if i < 0 || i == len(kinds)-1 {
		return ""
	}
	return kinds[i+1]
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.errMsg = ""
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.events = msg.Events
		s.selected = 0
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, router.Pop()
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			if s.selected < len(s.events) {
				seq := s.events[s.selected].Sequence
				s.expanded[seq] = !s.expanded[seq]
			}
		case "f":
			s.kind = nextKind(s.kind)
			s.loaded = false
			return s, s.Init()
		}
	}
	return s, nil
}

// Describe renders a one-line summary of ev, resolving names against doc
// where they still exist.
func Describe(ev store.IntentEvent, doc workbench.Document) string {
	var p struct {
		ID        string               `json:"id"`
		PatternID string               `json:"patternId"`
		NoteID    string               `json:"noteId"`
		Fragrance *workbench.Fragrance `json:"fragrance"`
		Pattern   *workbench.Pattern   `json:"pattern"`
		Question  *workbench.Question  `json:"question"`
		Note      *workbench.Note      `json:"note"`
	}
	_ = json.Unmarshal(ev.Payload, &p)

	patternName := func(id string) string {
		if pat, ok := doc.Pattern(id); ok {
			return fmt.Sprintf("%q", pat.Name)
		}
		return "a deleted pattern"
	}

	switch ev.Kind {
	case workbench.KindAddFragrance:
		if p.Fragrance != nil {
			return fmt.Sprintf("Added fragrance %q", p.Fragrance.Name)
		}
	case workbench.KindUpdateFragrance:
		if p.Fragrance != nil {
			return fmt.Sprintf("Edited fragrance %q", p.Fragrance.Name)
		}
	case workbench.KindDeleteFragrance:
		return "Deleted a fragrance"
	case workbench.KindAddPattern:
		if p.Pattern != nil {
			return fmt.Sprintf("Created pattern %q", p.Pattern.Name)
		}
	case workbench.KindUpdatePattern:
		if p.Pattern != nil {
			return fmt.Sprintf("Updated pattern %q", p.Pattern.Name)
		}
	case workbench.KindDeletePattern:
		return "Deleted a pattern"
	case workbench.KindUpsertQuestion:
		if p.Question != nil {
			return fmt.Sprintf("Edited Q%d of %s", p.Question.Number, patternName(ev.PatternID))
		}
	case workbench.KindAddNote:
		if p.Note != nil {
			where := "the pattern"
			if p.Note.QuestionNumber != workbench.PatternLevel {
				where = fmt.Sprintf("Q%d", p.Note.QuestionNumber)
			}
			return fmt.Sprintf("Noted on %s of %s", where, patternName(ev.PatternID))
		}
	case workbench.KindDeleteNote:
		return "Deleted a note from " + patternName(ev.PatternID)
	}
	return string(ev.Kind)
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return screens.Placeholder(width, "Loading activity...")
	}
	if len(s.events) == 0 {
		return screens.Placeholder(width, "Nothing recorded yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	start, end := layout.Window(len(s.events), s.selected, max(height-4, 3))
	for i := start; i < end; i++ {
		ev := s.events[i]
		prefix := "  "
		style := theme.Unselected
		if i == s.selected {
			prefix = "▸ "
			style = theme.Selected
		}
		stamp := theme.Hint.Render(ev.Timestamp.Local().Format("Jan 02 15:04"))
		b.WriteString(fmt.Sprintf("  %s  %s\n", stamp,
			style.Render(prefix+layout.Truncate(Describe(ev, s.doc), width-22))))

		if s.expanded[ev.Sequence] {
			var pretty bytes.Buffer
			if err := json.Indent(&pretty, ev.Payload, "      ", "  "); err != nil {
				pretty.Write(ev.Payload)
			}
			b.WriteString(theme.Hint.Render("      "+pretty.String()) + "\n")
		}
	}
	return b.String()
}
