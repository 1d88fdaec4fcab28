package simulate

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aromabench/internal/router"
	"github.com/abhisek/aromabench/internal/scoring"
	"github.com/abhisek/aromabench/internal/screen"
	"github.com/abhisek/aromabench/internal/screens"
	"github.com/abhisek/aromabench/internal/simulator"
	"github.com/abhisek/aromabench/internal/ui/components"
	"github.com/abhisek/aromabench/internal/ui/layout"
	"github.com/abhisek/aromabench/internal/ui/theme"
	"github.com/abhisek/aromabench/internal/workbench"
)

// SimulateScreen plays a pattern the way a quiz taker would, with a live
// ranking beside the questions.
type SimulateScreen struct {
	env    screens.Env
	doc    workbench.Document
	sim    simulator.Simulation
	found  bool
	picker components.ChoicePicker
}

var _ screen.Screen = (*SimulateScreen)(nil)
var _ screen.KeyHintProvider = (*SimulateScreen)(nil)

// New starts a simulation of the pattern patternID on the current
// document. Later edits do not affect a running simulation.
func New(env screens.Env, patternID string) *SimulateScreen {
	s := &SimulateScreen{env: env, doc: env.WS.Document()}
	var p workbench.Pattern
	p, s.found = s.doc.Pattern(patternID)
	s.sim = simulator.New(p, s.doc.Fragrances)
	s.resetPicker()
	return s
}

// Simulation returns the current simulation state.
func (s *SimulateScreen) Simulation() simulator.Simulation {
	return s.sim
}

func (s *SimulateScreen) resetPicker() {
	q, ok := s.sim.Current()
	if !ok {
		return
	}
	choices := s.sim.Choices()
	labels := make([]string, len(choices))
	for i, c := range choices {
		labels[i] = c.Label
	}
	s.picker = components.NewChoicePicker(fmt.Sprintf("%d/%d  %s", s.sim.Step()+1, s.sim.Total(), q.Text), labels)
}

func (s *SimulateScreen) Init() tea.Cmd { return nil }

func (s *SimulateScreen) Title() string {
	if !s.found {
		return "Simulate"
	}
	return "Simulate: " + layout.Truncate(s.sim.Pattern().Name, 30)
}

func (s *SimulateScreen) KeyHints() []layout.KeyHint {
	if s.sim.Done() {
		return []layout.KeyHint{
			{Key: "⌫", Description: "Back one"},
			{Key: "r", Description: "Restart"},
			{Key: "Esc", Description: "Leave"},
		}
	}
	return []layout.KeyHint{
		{Key: "a-d", Description: "Answer"},
		{Key: "⌫", Description: "Back one"},
		{Key: "r", Description: "Restart"},
		{Key: "Esc", Description: "Leave"},
	}
}

func (s *SimulateScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc", "q":
		return s, router.Pop()
	case "backspace", "left":
		s.sim = s.sim.Back()
		s.resetPicker()
		return s, nil
	case "r":
		s.sim = s.sim.Reset()
		s.resetPicker()
		return s, nil
	}
	if s.sim.Done() {
		return s, nil
	}

	s.picker, _ = s.picker.Update(msg)
	if i, ok := s.picker.Picked(); ok {
		if choices := s.sim.Choices(); i < len(choices) {
			s.sim = s.sim.Answer(choices[i].ID)
			s.resetPicker()
		}
	}
	return s, nil
}

func (s *SimulateScreen) View(width, height int) string {
	if !s.found {
		return screens.Placeholder(width, "This pattern no longer exists.")
	}
	if s.sim.Total() == 0 {
		return screens.Placeholder(width, "No question is ready to ask yet.\nA question needs text and a labelled choice with a fragrance.")
	}

	var b strings.Builder
	b.WriteString("\n")
	bar := components.NewProgressBar("Answered", s.sim.Step(), s.sim.Total(), true, 40)
	b.WriteString("  " + bar.View() + "\n\n")

	if s.sim.Done() {
		b.WriteString(s.outcomeView(width))
	} else {
		b.WriteString(theme.Card.Render(s.picker.View()) + "\n")
	}

	b.WriteString("\n" + theme.Heading.Render("  Ranking") + "\n")
	b.WriteString(s.rankingView(s.sim.Scores(), width))
	return b.String()
}

func (s *SimulateScreen) outcomeView(width int) string {
	out := s.sim.Outcome()
	var b strings.Builder
	if out.TopScore == 0 {
		b.WriteString("  " + theme.Hint.Render("No fragrance scored. Assign fragrances to the choices first.") + "\n")
		return b.String()
	}
	heading := "Recommendation"
	if out.Tie {
		heading = fmt.Sprintf("Tie between %d fragrances", len(out.Winners))
	}
	b.WriteString("  " + theme.Title.Render(heading) + "\n")
	for _, w := range out.Winners {
		name := s.doc.FragranceName(w.FragranceID)
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			theme.Winner.Render("★ "+layout.Truncate(name, width-20)),
			theme.Hint.Render(fmt.Sprintf("%d/%d", w.Score, out.MaxScore))))
	}
	return b.String()
}

func (s *SimulateScreen) rankingView(results []scoring.Result, width int) string {
	var b strings.Builder
	limit := min(s.env.Limit(), len(results))
	for i, r := range results[:limit] {
		name := layout.Truncate(s.doc.FragranceName(r.FragranceID), 24)
		bar := strings.Repeat("■", r.Score)
		matched := ""
		if len(r.MatchedQuestions) > 0 {
			qs := make([]string, len(r.MatchedQuestions))
			for j, n := range r.MatchedQuestions {
				qs[j] = fmt.Sprintf("Q%d", n)
			}
			matched = strings.Join(qs, " ")
		}
		b.WriteString(fmt.Sprintf("  %2d. %-24s %s %s\n", i+1, name,
			theme.ProgressFilled.Render(fmt.Sprintf("%-7s", bar)),
			theme.Hint.Render(layout.Truncate(matched, width-44))))
	}
	if len(results) > limit {
		b.WriteString("  " + theme.Hint.Render(fmt.Sprintf("… %d more", len(results)-limit)) + "\n")
	}
	return b.String()
}
