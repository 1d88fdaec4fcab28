package overview

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/router"
	"github.com/abhisek/aromabench/internal/screen"
	"github.com/abhisek/aromabench/internal/screens"
	"github.com/abhisek/aromabench/internal/ui/layout"
	"github.com/abhisek/aromabench/internal/ui/theme"
	"github.com/abhisek/aromabench/internal/workbench"
)

// OverviewScreen is a read-only matrix of where each fragrance sits in a
// pattern: one row per fragrance, one column per question.
type OverviewScreen struct {
	env       screens.Env
	patternID string
	doc       workbench.Document
	pattern   workbench.Pattern
	found     bool
	offset    int
}

var _ screen.Screen = (*OverviewScreen)(nil)
var _ screen.KeyHintProvider = (*OverviewScreen)(nil)

// New creates an overview of the pattern patternID.
func New(env screens.Env, patternID string) *OverviewScreen {
	s := &OverviewScreen{env: env, patternID: patternID}
	s.doc = env.WS.Document()
	s.pattern, s.found = s.doc.Pattern(patternID)
	return s
}

func (s *OverviewScreen) Init() tea.Cmd { return nil }

func (s *OverviewScreen) Title() string { return "Overview" }

func (s *OverviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *OverviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc", "q":
		return s, router.Pop()
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.offset < len(s.doc.Fragrances)-1 {
			s.offset++
		}
	}
	return s, nil
}

// Row is one fragrance's line of the matrix. Cells[n-1] is the choice
// index of question n, or -1.
type Row struct {
	Fragrance workbench.Fragrance
	Cells     [workbench.QuestionCount]int
	Total     int
}

// Rows builds the matrix for p. A fragrance assigned to two choices of one
// question shows the later one; CheckExclusive reports such cases.
func Rows(p workbench.Pattern, catalog []workbench.Fragrance) []Row {
	rows := make([]Row, len(catalog))
	for i, f := range catalog {
		rows[i].Fragrance = f
		for c := range rows[i].Cells {
			rows[i].Cells[c] = -1
		}
		for _, pos := range workbench.Positions(p, f.ID) {
			if pos.Number >= 1 && pos.Number <= workbench.QuestionCount {
				rows[i].Cells[pos.Number-1] = pos.ChoiceIndex
				rows[i].Total++
			}
		}
	}
	return rows
}

func (s *OverviewScreen) View(width, height int) string {
	if !s.found {
		return screens.Placeholder(width, "This pattern no longer exists.")
	}
	if len(s.doc.Fragrances) == 0 {
		return screens.Placeholder(width, "The catalog is empty.")
	}

	nameWidth := min(24, max(width-7*4-12, 8))
	var b strings.Builder
	b.WriteString("\n  " + theme.Subtitle.Render(s.pattern.Name) + "\n\n")

	header := fmt.Sprintf("  %-*s", nameWidth, "")
	for n := 1; n <= workbench.QuestionCount; n++ {
		header += fmt.Sprintf(" Q%d ", n)
	}
	b.WriteString(theme.Heading.Render(header+"  hits") + "\n")

	rows := Rows(s.pattern, s.doc.Fragrances)
	visible := max(height-8, 3)
	end := min(s.offset+visible, len(rows))
	for _, r := range rows[s.offset:end] {
		line := fmt.Sprintf("  %-*s", nameWidth, layout.Truncate(r.Fragrance.Name, nameWidth))
		b.WriteString(theme.Body.Render(line))
		for _, ci := range r.Cells {
			if ci < 0 {
				b.WriteString(theme.Hint.Render("  · "))
				continue
			}
			b.WriteString(lipgloss.NewStyle().Foreground(theme.ChoiceColor(ci)).Bold(true).
				Render("  " + theme.ChoiceLetter(ci) + " "))
		}
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d", r.Total)) + "\n")
	}

	if v := workbench.CheckExclusive(s.pattern); len(v) > 0 {
		b.WriteString("\n" + theme.ErrorText.Render(fmt.Sprintf("  %d fragrance(s) sit in more than one choice of a question", len(v))) + "\n")
	}
	return b.String()
}
