package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/router"
	"github.com/abhisek/aromabench/internal/screen"
	"github.com/abhisek/aromabench/internal/screens"
	"github.com/abhisek/aromabench/internal/screens/fragrances"
	"github.com/abhisek/aromabench/internal/screens/history"
	"github.com/abhisek/aromabench/internal/screens/patterns"
	"github.com/abhisek/aromabench/internal/ui/components"
	"github.com/abhisek/aromabench/internal/ui/layout"
	"github.com/abhisek/aromabench/internal/ui/theme"
	"github.com/abhisek/aromabench/internal/workbench"
)

const banner = `  ✿  a r o m a b e n c h  ✿`

// HomeScreen is the main menu with a summary of the document.
type HomeScreen struct {
	env       screens.Env
	menu      components.Menu
	counts    layout.Counts
	recovered string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env screens.Env) *HomeScreen {
	items := []components.MenuItem{
		{Label: "PATTERNS", Key: "p", Detail: "design quizzes", Action: func() tea.Cmd {
			return router.Push(patterns.New(env, patterns.ModeEdit))
		}},
		{Label: "SIMULATE", Key: "s", Detail: "take a quiz", Action: func() tea.Cmd {
			return router.Push(patterns.New(env, patterns.ModeSimulate))
		}},
		{Label: "FRAGRANCES", Key: "f", Detail: "edit the catalog", Action: func() tea.Cmd {
			return router.Push(fragrances.New(env))
		}},
		{Label: "ACTIVITY", Key: "a", Detail: "recent edits", Action: func() tea.Cmd {
			return router.Push(history.New(env))
		}},
		{Label: "QUIT", Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h := &HomeScreen{
		env:  env,
		menu: components.NewMenu(items),
	}
	if err := env.WS.Recovered(); err != nil {
		h.recovered = "Stored data was unreadable; started from the default catalog."
	}
	h.refresh()
	return h
}

func (h *HomeScreen) refresh() {
	h.counts = Counts(h.env.WS.Document())
}

// Counts summarizes doc for the header and the home stats.
func Counts(doc workbench.Document) layout.Counts {
	return layout.Counts{
		Fragrances: len(doc.Fragrances),
		Patterns:   len(doc.Patterns),
		Completed:  len(workbench.CompletedPatterns(doc)),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Resume() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render(banner))
	sections = append(sections, theme.Subtitle.Width(width).Render("fragrance quiz workbench"))

	stats := fmt.Sprintf("%d fragrances   %d patterns   %d complete",
		h.counts.Fragrances, h.counts.Patterns, h.counts.Completed)
	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Card.Render(theme.Body.Render(stats))))

	sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center,
		h.menu.View()))

	if h.recovered != "" {
		sections = append(sections, lipgloss.PlaceHorizontal(width, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.Warning).Render(h.recovered)))
	}

	return "\n" + strings.Join(sections, "\n\n")
}

func (h *HomeScreen) Title() string {
	return "Home"
}
