package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/router"
	"github.com/abhisek/aromabench/internal/screen"
	"github.com/abhisek/aromabench/internal/screens"
	"github.com/abhisek/aromabench/internal/screens/home"
	"github.com/abhisek/aromabench/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    screens.Env
	router *router.Router
	width  int
	height int
}

// NewAppModel creates an AppModel showing the home screen.
func NewAppModel(env screens.Env) AppModel {
	return AppModel{
		env:    env,
		router: router.New(home.New(env)),
	}
}

// Router returns the screen stack.
func (m AppModel) Router() *router.Router {
	return m.router
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		// A screen with an open input gets esc so it can cancel the input.
		if msg.String() == "esc" && !screen.IsCapturing(m.router.Active()) {
			if m.router.Depth() > 1 {
				return m, router.Pop()
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) footerHints() []layout.KeyHint {
	if p, ok := m.router.Active().(screen.KeyHintProvider); ok {
		return append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "q", Description: "Quit"},
	}
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	header := layout.RenderHeader(m.router.Breadcrumb(" › "), home.Counts(m.env.WS.Document()), m.width)

	status := ""
	if err := m.env.WS.LastSaveError(); err != nil {
		status = screens.Status(err)
	}
	footer := layout.RenderFooter(m.footerHints(), status, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program on env's workspace.
func Run(env screens.Env) error {
	p := tea.NewProgram(NewAppModel(env))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
