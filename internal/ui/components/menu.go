package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/aromabench/internal/ui/theme"
)

// MenuItem is one entry of a Menu. Key, when set, runs the item directly.
type MenuItem struct {
	Label    string
	Detail   string
	Key      string
	Action   func() tea.Cmd
	Disabled bool
}

func (it MenuItem) usable() bool { return !it.Disabled }

// Menu is a vertical list of actions driven by arrows or hotkeys.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first usable item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	m.Selected = m.step(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step returns the next usable index after from in direction dir, or -1.
func (m Menu) step(from, dir int) int {
	for i := from + dir; i >= 0 && i < len(m.Items); i += dir {
		if m.Items[i].usable() {
			return i
		}
	}
	return -1
}

// Run triggers item i if it is usable.
func (m Menu) Run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	it := m.Items[i]
	if !it.usable() || it.Action == nil {
		return nil
	}
	return it.Action()
}

// Update moves the selection or runs an item.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if i := m.step(m.Selected, -1); i >= 0 {
			m.Selected = i
		}
		return m, nil
	case "down", "j":
		if i := m.step(m.Selected, 1); i >= 0 {
			m.Selected = i
		}
		return m, nil
	case "enter":
		return m, m.Run(m.Selected)
	}

	for i, it := range m.Items {
		if it.Key != "" && it.Key == key && it.usable() {
			m.Selected = i
			return m, m.Run(i)
		}
	}
	return m, nil
}

// View renders one line per item with its hotkey and detail.
func (m Menu) View() string {
	var b strings.Builder
	for i, it := range m.Items {
		style := lipgloss.NewStyle().Foreground(theme.Text)
		cursor := "  "
		if !it.usable() {
			style = style.Foreground(theme.TextDim)
		} else if i == m.Selected {
			style = theme.Selected
			cursor = "▸ "
		}

		key := "   "
		if it.Key != "" {
			key = theme.Hint.Render("[" + it.Key + "]")
		}
		line := "  " + cursor + key + " " + style.Render(it.Label)
		if it.Detail != "" {
			line += "  " + theme.Hint.Render(it.Detail)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
