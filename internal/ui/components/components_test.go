package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func TestMenuSkipsDisabled(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { called = "one"; return nil }},
		{Label: "off2", Disabled: true},
		{Label: "two", Action: func() tea.Cmd { called = "two"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want first enabled item", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 3 {
		t.Errorf("down selected %d, want 3", m.Selected)
	}
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if called != "two" {
		t.Errorf("enter ran %q", called)
	}
	m, _ = m.Update(key('k'))
	if m.Selected != 1 {
		t.Errorf("k selected %d, want 1", m.Selected)
	}
}

func TestMenuHotkeys(t *testing.T) {
	called := ""
	m := NewMenu([]MenuItem{
		{Label: "Alpha", Key: "a", Action: func() tea.Cmd { called = "alpha"; return nil }},
		{Label: "Beta", Key: "b", Disabled: true, Action: func() tea.Cmd { called = "beta"; return nil }},
		{Label: "Gamma", Key: "g", Action: func() tea.Cmd { called = "gamma"; return nil }},
	})

	m, _ = m.Update(key('g'))
	if called != "gamma" || m.Selected != 2 {
		t.Errorf("g: called %q, selected %d", called, m.Selected)
	}
	called = ""
	m, _ = m.Update(key('b'))
	if called != "" || m.Selected != 2 {
		t.Errorf("disabled hotkey ran %q, selected %d", called, m.Selected)
	}
	if !strings.Contains(m.View(), "[a]") {
		t.Errorf("hotkeys missing from view:\n%s", m.View())
	}
	if m.Run(7) != nil {
		t.Error("out of range Run should be a no-op")
	}
}

func TestChoicePickerLetterPick(t *testing.T) {
	p := NewChoicePicker("Pick", []string{"a", "b", "c"})
	if _, ok := p.Picked(); ok {
		t.Fatal("nothing should be picked yet")
	}

	p, _ = p.Update(key('c'))
	i, ok := p.Picked()
	if !ok || i != 2 {
		t.Errorf("Picked() = %d, %v; want 2, true", i, ok)
	}
	if _, ok := p.Picked(); ok {
		t.Error("a pick is consumed once")
	}

	// Letters past the last option are ignored.
	p, _ = p.Update(key('d'))
	if _, ok := p.Picked(); ok {
		t.Error("d is out of range for three options")
	}

	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	p, _ = p.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if i, _ := p.Picked(); i != 1 {
		t.Errorf("arrow pick = %d, want 1", i)
	}
	if !strings.Contains(p.View(), "C)") {
		t.Error("view should letter the options")
	}
}

func TestConfirm(t *testing.T) {
	yes := false
	c := Confirm{}.Ask("Delete?", func() tea.Cmd { yes = true; return nil })
	if !c.Active || !strings.Contains(c.View(), "Delete?") {
		t.Fatal("confirm should be active and show the question")
	}

	c, _ = c.Update(key('n'))
	if c.Active || yes {
		t.Error("n should dismiss without running the action")
	}

	c = c.Ask("Delete?", func() tea.Cmd { yes = true; return nil })
	c, _ = c.Update(key('y'))
	if c.Active || !yes {
		t.Error("y should run the action and close")
	}
	if c.View() != "" {
		t.Error("inactive confirm renders nothing")
	}
}

func TestTextInputValidation(t *testing.T) {
	in := NewTextInput("Name", "pattern name", "", 40)
	in.Validate = NotBlank("name")

	if _, ok := in.Submit(); ok {
		t.Error("blank input should fail validation")
	}
	if !strings.Contains(in.View(), "name cannot be empty") {
		t.Error("validation error should be shown")
	}

	for _, r := range "Spring" {
		in, _ = in.Update(key(r))
	}
	v, ok := in.Submit()
	if !ok || v != "Spring" {
		t.Errorf("Submit() = %q, %v", v, ok)
	}
}

func TestProgressBarFraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 7, 0},
		{7, 7, 1},
		{9, 7, 1},
		{3, 0, 0},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", tt.done, tt.total, true, 20).Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
	if !strings.Contains(NewProgressBar("Q", 3, 7, true, 30).View(), "3/7") {
		t.Error("count should be rendered")
	}
}
