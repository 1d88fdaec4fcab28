package fragrances

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aromabench/internal/router"
	"github.com/abhisek/aromabench/internal/screens"
	"github.com/abhisek/aromabench/internal/workbench"
	"github.com/abhisek/aromabench/internal/workspace/workspacetest"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(s *FragranceScreen, text string) {
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

func newTestScreen(t *testing.T) *FragranceScreen {
	t.Helper()
	ws := workspacetest.New(t, workbench.DefaultDocument())
	return New(screens.Env{WS: ws})
}

func TestListsCatalog(t *testing.T) {
	s := newTestScreen(t)
	view := s.View(100, 40)
	if !strings.Contains(view, "Lavender") {
		t.Error("expected the first fragrance in the view")
	}
}

func TestAddFragrance(t *testing.T) {
	s := newTestScreen(t)

	s.Update(keyPress('a'))
	if !s.Capturing() {
		t.Fatal("form should capture input")
	}

	// Blank names are rejected.
	s.Update(specialKey(tea.KeyEnter))
	if s.step != formName {
		t.Fatal("blank name should keep the form on the name step")
	}

	typeText(s, "Oud")
	s.Update(specialKey(tea.KeyEnter))
	if s.step != formDescription {
		t.Fatalf("step = %d, want description", s.step)
	}
	typeText(s, "smoky")
	s.Update(specialKey(tea.KeyEnter))

	if s.Capturing() {
		t.Error("form should close after saving")
	}
	doc := s.env.WS.Document()
	if len(doc.Fragrances) != 21 {
		t.Fatalf("fragrances = %d, want 21", len(doc.Fragrances))
	}
	last := doc.Fragrances[20]
	if last.Name != "Oud" || last.Description != "smoky" {
		t.Errorf("added %+v", last)
	}
	if s.selected != 20 {
		t.Errorf("selection should move to the new entry, got %d", s.selected)
	}
}

func TestEditFragrance(t *testing.T) {
	s := newTestScreen(t)
	s.Update(keyPress('e'))
	if s.input.Value() != "Lavender" {
		t.Fatalf("edit form prefilled with %q", s.input.Value())
	}
	typeText(s, " Fine")
	s.Update(specialKey(tea.KeyEnter))
	s.Update(specialKey(tea.KeyEnter))

	if got := s.env.WS.Document().Fragrances[0].Name; got != "Lavender Fine" {
		t.Errorf("name = %q", got)
	}
}

func TestCancelForm(t *testing.T) {
	s := newTestScreen(t)
	s.Update(keyPress('a'))
	typeText(s, "Nope")
	s.Update(specialKey(tea.KeyEscape))
	if s.Capturing() {
		t.Error("esc should close the form")
	}
	if len(s.env.WS.Document().Fragrances) != 20 {
		t.Error("cancel should not add anything")
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	s := newTestScreen(t)
	s.Update(specialKey(tea.KeyDown))
	s.Update(keyPress('x'))
	if !s.confirm.Active {
		t.Fatal("delete should ask first")
	}
	s.Update(keyPress('n'))
	if len(s.env.WS.Document().Fragrances) != 20 {
		t.Fatal("n should keep the fragrance")
	}

	s.Update(keyPress('x'))
	s.Update(keyPress('y'))
	doc := s.env.WS.Document()
	if len(doc.Fragrances) != 19 {
		t.Fatalf("fragrances = %d, want 19", len(doc.Fragrances))
	}
	if _, ok := doc.Fragrance("f02"); ok {
		t.Error("f02 should be gone")
	}
}

func TestEscPops(t *testing.T) {
	s := newTestScreen(t)
	_, cmd := s.Update(specialKey(tea.KeyEscape))
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc should pop the screen")
	}
}
