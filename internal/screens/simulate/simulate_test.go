package simulate

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/aromabench/internal/screens"
	"github.com/abhisek/aromabench/internal/workspace/workspacetest"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// newTestScreen assigns f01 to choice a and f02 to choice b of Q1 and Q7;
// the other questions stay unassigned and are skipped.
func newTestScreen(t *testing.T) *SimulateScreen {
	t.Helper()
	ws, p := workspacetest.WithPattern(t, "Spring")
	env := screens.Env{WS: ws, PreviewLimit: 3}
	for _, n := range []int{1, 7} {
		if err := ws.Assign(env.Ctx(), p.ID, n, "f01", 0); err != nil {
			t.Fatal(err)
		}
		if err := ws.Assign(env.Ctx(), p.ID, n, "f02", 1); err != nil {
			t.Fatal(err)
		}
	}
	return New(env, p.ID)
}

func TestAsksWellFormedQuestionsOnly(t *testing.T) {
	s := newTestScreen(t)
	if s.Simulation().Total() != 2 {
		t.Fatalf("total = %d, want 2", s.Simulation().Total())
	}
	if q, _ := s.Simulation().Current(); q.Number != 1 {
		t.Errorf("first question = Q%d, want Q1", q.Number)
	}
}

func TestWinner(t *testing.T) {
	s := newTestScreen(t)
	s.Update(keyPress('a'))
	s.Update(keyPress('a'))

	if !s.Simulation().Done() {
		t.Fatal("simulation should be done")
	}
	out := s.Simulation().Outcome()
	if out.Tie || len(out.Winners) != 1 || out.Winners[0].FragranceID != "f01" {
		t.Errorf("outcome = %+v", out)
	}
	view := s.View(100, 40)
	if !strings.Contains(view, "Recommendation") || !strings.Contains(view, "Lavender") {
		t.Errorf("view should name the winner:\n%s", view)
	}
}

func TestTie(t *testing.T) {
	s := newTestScreen(t)
	s.Update(keyPress('a'))
	s.Update(keyPress('b'))

	out := s.Simulation().Outcome()
	if !out.Tie || len(out.Winners) != 2 {
		t.Fatalf("outcome = %+v", out)
	}
	if !strings.Contains(s.View(100, 40), "Tie between 2") {
		t.Error("view should show the tie")
	}
}

func TestBackAndReset(t *testing.T) {
	s := newTestScreen(t)
	s.Update(keyPress('a'))
	s.Update(keyPress('a'))
	s.Update(tea.KeyPressMsg{Code: tea.KeyBackspace})
	if s.Simulation().Step() != 1 || len(s.Simulation().Answers()) != 1 {
		t.Fatalf("back should undo one answer, step = %d", s.Simulation().Step())
	}
	s.Update(keyPress('a'))
	s.Update(keyPress('r'))
	if s.Simulation().Step() != 0 || len(s.Simulation().Answers()) != 0 {
		t.Error("reset should clear everything")
	}
}

func TestPreviewLimit(t *testing.T) {
	s := newTestScreen(t)
	view := s.View(100, 40)
	if !strings.Contains(view, "… 17 more") {
		t.Errorf("preview should stop at 3 rows:\n%s", view)
	}
}

func TestNothingToAsk(t *testing.T) {
	ws, p := workspacetest.WithPattern(t, "Empty")
	s := New(screens.Env{WS: ws}, p.ID)
	if !strings.Contains(s.View(100, 30), "No question is ready") {
		t.Error("expected placeholder")
	}
}
