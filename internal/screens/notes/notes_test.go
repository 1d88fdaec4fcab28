package notes

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

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func send(l List, msgs ...tea.Msg) List {
	for _, m := range msgs {
		l, _ = l.Update(m)
	}
	return l
}

func typeText(l List, text string) List {
	for _, r := range text {
		l = send(l, keyPress(r))
	}
	return l
}

func TestAddNote(t *testing.T) {
	ws, p := workspacetest.WithPattern(t, "Spring")
	l := NewList(screens.Env{WS: ws}, p.ID, 3)

	l = send(l, keyPress('n'))
	if !l.Capturing() {
		t.Fatal("adding should capture input")
	}
	l = send(l, specialKey(tea.KeyEnter))
	if !l.Capturing() {
		t.Fatal("a blank note should not be saved")
	}

	l = typeText(l, "warmer")
	l = send(l, specialKey(tea.KeyEnter))
	if l.Capturing() {
		t.Error("input should close after saving")
	}
	if got := len(l.Notes()); got != 1 {
		t.Fatalf("notes = %d, want 1", got)
	}
	if l.Notes()[0].Text != "warmer" || l.Notes()[0].QuestionNumber != 3 {
		t.Errorf("note = %+v", l.Notes()[0])
	}

	doc := ws.Document()
	stored, _ := doc.Pattern(p.ID)
	if len(stored.NotesFor(3)) != 1 || len(stored.NotesFor(0)) != 0 {
		t.Error("note should be stored on question 3 only")
	}
}

func TestCancelNote(t *testing.T) {
	ws, p := workspacetest.WithPattern(t, "Spring")
	l := NewList(screens.Env{WS: ws}, p.ID, 0)

	l = send(l, keyPress('n'))
	l = typeText(l, "draft")
	l = send(l, specialKey(tea.KeyEscape))
	if l.Capturing() || len(l.Notes()) != 0 {
		t.Error("esc should discard the note")
	}
}

func TestDeleteNoteNeedsConfirmation(t *testing.T) {
	ws, p := workspacetest.WithPattern(t, "Spring")
	env := screens.Env{WS: ws}
	for _, text := range []string{"one", "two"} {
		if _, err := ws.AddNote(env.Ctx(), p.ID, 0, text); err != nil {
			t.Fatal(err)
		}
	}
	l := NewList(env, p.ID, 0)

	l = send(l, specialKey(tea.KeyTab))
	l = send(l, keyPress('x'))
	if !l.Capturing() {
		t.Fatal("delete should ask first")
	}
	l = send(l, keyPress('n'))
	if len(l.Refresh().Notes()) != 2 {
		t.Fatal("declining should keep the note")
	}

	l = send(l, keyPress('x'), keyPress('y'))
	l = l.Refresh()
	if len(l.Notes()) != 1 || l.Notes()[0].Text != "one" {
		t.Errorf("notes = %+v, want only \"one\"", l.Notes())
	}
}

func TestViewListsNotes(t *testing.T) {
	ws, p := workspacetest.WithPattern(t, "Spring")
	env := screens.Env{WS: ws}
	if _, err := ws.AddNote(env.Ctx(), p.ID, 7, "ends on a high"); err != nil {
		t.Fatal(err)
	}

	if view := NewList(env, p.ID, 7).View(80); !strings.Contains(view, "ends on a high") {
		t.Errorf("view missing note:\n%s", view)
	}
	if view := NewList(env, p.ID, 6).View(80); !strings.Contains(view, "No notes.") {
		t.Errorf("question 6 should have no notes:\n%s", view)
	}
}

func TestStatusMsgIsShown(t *testing.T) {
	ws, p := workspacetest.WithPattern(t, "Spring")
	l := NewList(screens.Env{WS: ws}, p.ID, 0)
	l = send(l, StatusMsg("Not saved: disk full"))
	if !strings.Contains(l.View(80), "disk full") {
		t.Error("status should be rendered")
	}
}
