package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/abhisek/aromabench/internal/workbench"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(MemoryDSN(t.Name()))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testDocument(t *testing.T) workbench.Document {
	t.Helper()
	n := 0
	ids := workbench.IDFunc(func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	})
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	doc := workbench.DefaultDocument()
	p := workbench.NewPattern("Spring", ids, at)
	doc = workbench.Apply(doc, workbench.AddPattern{Pattern: p})
	up, ok := workbench.Assign(doc, p.ID, 7, "f01", 2)
	if !ok {
		t.Fatal("assign failed")
	}
	return workbench.Reducer{Now: func() time.Time { return at }}.Apply(doc, up)
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is checked in TestFileBackedStore.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestTablesCreated(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"documents", "intent_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestDocumentLoadEmpty(t *testing.T) {
	s := openTestStore(t)
	doc, err := s.DocumentRepo().Load(context.Background())
	if err != nil {
		t.Fatalf("load (empty): %v", err)
	}
	if doc != nil {
		t.Fatal("expected nil document when none saved")
	}
}

func TestDocumentSaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	repo := s.DocumentRepo()
	ctx := context.Background()
	want := testDocument(t)

	if err := repo.Save(ctx, workbench.DefaultDocument()); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := repo.Save(ctx, want); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatal("expected a document")
	}
	if len(got.Patterns) != 1 || got.Patterns[0].Name != "Spring" {
		t.Fatalf("loaded patterns = %+v, want the newest snapshot", got.Patterns)
	}
	q, _ := got.Patterns[0].Question(7)
	if !q.Choices[2].Has("f01") {
		t.Error("assignment lost in round trip")
	}
	if len(got.Fragrances) != 20 {
		t.Errorf("fragrances = %d, want 20", len(got.Fragrances))
	}
	if !got.Patterns[0].UpdatedAt.Equal(want.Patterns[0].UpdatedAt) {
		t.Errorf("updatedAt = %v, want %v", got.Patterns[0].UpdatedAt, want.Patterns[0].UpdatedAt)
	}
}

func TestDocumentLoadCorrupt(t *testing.T) {
	s := openTestStore(t)
	_, err := s.DB().Exec(`INSERT INTO documents (sequence, saved_at, data) VALUES (99, ?, '{"fragrances": 3}')`, time.Now())
	if err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}

	_, err = s.DocumentRepo().Load(context.Background())
	if !errors.Is(err, ErrCorrupt) {
		t.Fatalf("load error = %v, want ErrCorrupt", err)
	}
}

func TestDocumentPruneAndHistory(t *testing.T) {
	s := openTestStore(t)
	repo := s.DocumentRepo()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := repo.Save(ctx, workbench.DefaultDocument()); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	history, err := repo.History(ctx, 0)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != 5 {
		t.Fatalf("history = %d snapshots, want 5", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i-1].Sequence <= history[i].Sequence {
			t.Errorf("history not newest first: %d then %d", history[i-1].Sequence, history[i].Sequence)
		}
	}
	if history[0].Size == 0 {
		t.Error("expected a non-zero snapshot size")
	}
	newest := history[0].Sequence

	if err := repo.Prune(ctx, 2); err != nil {
		t.Fatalf("prune: %v", err)
	}
	history, err = repo.History(ctx, 10)
	if err != nil {
		t.Fatalf("history after prune: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("after prune = %d snapshots, want 2", len(history))
	}
	if history[0].Sequence != newest {
		t.Errorf("prune dropped the newest snapshot")
	}

	// Pruning with fewer snapshots than keep, or keep <= 0, changes nothing.
	if err := repo.Prune(ctx, 10); err != nil {
		t.Fatalf("prune (no-op): %v", err)
	}
	if err := repo.Prune(ctx, 0); err != nil {
		t.Fatalf("prune (disabled): %v", err)
	}
	history, _ = repo.History(ctx, 1)
	if len(history) != 1 {
		t.Errorf("history limit: got %d, want 1", len(history))
	}
}

func TestEventAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	events := s.EventRepo()
	ctx := context.Background()

	intents := []workbench.Intent{
		workbench.AddFragrance{Fragrance: workbench.Fragrance{ID: "f99", Name: "Oud"}},
		workbench.DeleteNote{PatternID: "p1", NoteID: "n1"},
		workbench.DeletePattern{ID: "p1"},
		workbench.DeleteNote{PatternID: "p2", NoteID: "n2"},
	}
	var last int64
	for _, in := range intents {
		ev, err := events.Append(ctx, in)
		if err != nil {
			t.Fatalf("append %s: %v", in.Kind(), err)
		}
		if ev.Sequence <= last {
			t.Errorf("sequence %d not increasing after %d", ev.Sequence, last)
		}
		last = ev.Sequence
	}

	all, err := events.Query(ctx, QueryOpts{})
	if err != nil {
		t.Fatalf("query all: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("query all = %d events, want 4", len(all))
	}
	if all[0].Kind != workbench.KindAddFragrance {
		t.Errorf("first kind = %s", all[0].Kind)
	}
	var payload workbench.AddFragrance
	if err := json.Unmarshal(all[0].Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Fragrance.Name != "Oud" {
		t.Errorf("payload = %+v", payload)
	}

	notes, err := events.Query(ctx, QueryOpts{Kind: workbench.KindDeleteNote})
	if err != nil {
		t.Fatalf("query by kind: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("delete_note events = %d, want 2", len(notes))
	}

	p1, err := events.Query(ctx, QueryOpts{PatternID: "p1"})
	if err != nil {
		t.Fatalf("query by pattern: %v", err)
	}
	if len(p1) != 2 {
		t.Errorf("p1 events = %d, want 2", len(p1))
	}

	after, err := events.Query(ctx, QueryOpts{After: all[1].Sequence, Limit: 1})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 || after[0].Sequence != all[2].Sequence {
		t.Errorf("after/limit = %+v, want the third event", after)
	}
}

func TestSnapshotsAndEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ev, err := s.EventRepo().Append(ctx, workbench.DeletePattern{ID: "x"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := s.DocumentRepo().Save(ctx, workbench.DefaultDocument()); err != nil {
		t.Fatalf("save: %v", err)
	}
	history, err := s.DocumentRepo().History(ctx, 1)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if history[0].Sequence <= ev.Sequence {
		t.Errorf("snapshot sequence %d should follow event sequence %d", history[0].Sequence, ev.Sequence)
	}
}

func TestFileBackedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")
	ctx := context.Background()

	s, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var mode string
	if err := s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want wal", mode)
	}
	if err := s.DocumentRepo().Save(ctx, testDocument(t)); err != nil {
		t.Fatalf("save: %v", err)
	}
	s.Close()

	// Reopening keeps the document and the sequence.
	s, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()
	doc, err := s.DocumentRepo().Load(ctx)
	if err != nil || doc == nil {
		t.Fatalf("load after reopen: %v", err)
	}
	ev, err := s.EventRepo().Append(ctx, workbench.DeletePattern{ID: "x"})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ev.Sequence < 2 {
		t.Errorf("sequence restarted: %d", ev.Sequence)
	}
}

func TestOpenBackend(t *testing.T) {
	for _, driver := range []string{"", DriverSQLite, DriverBadger} {
		t.Run("driver="+driver, func(t *testing.T) {
			b, err := OpenBackend(Options{Driver: driver, InMemory: true})
			if err != nil {
				t.Fatalf("open backend: %v", err)
			}
			defer b.Close()

			ctx := context.Background()
			if err := b.Documents().Save(ctx, testDocument(t)); err != nil {
				t.Fatalf("save: %v", err)
			}
			doc, err := b.Documents().Load(ctx)
			if err != nil || doc == nil {
				t.Fatalf("load: %v", err)
			}
			if _, err := b.Events().Append(ctx, workbench.DeletePattern{ID: "x"}); err != nil {
				t.Fatalf("append: %v", err)
			}
		})
	}

	if _, err := OpenBackend(Options{Driver: "postgres"}); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(dir, "custom", "x.db")
		t.Setenv("AROMABENCH_DB", want)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})

	t.Run("xdg data home", func(t *testing.T) {
		t.Setenv("AROMABENCH_DB", "")
		t.Setenv("XDG_DATA_HOME", dir)
		got, err := DefaultDBPath()
		if err != nil {
			t.Fatalf("DefaultDBPath: %v", err)
		}
		want := filepath.Join(dir, "aromabench", "aromabench.db")
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	})
}
