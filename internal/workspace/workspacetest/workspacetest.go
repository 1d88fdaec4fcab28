// Package workspacetest builds workspaces backed by in-memory storage for
// tests.
package workspacetest

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/aromabench/internal/store"
	"github.com/abhisek/aromabench/internal/workbench"
	"github.com/abhisek/aromabench/internal/workspace"
)

// T0 is the fixed clock of workspaces built here.
var T0 = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

// New returns a workspace on a fresh in-memory SQLite database seeded with
// doc. Ids are "id-1", "id-2", ... and the clock is fixed at T0.
func New(t testing.TB, doc workbench.Document) *workspace.Workspace {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(store.MemoryDSN(name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	if err := s.DocumentRepo().Save(ctx, doc); err != nil {
		t.Fatalf("seed document: %v", err)
	}

	n := 0
	ws, err := workspace.Open(ctx, s.DocumentRepo(), s.EventRepo(), nil, workspace.Options{
		Reducer: workbench.Reducer{Now: func() time.Time { return T0 }},
		IDs: workbench.IDFunc(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	})
	if err != nil {
		t.Fatalf("open workspace: %v", err)
	}
	return ws
}

// WithPattern returns a workspace holding the default catalog and one
// fresh pattern named name.
func WithPattern(t testing.TB, name string) (*workspace.Workspace, workbench.Pattern) {
	t.Helper()
	ws := New(t, workbench.DefaultDocument())
	p, err := ws.NewPattern(context.Background(), name)
	if err != nil {
		t.Fatalf("new pattern: %v", err)
	}
	return ws, p
}
