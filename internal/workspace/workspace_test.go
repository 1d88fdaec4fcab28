package workspace

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aromabench/internal/logging"
	"github.com/abhisek/aromabench/internal/store"
	"github.com/abhisek/aromabench/internal/workbench"
)

type mockDocumentRepo struct {
	stored   *workbench.Document
	loadErr  error
	saveErr  error
	saves    int
	prunedTo []int
}

func (m *mockDocumentRepo) Load(_ context.Context) (*workbench.Document, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.stored == nil {
		return nil, nil
	}
	doc := m.stored.Clone()
	return &doc, nil
}

func (m *mockDocumentRepo) Save(_ context.Context, doc workbench.Document) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	d := doc.Clone()
	m.stored = &d
	return nil
}

func (m *mockDocumentRepo) Prune(_ context.Context, keep int) error {
	m.prunedTo = append(m.prunedTo, keep)
	return nil
}

type mockEventRepo struct {
	kinds     []workbench.IntentKind
	appendErr error
}

func (m *mockEventRepo) Append(_ context.Context, in workbench.Intent) (store.IntentEvent, error) {
	if m.appendErr != nil {
		return store.IntentEvent{}, m.appendErr
	}
	m.kinds = append(m.kinds, in.Kind())
	return store.IntentEvent{Sequence: int64(len(m.kinds)), Kind: in.Kind()}, nil
}

func (m *mockEventRepo) Query(_ context.Context, _ store.QueryOpts) ([]store.IntentEvent, error) {
	return nil, nil
}

var (
	t0 = time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	t1 = t0.Add(time.Hour)
)

func testOptions(at *time.Time) Options {
	n := 0
	return Options{
		Reducer: workbench.Reducer{Now: func() time.Time { return *at }},
		IDs: workbench.IDFunc(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	}
}

func openTest(t *testing.T, docs *mockDocumentRepo, events *mockEventRepo) (*Workspace, *time.Time) {
	t.Helper()
	at := t0
	w, err := Open(context.Background(), docs, events, logging.Nop(), testOptions(&at))
	require.NoError(t, err)
	return w, &at
}

func TestOpenWithNothingStored(t *testing.T) {
	w, _ := openTest(t, &mockDocumentRepo{}, &mockEventRepo{})
	doc := w.Document()
	assert.Len(t, doc.Fragrances, 20)
	assert.Empty(t, doc.Patterns)
	assert.NoError(t, w.Recovered())
}

func TestOpenLoadsStoredDocument(t *testing.T) {
	stored := workbench.Document{Fragrances: []workbench.Fragrance{{ID: "x", Name: "Only"}}}
	w, _ := openTest(t, &mockDocumentRepo{stored: &stored}, &mockEventRepo{})
	assert.Equal(t, stored, w.Document())
}

func TestOpenFallsBackOnCorrupt(t *testing.T) {
	corrupt := fmt.Errorf("%w: bad", store.ErrCorrupt)
	w, _ := openTest(t, &mockDocumentRepo{loadErr: corrupt}, &mockEventRepo{})
	assert.Len(t, w.Document().Fragrances, 20)
	assert.ErrorIs(t, w.Recovered(), store.ErrCorrupt)
}

func TestOpenFailsOnOtherErrors(t *testing.T) {
	_, err := Open(context.Background(), &mockDocumentRepo{loadErr: errors.New("disk gone")}, nil, nil, Options{})
	assert.Error(t, err)
}

func TestDispatchSavesAndRecords(t *testing.T) {
	docs := &mockDocumentRepo{}
	events := &mockEventRepo{}
	w, _ := openTest(t, docs, events)
	ctx := context.Background()

	p, err := w.NewPattern(ctx, "  Spring  ")
	require.NoError(t, err)
	assert.Equal(t, "Spring", p.Name)
	assert.Equal(t, t0, p.CreatedAt)

	require.NoError(t, w.Assign(ctx, p.ID, 7, "f01", 1))

	assert.Equal(t, 2, docs.saves)
	assert.Equal(t, []workbench.IntentKind{workbench.KindAddPattern, workbench.KindUpsertQuestion}, events.kinds)
	require.NotNil(t, docs.stored)
	assert.Equal(t, w.Document(), *docs.stored)

	q, _ := w.Document().Patterns[0].Question(7)
	assert.True(t, q.Choices[1].Has("f01"))
}

func TestDispatchSurfacesSaveError(t *testing.T) {
	docs := &mockDocumentRepo{}
	events := &mockEventRepo{}
	w, _ := openTest(t, docs, events)
	docs.saveErr = errors.New("disk full")

	doc, err := w.Dispatch(context.Background(), workbench.DeleteFragrance{ID: "f01"})
	require.Error(t, err)
	assert.Len(t, doc.Fragrances, 19, "in-memory document stays authoritative")
	assert.Len(t, w.Document().Fragrances, 19)
	assert.Error(t, w.LastSaveError())
	assert.Empty(t, events.kinds, "nothing recorded when the save fails")

	// The next successful save clears the error and persists everything.
	docs.saveErr = nil
	_, err = w.Dispatch(context.Background(), workbench.DeleteFragrance{ID: "f02"})
	require.NoError(t, err)
	assert.NoError(t, w.LastSaveError())
	assert.Len(t, docs.stored.Fragrances, 18)
}

func TestDispatchSurfacesEventError(t *testing.T) {
	docs := &mockDocumentRepo{}
	w, _ := openTest(t, docs, &mockEventRepo{appendErr: errors.New("locked")})

	_, err := w.Dispatch(context.Background(), workbench.DeleteFragrance{ID: "f01"})
	assert.Error(t, err)
	assert.Equal(t, 1, docs.saves)
}

func TestDispatchWithoutEventLog(t *testing.T) {
	docs := &mockDocumentRepo{}
	w, err := Open(context.Background(), docs, nil, nil, Options{})
	require.NoError(t, err)
	_, err = w.Dispatch(context.Background(), workbench.DeleteFragrance{ID: "f01"})
	assert.NoError(t, err)
}

func TestDispatchPrunes(t *testing.T) {
	docs := &mockDocumentRepo{}
	at := t0
	opts := testOptions(&at)
	opts.KeepSnapshots = 3
	w, err := Open(context.Background(), docs, nil, nil, opts)
	require.NoError(t, err)

	_, err = w.Dispatch(context.Background(), workbench.DeleteFragrance{ID: "f01"})
	require.NoError(t, err)
	assert.Equal(t, []int{3}, docs.prunedTo)
}

func TestDocumentIsACopy(t *testing.T) {
	w, _ := openTest(t, &mockDocumentRepo{}, &mockEventRepo{})
	doc := w.Document()
	doc.Fragrances[0].Name = "changed"
	assert.NotEqual(t, "changed", w.Document().Fragrances[0].Name)
}

func TestPatternLifecycle(t *testing.T) {
	w, at := openTest(t, &mockDocumentRepo{}, &mockEventRepo{})
	ctx := context.Background()

	p, err := w.NewPattern(ctx, "Base")
	require.NoError(t, err)

	*at = t1
	require.NoError(t, w.RenamePattern(ctx, p.ID, "Renamed"))
	got, _ := w.Document().Pattern(p.ID)
	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, t1, got.UpdatedAt)
	assert.Equal(t, t0, got.CreatedAt)

	dup, err := w.DuplicatePattern(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed"+workbench.CopySuffix, dup.Name)
	assert.Len(t, w.Document().Patterns, 2)

	require.NoError(t, w.DeletePattern(ctx, p.ID))
	assert.Len(t, w.Document().Patterns, 1)

	assert.ErrorIs(t, w.RenamePattern(ctx, "missing", "x"), ErrNotFound)
	_, err = w.DuplicatePattern(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, w.Assign(ctx, "missing", 1, "f01", 0), ErrNotFound)
}

func TestNotes(t *testing.T) {
	w, at := openTest(t, &mockDocumentRepo{}, &mockEventRepo{})
	ctx := context.Background()
	p, err := w.NewPattern(ctx, "Notes")
	require.NoError(t, err)

	*at = t1
	n, err := w.AddNote(ctx, p.ID, 3, " keep it warm ")
	require.NoError(t, err)
	assert.Equal(t, "keep it warm", n.Text)
	got, _ := w.Document().Pattern(p.ID)
	assert.Len(t, got.NotesFor(3), 1)
	assert.Equal(t, t1, got.UpdatedAt)

	*at = t1.Add(time.Hour)
	require.NoError(t, w.DeleteNote(ctx, p.ID, n.ID))
	got, _ = w.Document().Pattern(p.ID)
	assert.Empty(t, got.Notes)
	assert.Equal(t, t1, got.UpdatedAt, "deleting a note leaves updatedAt")

	_, err = w.AddNote(ctx, "missing", 0, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFragranceLifecycle(t *testing.T) {
	w, _ := openTest(t, &mockDocumentRepo{}, &mockEventRepo{})
	ctx := context.Background()

	f, err := w.AddFragrance(ctx, "Oud", "smoky wood")
	require.NoError(t, err)
	assert.Len(t, w.Document().Fragrances, 21)

	f.Name = "Agarwood"
	require.NoError(t, w.UpdateFragrance(ctx, f))
	assert.Equal(t, "Agarwood", w.Document().FragranceName(f.ID))

	require.NoError(t, w.DeleteFragrance(ctx, f.ID))
	assert.Len(t, w.Document().Fragrances, 20)
	assert.ErrorIs(t, w.UpdateFragrance(ctx, f), ErrNotFound)
}

func TestEditAndUnassign(t *testing.T) {
	w, _ := openTest(t, &mockDocumentRepo{}, &mockEventRepo{})
	ctx := context.Background()
	p, err := w.NewPattern(ctx, "Edit")
	require.NoError(t, err)

	require.NoError(t, w.EditQuestion(ctx, p.ID, 2, func(q workbench.Question) workbench.Question {
		return workbench.SetQuestionText(q, "Which color?")
	}))
	require.NoError(t, w.Assign(ctx, p.ID, 2, "f03", 0))
	require.NoError(t, w.Unassign(ctx, p.ID, 2, "f03", 0))

	got, _ := w.Document().Pattern(p.ID)
	q, _ := got.Question(2)
	assert.Equal(t, "Which color?", q.Text)
	assert.Zero(t, workbench.AssignedCount(q))
}

func TestReplace(t *testing.T) {
	docs := &mockDocumentRepo{}
	events := &mockEventRepo{}
	corrupt := fmt.Errorf("%w: bad", store.ErrCorrupt)
	docs.loadErr = corrupt
	w, _ := openTest(t, docs, events)
	docs.loadErr = nil

	replacement := workbench.Document{Fragrances: []workbench.Fragrance{{ID: "only"}}, Patterns: []workbench.Pattern{}}
	require.NoError(t, w.Replace(context.Background(), replacement))
	assert.Equal(t, replacement, w.Document())
	assert.Equal(t, replacement, *docs.stored)
	assert.Empty(t, events.kinds)
	assert.NoError(t, w.Recovered())
}

func TestWorkspaceOnSQLite(t *testing.T) {
	s, err := store.Open(store.MemoryDSN(t.Name()))
	require.NoError(t, err)
	defer s.Close()
	ctx := context.Background()

	at := t0
	w, err := Open(ctx, s.DocumentRepo(), s.EventRepo(), nil, testOptions(&at))
	require.NoError(t, err)
	p, err := w.NewPattern(ctx, "Persisted")
	require.NoError(t, err)
	require.NoError(t, w.Assign(ctx, p.ID, 1, "f05", 3))

	reopened, err := Open(ctx, s.DocumentRepo(), s.EventRepo(), nil, Options{})
	require.NoError(t, err)
	assert.Equal(t, w.Document(), reopened.Document())

	evs, err := s.EventRepo().Query(ctx, store.QueryOpts{PatternID: p.ID})
	require.NoError(t, err)
	assert.Len(t, evs, 2)
}

func TestHistory(t *testing.T) {
	w, err := Open(context.Background(), &mockDocumentRepo{}, nil, nil, Options{})
	require.NoError(t, err)
	evs, err := w.History(context.Background(), store.QueryOpts{})
	assert.NoError(t, err)
	assert.Nil(t, evs)
}
