// Package workspace owns the single workbench document of a running
// session. Every change goes through Dispatch, which applies the intent,
// persists the result and records it in the event log.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abhisek/aromabench/internal/logging"
	"github.com/abhisek/aromabench/internal/store"
	"github.com/abhisek/aromabench/internal/workbench"
)

// ErrNotFound is returned by convenience methods whose target is missing.
var ErrNotFound = errors.New("not found")

// Options tunes a Workspace. The zero value is usable.
type Options struct {
	// Reducer carries the clock used for updatedAt stamps.
	Reducer workbench.Reducer

	// IDs mints ids for new patterns, questions, choices and notes.
	// Nil means random UUIDs.
	IDs workbench.IDSource

	// KeepSnapshots prunes the document history after each save when the
	// repo supports it. 0 keeps everything.
	KeepSnapshots int
}

// pruner is implemented by repos that keep a snapshot history.
type pruner interface {
	Prune(ctx context.Context, keep int) error
}

// Workspace holds the authoritative in-memory document.
type Workspace struct {
	mu        sync.Mutex
	doc       workbench.Document
	docs      store.DocumentRepo
	events    store.EventRepo
	logger    *logging.Logger
	opts      Options
	recovered error
	lastSave  error
}

// Open loads the stored document. When nothing is stored, or the stored
// data is corrupt, the workspace starts from the seeded default document;
// the corrupt case is logged and reported by Recovered. Other load failures
// are returned. events may be nil to skip the event log.
func Open(ctx context.Context, docs store.DocumentRepo, events store.EventRepo, logger *logging.Logger, opts Options) (*Workspace, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	if opts.IDs == nil {
		opts.IDs = workbench.UUIDSource{}
	}

	w := &Workspace{
		docs:   docs,
		events: events,
		logger: logger,
		opts:   opts,
	}

	doc, err := docs.Load(ctx)
	switch {
	case errors.Is(err, store.ErrCorrupt):
		logger.Warn("stored document is corrupt, starting from defaults", "error", err)
		w.recovered = err
		w.doc = workbench.DefaultDocument()
	case err != nil:
		return nil, fmt.Errorf("load document: %w", err)
	case doc == nil:
		logger.Info("no stored document, starting from defaults")
		w.doc = workbench.DefaultDocument()
	default:
		w.doc = *doc
		if vs := workbench.CheckDocument(w.doc); len(vs) > 0 {
			logger.Warn("stored document has fragrances in more than one choice",
				"violations", len(vs), "first", vs[0].Error())
		}
		logger.Info("document loaded",
			"fragrances", len(w.doc.Fragrances), "patterns", len(w.doc.Patterns))
	}
	return w, nil
}

// Recovered returns the decode error that made Open fall back to the
// default document, or nil.
func (w *Workspace) Recovered() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.recovered
}

// LastSaveError returns the error of the most recent save, or nil if it
// succeeded.
func (w *Workspace) LastSaveError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSave
}

// Document returns a copy of the current document.
func (w *Workspace) Document() workbench.Document {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.doc.Clone()
}

// Dispatch applies in, persists the new document and appends the intent to
// the event log. The in-memory document is updated even when persisting
// fails; the failure is returned and nothing is retried.
func (w *Workspace) Dispatch(ctx context.Context, in workbench.Intent) (workbench.Document, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.doc = w.opts.Reducer.Apply(w.doc, in)
	w.logger.Debug("intent applied", "kind", string(in.Kind()), "pattern_id", in.PatternRef())

	err := w.persist(ctx, in)
	return w.doc.Clone(), err
}

// Replace swaps the whole document, as import and reset do. It is saved
// but not recorded as an intent.
func (w *Workspace) Replace(ctx context.Context, doc workbench.Document) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.doc = doc.Clone()
	w.recovered = nil
	w.logger.Info("document replaced",
		"fragrances", len(doc.Fragrances), "patterns", len(doc.Patterns))
	return w.persist(ctx, nil)
}

// persist saves the current document and logs in. Callers hold mu.
func (w *Workspace) persist(ctx context.Context, in workbench.Intent) error {
	if err := w.docs.Save(ctx, w.doc); err != nil {
		w.lastSave = fmt.Errorf("save document: %w", err)
		w.logger.Error("save failed", "error", err)
		return w.lastSave
	}
	w.lastSave = nil

	if p, ok := w.docs.(pruner); ok && w.opts.KeepSnapshots > 0 {
		if err := p.Prune(ctx, w.opts.KeepSnapshots); err != nil {
			w.logger.Warn("prune snapshots failed", "error", err)
		}
	}

	if in == nil || w.events == nil {
		return nil
	}
	if _, err := w.events.Append(ctx, in); err != nil {
		w.logger.Error("append intent event failed", "kind", string(in.Kind()), "error", err)
		return fmt.Errorf("record %s: %w", in.Kind(), err)
	}
	return nil
}

// History returns recorded intents, or nil when there is no event log.
func (w *Workspace) History(ctx context.Context, opts store.QueryOpts) ([]store.IntentEvent, error) {
	if w.events == nil {
		return nil, nil
	}
	return w.events.Query(ctx, opts)
}

// AddFragrance adds a catalog entry with a fresh id.
func (w *Workspace) AddFragrance(ctx context.Context, name, description string) (workbench.Fragrance, error) {
	f := workbench.NewFragrance(strings.TrimSpace(name), strings.TrimSpace(description), w.opts.IDs)
	_, err := w.Dispatch(ctx, workbench.AddFragrance{Fragrance: f})
	return f, err
}

// UpdateFragrance replaces the catalog entry with f's id.
func (w *Workspace) UpdateFragrance(ctx context.Context, f workbench.Fragrance) error {
	if _, ok := w.Document().Fragrance(f.ID); !ok {
		return fmt.Errorf("fragrance %q: %w", f.ID, ErrNotFound)
	}
	_, err := w.Dispatch(ctx, workbench.UpdateFragrance{Fragrance: f})
	return err
}

// DeleteFragrance removes a catalog entry. Choices keep referencing it.
func (w *Workspace) DeleteFragrance(ctx context.Context, id string) error {
	_, err := w.Dispatch(ctx, workbench.DeleteFragrance{ID: id})
	return err
}

// NewPattern creates a pattern seeded from the question templates.
func (w *Workspace) NewPattern(ctx context.Context, name string) (workbench.Pattern, error) {
	p := workbench.NewPattern(strings.TrimSpace(name), w.opts.IDs, w.now())
	_, err := w.Dispatch(ctx, workbench.AddPattern{Pattern: p})
	return p, err
}

// DuplicatePattern copies the pattern with id under fresh ids.
func (w *Workspace) DuplicatePattern(ctx context.Context, id string) (workbench.Pattern, error) {
	src, ok := w.Document().Pattern(id)
	if !ok {
		return workbench.Pattern{}, fmt.Errorf("pattern %q: %w", id, ErrNotFound)
	}
	p := workbench.DuplicatePattern(src, w.opts.IDs, w.now())
	_, err := w.Dispatch(ctx, workbench.AddPattern{Pattern: p})
	return p, err
}

// RenamePattern changes a pattern's name and bumps updatedAt.
func (w *Workspace) RenamePattern(ctx context.Context, id, name string) error {
	p, ok := w.Document().Pattern(id)
	if !ok {
		return fmt.Errorf("pattern %q: %w", id, ErrNotFound)
	}
	p.Name = strings.TrimSpace(name)
	p.UpdatedAt = w.now()
	_, err := w.Dispatch(ctx, workbench.UpdatePattern{Pattern: p})
	return err
}

// DeletePattern removes a pattern.
func (w *Workspace) DeletePattern(ctx context.Context, id string) error {
	_, err := w.Dispatch(ctx, workbench.DeletePattern{ID: id})
	return err
}

// Assign places a fragrance in one choice of a question, taking it out of
// the others.
func (w *Workspace) Assign(ctx context.Context, patternID string, number int, fragranceID string, choiceIndex int) error {
	up, ok := workbench.Assign(w.Document(), patternID, number, fragranceID, choiceIndex)
	if !ok {
		return fmt.Errorf("pattern %q question %d: %w", patternID, number, ErrNotFound)
	}
	_, err := w.Dispatch(ctx, up)
	return err
}

// Unassign removes a fragrance from one choice.
func (w *Workspace) Unassign(ctx context.Context, patternID string, number int, fragranceID string, choiceIndex int) error {
	up, ok := workbench.Unassign(w.Document(), patternID, number, fragranceID, choiceIndex)
	if !ok {
		return fmt.Errorf("pattern %q question %d: %w", patternID, number, ErrNotFound)
	}
	_, err := w.Dispatch(ctx, up)
	return err
}

// EditQuestion applies fn to a question and stores the result.
func (w *Workspace) EditQuestion(ctx context.Context, patternID string, number int, fn func(workbench.Question) workbench.Question) error {
	up, ok := workbench.EditQuestion(w.Document(), patternID, number, fn)
	if !ok {
		return fmt.Errorf("pattern %q question %d: %w", patternID, number, ErrNotFound)
	}
	_, err := w.Dispatch(ctx, up)
	return err
}

// AddNote attaches a note to a pattern (questionNumber 0) or one of its
// questions.
func (w *Workspace) AddNote(ctx context.Context, patternID string, questionNumber int, text string) (workbench.Note, error) {
	if _, ok := w.Document().Pattern(patternID); !ok {
		return workbench.Note{}, fmt.Errorf("pattern %q: %w", patternID, ErrNotFound)
	}
	n := workbench.NewNote(questionNumber, strings.TrimSpace(text), w.opts.IDs, w.now())
	_, err := w.Dispatch(ctx, workbench.AddNote{PatternID: patternID, Note: n})
	return n, err
}

// DeleteNote removes a note. The pattern's updatedAt is left alone.
func (w *Workspace) DeleteNote(ctx context.Context, patternID, noteID string) error {
	_, err := w.Dispatch(ctx, workbench.DeleteNote{PatternID: patternID, NoteID: noteID})
	return err
}

func (w *Workspace) now() time.Time {
	if w.opts.Reducer.Now != nil {
		return w.opts.Reducer.Now()
	}
	return time.Now().UTC()
}
