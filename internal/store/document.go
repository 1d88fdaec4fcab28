package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/aromabench/internal/workbench"
)

// SnapshotRepo implements DocumentRepo on the documents table. Every Save
// appends a snapshot; Load reads the newest one.
type SnapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *SnapshotRepo) timestamp() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now().UTC()
}

// Load returns the newest snapshot, or nil if none exist. A snapshot that
// fails to decode yields an error wrapping ErrCorrupt.
func (r *SnapshotRepo) Load(ctx context.Context) (*workbench.Document, error) {
	d := entsql.Dialect(dialect.SQLite)
	query, args := d.Select("data").
		From(d.Table(DocumentsTable.Name)).
		OrderBy(entsql.Desc("sequence")).
		Limit(1).
		Query()

	var data []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest document: %w", err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save appends doc as the newest snapshot.
func (r *SnapshotRepo) Save(ctx context.Context, doc workbench.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}

	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(DocumentsTable.Name).
		Columns("sequence", "saved_at", "data").
		Values(seq, r.timestamp(), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// Prune deletes all but the keep most recent snapshots. keep <= 0 keeps
// everything.
func (r *SnapshotRepo) Prune(ctx context.Context, keep int) error {
	if keep <= 0 {
		return nil
	}

	// Find the threshold: the sequence of the first snapshot to drop.
	d := entsql.Dialect(dialect.SQLite)
	query, args := d.Select("sequence").
		From(d.Table(DocumentsTable.Name)).
		OrderBy(entsql.Desc("sequence")).
		Offset(keep).
		Limit(1).
		Query()

	var threshold int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold)
	if errors.Is(err, sql.ErrNoRows) {
		return nil // fewer than keep snapshots exist
	}
	if err != nil {
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = d.Delete(DocumentsTable.Name).
		Where(entsql.LTE("sequence", threshold)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}

// History lists snapshot metadata, newest first. limit <= 0 lists all.
func (r *SnapshotRepo) History(ctx context.Context, limit int) ([]SnapshotInfo, error) {
	d := entsql.Dialect(dialect.SQLite)
	sel := d.Select("id", "sequence", "saved_at", "length(data)").
		From(d.Table(DocumentsTable.Name)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query snapshot history: %w", err)
	}
	defer rows.Close()

	var out []SnapshotInfo
	for rows.Next() {
		var info SnapshotInfo
		if err := rows.Scan(&info.ID, &info.Sequence, &info.SavedAt, &info.Size); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query snapshot history: %w", err)
	}
	return out, nil
}
