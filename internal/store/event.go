package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/aromabench/internal/workbench"
)

// sequenceCounter hands out one monotonic sequence shared by document
// snapshots and intent events, so a snapshot sorts among the events that
// produced it. The counter row lives in global_sequence.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates the counter row on first use.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next reserves and returns the next sequence number.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo on the intent_events table.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) timestamp() time.Time {
	if r.now != nil {
		return r.now()
	}
	return time.Now().UTC()
}

func (r *eventRepo) Append(ctx context.Context, in workbench.Intent) (IntentEvent, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return IntentEvent{}, fmt.Errorf("marshal %s payload: %w", in.Kind(), err)
	}

	seq, err := r.seq.Next(ctx)
	if err != nil {
		return IntentEvent{}, err
	}

	ev := IntentEvent{
		Sequence:  seq,
		Timestamp: r.timestamp(),
		Kind:      in.Kind(),
		PatternID: in.PatternRef(),
		Payload:   payload,
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(IntentEventsTable.Name).
		Columns("sequence", "timestamp", "kind", "pattern_id", "payload").
		Values(ev.Sequence, ev.Timestamp, string(ev.Kind), ev.PatternID, string(ev.Payload)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return IntentEvent{}, fmt.Errorf("append %s event: %w", ev.Kind, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return IntentEvent{}, fmt.Errorf("append %s event: %w", ev.Kind, err)
	}
	ev.ID = int(id)
	return ev, nil
}

func (r *eventRepo) Query(ctx context.Context, opts QueryOpts) ([]IntentEvent, error) {
	d := entsql.Dialect(dialect.SQLite)
	sel := d.Select("id", "sequence", "timestamp", "kind", "pattern_id", "payload").
		From(d.Table(IntentEventsTable.Name)).
		OrderBy("sequence")

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Kind != "" {
		preds = append(preds, entsql.EQ("kind", string(opts.Kind)))
	}
	if opts.PatternID != "" {
		preds = append(preds, entsql.EQ("pattern_id", opts.PatternID))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query intent events: %w", err)
	}
	defer rows.Close()

	var out []IntentEvent
	for rows.Next() {
		var (
			ev      IntentEvent
			kind    string
			payload []byte
		)
		if err := rows.Scan(&ev.ID, &ev.Sequence, &ev.Timestamp, &kind, &ev.PatternID, &payload); err != nil {
			return nil, fmt.Errorf("scan intent event: %w", err)
		}
		ev.Kind = workbench.IntentKind(kind)
		ev.Payload = json.RawMessage(payload)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query intent events: %w", err)
	}
	return out, nil
}
