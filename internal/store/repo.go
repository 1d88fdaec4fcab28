package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/abhisek/aromabench/internal/workbench"
)

// DocumentRepo loads and saves the single workbench document.
type DocumentRepo interface {
	// Load returns the stored document, or nil if nothing was saved yet.
	Load(ctx context.Context) (*workbench.Document, error)

	// Save stores doc, replacing what Load returns.
	Save(ctx context.Context, doc workbench.Document) error
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int                  // max results (0 = unlimited)
	After     int64                // sequence > After
	Kind      workbench.IntentKind // empty = any kind
	PatternID string               // empty = any pattern
}

// IntentEvent is one applied intent as recorded in the event log.
type IntentEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Kind      workbench.IntentKind
	PatternID string
	Payload   json.RawMessage
}

// EventRepo is the append-only log of applied intents.
type EventRepo interface {
	// Append records in and returns the stored event.
	Append(ctx context.Context, in workbench.Intent) (IntentEvent, error)

	// Query returns events in sequence order.
	Query(ctx context.Context, opts QueryOpts) ([]IntentEvent, error)
}

// SnapshotInfo describes a stored document snapshot without its data.
type SnapshotInfo struct {
	ID       int
	Sequence int64
	SavedAt  time.Time
	Size     int
}

// Backend bundles the repositories a storage driver provides.
type Backend interface {
	Documents() DocumentRepo
	Events() EventRepo
	Close() error
}
