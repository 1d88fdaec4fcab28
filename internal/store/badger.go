package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/abhisek/aromabench/internal/logging"
	"github.com/abhisek/aromabench/internal/workbench"
)

// DocumentKey is the badger key holding the encoded document.
const DocumentKey = "aroma-workbench"

const (
	eventPrefix    = "event/"
	sequenceKey    = "meta/sequence"
	sequenceLeases = 16
)

// BadgerConfig holds configuration for a BadgerStore.
type BadgerConfig struct {
	// Path is the directory for BadgerDB files. Ignored when InMemory is true.
	Path string

	// InMemory enables in-memory mode (no disk persistence). Used by tests.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger receives badger's internal log lines. Nil disables them.
	Logger *logging.Logger
}

// BadgerStore is the key-value backend: one key for the document, one key
// per intent event.
type BadgerStore struct {
	db  *badger.DB
	seq *badger.Sequence
	now func() time.Time
	mu  sync.Mutex
}

// OpenBadger opens a BadgerStore with the given configuration.
func OpenBadger(cfg BadgerConfig) (*BadgerStore, error) {
	if !cfg.InMemory && cfg.Path == "" {
		return nil, errors.New("path is required for persistent database")
	}

	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(cfg.Path, 0o750); err != nil {
			return nil, fmt.Errorf("create database directory %s: %w", cfg.Path, err)
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites).WithNumVersionsToKeep(1)
	if cfg.Logger != nil {
		opts = opts.WithLogger(cfg.Logger)
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger database: %w", err)
	}

	seq, err := db.GetSequence([]byte(sequenceKey), sequenceLeases)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open event sequence: %w", err)
	}
	return &BadgerStore{db: db, seq: seq}, nil
}

// OpenBadgerInMemory opens an in-memory BadgerStore.
func OpenBadgerInMemory() (*BadgerStore, error) {
	return OpenBadger(BadgerConfig{InMemory: true})
}

// Close releases the sequence lease and closes the database.
func (s *BadgerStore) Close() error {
	if err := s.seq.Release(); err != nil {
		s.db.Close()
		return fmt.Errorf("release sequence: %w", err)
	}
	return s.db.Close()
}

// Documents implements Backend.
func (s *BadgerStore) Documents() DocumentRepo { return s }

// Events implements Backend.
func (s *BadgerStore) Events() EventRepo { return s }

func (s *BadgerStore) timestamp() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now().UTC()
}

// Load returns the stored document, or nil if the key is absent.
func (s *BadgerStore) Load(ctx context.Context) (*workbench.Document, error) {
	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(DocumentKey))
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load document: %w", err)
	}

	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Save overwrites the stored document.
func (s *BadgerStore) Save(ctx context.Context, doc workbench.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(DocumentKey), data)
	})
	if err != nil {
		return fmt.Errorf("save document: %w", err)
	}
	return nil
}

// badgerEvent is the stored form of an IntentEvent.
type badgerEvent struct {
	Sequence  int64           `json:"sequence"`
	Timestamp time.Time       `json:"timestamp"`
	Kind      string          `json:"kind"`
	PatternID string          `json:"patternId"`
	Payload   json.RawMessage `json:"payload"`
}

// eventKey orders events by sequence under a lexicographic key scan.
func eventKey(seq int64) []byte {
	key := make([]byte, len(eventPrefix)+8)
	copy(key, eventPrefix)
	binary.BigEndian.PutUint64(key[len(eventPrefix):], uint64(seq))
	return key
}

// Append implements EventRepo.
func (s *BadgerStore) Append(ctx context.Context, in workbench.Intent) (IntentEvent, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return IntentEvent{}, fmt.Errorf("marshal %s payload: %w", in.Kind(), err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// badger sequences start at 0; event sequences start at 1.
	next, err := s.seq.Next()
	if err != nil {
		return IntentEvent{}, fmt.Errorf("next sequence: %w", err)
	}
	stored := badgerEvent{
		Sequence:  int64(next) + 1,
		Timestamp: s.timestamp(),
		Kind:      string(in.Kind()),
		PatternID: in.PatternRef(),
		Payload:   payload,
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return IntentEvent{}, fmt.Errorf("marshal %s event: %w", in.Kind(), err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(eventKey(stored.Sequence), data)
	})
	if err != nil {
		return IntentEvent{}, fmt.Errorf("append %s event: %w", in.Kind(), err)
	}
	return stored.toEvent(), nil
}

// Query implements EventRepo.
func (s *BadgerStore) Query(ctx context.Context, opts QueryOpts) ([]IntentEvent, error) {
	var out []IntentEvent
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(eventPrefix)
		for it.Seek(eventKey(opts.After + 1)); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var ev badgerEvent
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &ev)
			})
			if err != nil {
				return fmt.Errorf("decode event: %w", err)
			}
			if opts.Kind != "" && ev.Kind != string(opts.Kind) {
				continue
			}
			if opts.PatternID != "" && ev.PatternID != opts.PatternID {
				continue
			}
			out = append(out, ev.toEvent())
			if opts.Limit > 0 && len(out) >= opts.Limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query intent events: %w", err)
	}
	return out, nil
}

func (e badgerEvent) toEvent() IntentEvent {
	return IntentEvent{
		ID:        int(e.Sequence),
		Sequence:  e.Sequence,
		Timestamp: e.Timestamp,
		Kind:      workbench.IntentKind(e.Kind),
		PatternID: e.PatternID,
		Payload:   e.Payload,
	}
}
