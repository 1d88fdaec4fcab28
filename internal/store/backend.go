package store

import (
	"fmt"

	"github.com/abhisek/aromabench/internal/logging"
)

// Storage driver names accepted by OpenBackend.
const (
	DriverSQLite = "sqlite"
	DriverBadger = "badger"
)

// Options selects and configures a storage backend.
type Options struct {
	Driver   string // DriverSQLite (default) or DriverBadger
	Path     string // database file for sqlite, directory for badger
	InMemory bool
	Logger   *logging.Logger
}

// OpenBackend opens the backend named by opts.Driver.
func OpenBackend(opts Options) (Backend, error) {
	switch opts.Driver {
	case "", DriverSQLite:
		dsn := opts.Path
		if opts.InMemory {
			dsn = MemoryDSN("aromabench")
		}
		return Open(dsn)
	case DriverBadger:
		return OpenBadger(BadgerConfig{
			Path:       opts.Path,
			InMemory:   opts.InMemory,
			SyncWrites: !opts.InMemory,
			Logger:     opts.Logger,
		})
	default:
		return nil, fmt.Errorf("unknown storage driver %q", opts.Driver)
	}
}

// MemoryDSN returns a DSN for a named in-memory SQLite database. Distinct
// names give distinct databases.
func MemoryDSN(name string) string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
}
