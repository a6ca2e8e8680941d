package store

import (
	"github.com/ayoisaiah/lockin/ledger"
)

// DB is the database storage interface.
type DB interface {
	// SaveRecords overwrites the entire persisted history with the given
	// snapshot.
	SaveRecords(records []ledger.Record) error
	// LoadRecords returns the persisted history, newest first. Missing or
	// unparseable data yields an empty history, never an error the caller
	// must handle at startup.
	LoadRecords() ([]ledger.Record, error)
	// SaveStreak persists the focus streak counter.
	SaveStreak(streak int) error
	// LoadStreak returns the persisted streak, or zero when absent.
	LoadStreak() (int, error)
	// Close ends the database connection
	Close() error
	// Open begins a database connection
	Open() error
}
