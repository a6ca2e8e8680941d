package ledger

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ayoisaiah/lockin/internal/apperr"
)

// ErrNotFound indicates an edit aimed at a record that is no longer in the
// history, e.g. one cleared while the edit was in flight.
var ErrNotFound = &apperr.Error{
	Message: "no history record with id %s",
}

// Persister stores the full history whenever it changes. Implementations
// must treat the slice as read-only.
type Persister interface {
	SaveRecords(records []Record) error
}

// Ledger is the ordered, newest-first history of session and break records.
// It upholds three invariants: at most one break is open at any time, breaks
// and sessions are only ever inserted together as a pair, and record ids are
// unique. The session controller is its sole writer.
type Ledger struct {
	persister Persister
	records   []Record
	mu        sync.Mutex
	strict    bool
}

// New creates a ledger seeded with previously persisted records. A nil
// persister keeps the ledger memory-only.
func New(records []Record, persister Persister) *Ledger {
	return &Ledger{
		records:   records,
		persister: persister,
	}
}

// Prepend inserts a new open break and its paired completed session at the
// front of the history in one atomic step. If another open break survives
// the insert, the controller has misbehaved: the stale break is closed at
// the new break's start and the anomaly is logged.
func (l *Ledger) Prepend(brk BreakRecord, sess SessionRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pair := []Record{
		{Kind: KindBreak, Break: &brk},
		{Kind: KindSession, Session: &sess},
	}

	l.records = append(pair, l.records...)

	l.repairOpenBreaksLocked(brk.ID, brk.StartTime)

	l.persistLocked()
}

// CloseOpenBreak ends the ongoing break, if any, computing its duration
// from the given instant. It is a no-op when no break is open.
func (l *Ledger) CloseOpenBreak(now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.closeBreakLocked(nil, now) {
		return
	}

	l.persistLocked()
}

// UpdateBreakNote replaces the note on the break with the given id.
func (l *Ledger) UpdateBreakNote(id, note string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		r := &l.records[i]
		if r.Kind == KindBreak && r.Break.ID == id {
			r.Break.Note = note

			l.persistLocked()

			return nil
		}
	}

	return ErrNotFound.Fmt(id)
}

// SessionPatch carries the amendable fields of a session record. Nil fields
// are left untouched.
type SessionPatch struct {
	Comment      *string
	Distractions *int
	Difficulty   *Difficulty
}

// AmendSession merges the patch into an archived session record.
func (l *Ledger) AmendSession(id string, patch SessionPatch) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		r := &l.records[i]
		if r.Kind != KindSession || r.Session.ID != id {
			continue
		}

		if patch.Comment != nil {
			r.Session.Comment = *patch.Comment
		}

		if patch.Distractions != nil && *patch.Distractions >= 0 {
			r.Session.Distractions = *patch.Distractions
		}

		if patch.Difficulty != nil && patch.Difficulty.Valid() {
			r.Session.Difficulty = *patch.Difficulty
		}

		l.persistLocked()

		return nil
	}

	return ErrNotFound.Fmt(id)
}

// Clear empties the history. There is no undo.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = nil

	l.persistLocked()
}

// Records returns a defensive copy of the history, newest first.
func (l *Ledger) Records() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		out = append(out, r.clone())
	}

	return out
}

// Len reports the number of records in the history.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.records)
}

// OpenBreak returns a copy of the ongoing break, if one exists.
func (l *Ledger) OpenBreak() (BreakRecord, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		r := &l.records[i]
		if r.Kind == KindBreak && r.Break.Open() {
			return *r.Break, true
		}
	}

	return BreakRecord{}, false
}

// TotalFocus sums the durations of all archived sessions.
func (l *Ledger) TotalFocus() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total time.Duration

	for i := range l.records {
		r := &l.records[i]
		if r.Kind == KindSession {
			total += r.Session.Duration
		}
	}

	return total
}

// TotalBreak sums the durations of all closed breaks. The ongoing break, if
// any, contributes nothing until it is closed.
func (l *Ledger) TotalBreak() time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	var total time.Duration

	for i := range l.records {
		r := &l.records[i]
		if r.Kind == KindBreak && !r.Break.Open() {
			total += r.Break.Duration
		}
	}

	return total
}

// closeBreakLocked closes the first open break whose id is not in keep,
// reporting whether one was found. The caller holds the lock.
func (l *Ledger) closeBreakLocked(keep map[string]bool, now time.Time) bool {
	for i := range l.records {
		r := &l.records[i]
		if r.Kind != KindBreak || !r.Break.Open() || keep[r.Break.ID] {
			continue
		}

		r.Break.EndTime = now

		d := now.Sub(r.Break.StartTime)
		if d < 0 {
			d = 0
		}

		r.Break.Duration = d

		return true
	}

	return false
}

// repairOpenBreaksLocked enforces the single-open-break invariant after an
// insert. keepID marks the break that is legitimately open.
func (l *Ledger) repairOpenBreaksLocked(keepID string, at time.Time) {
	keep := map[string]bool{keepID: true}

	for l.closeBreakLocked(keep, at) {
		if l.strict {
			panic("ledger: more than one open break")
		}

		slog.Error(
			"history invariant violated: closed a stale open break",
			slog.Time("closed_at", at),
		)
	}
}

func (l *Ledger) persistLocked() {
	if l.persister == nil {
		return
	}

	snapshot := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		snapshot = append(snapshot, r.clone())
	}

	if err := l.persister.SaveRecords(snapshot); err != nil {
		// In-memory state stays authoritative for the running process.
		slog.Error("failed to persist history", slog.Any("error", err))
	}
}
