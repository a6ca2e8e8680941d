package ledger

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var base = time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)

func sessionRecord(id string, start time.Time, d time.Duration) SessionRecord {
	return SessionRecord{
		ID:        id,
		StartTime: start,
		Duration:  d,
		Goal:      "Write report",
	}
}

func breakRecord(id string, start time.Time) BreakRecord {
	return BreakRecord{
		ID:        id,
		StartTime: start,
	}
}

// memPersister records every snapshot it is handed.
type memPersister struct {
	saves [][]Record
	err   error
}

func (m *memPersister) SaveRecords(records []Record) error {
	m.saves = append(m.saves, records)
	return m.err
}

func openBreaks(l *Ledger) int {
	var n int

	for _, r := range l.Records() {
		if r.Kind == KindBreak && r.Break.Open() {
			n++
		}
	}

	return n
}

func TestPrependKeepsPairOrder(t *testing.T) {
	l := New(nil, nil)

	sessEnd := base.Add(25 * time.Minute)

	l.Prepend(
		breakRecord("b1", sessEnd),
		sessionRecord("s1", base, 25*time.Minute),
	)

	records := l.Records()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}

	if records[0].Kind != KindBreak || records[0].Break.ID != "b1" {
		t.Errorf("expected newest record to be break b1, got %+v", records[0])
	}

	if records[1].Kind != KindSession || records[1].Session.ID != "s1" {
		t.Errorf("expected second record to be session s1, got %+v", records[1])
	}

	if !records[0].Break.Open() {
		t.Error("expected freshly prepended break to be open")
	}
}

func TestAtMostOneOpenBreak(t *testing.T) {
	l := New(nil, nil)

	// Simulate several session/break cycles. Each cycle closes the previous
	// break before archiving the next pair, mirroring the controller.
	now := base

	for i := 0; i < 5; i++ {
		l.CloseOpenBreak(now)

		sessStart := now
		now = now.Add(25 * time.Minute)

		l.Prepend(
			BreakRecord{ID: breakID(i), StartTime: now},
			sessionRecord(sessID(i), sessStart, 25*time.Minute),
		)

		now = now.Add(5 * time.Minute)

		if got := openBreaks(l); got != 1 {
			t.Fatalf("cycle %d: expected 1 open break, got %d", i, got)
		}
	}
}

func breakID(i int) string { return "b" + string(rune('0'+i)) }
func sessID(i int) string  { return "s" + string(rune('0'+i)) }

func TestPrependRepairsStaleOpenBreak(t *testing.T) {
	l := New(nil, nil)

	l.Prepend(breakRecord("b1", base), sessionRecord("s1", base.Add(-time.Minute), time.Minute))

	// A second prepend without closing the first break is a controller bug;
	// the ledger must repair it instead of carrying two open breaks.
	second := base.Add(10 * time.Minute)
	l.Prepend(breakRecord("b2", second), sessionRecord("s2", base, 10*time.Minute))

	if got := openBreaks(l); got != 1 {
		t.Fatalf("expected a single open break after repair, got %d", got)
	}

	records := l.Records()

	var stale *BreakRecord

	for _, r := range records {
		if r.Kind == KindBreak && r.Break.ID == "b1" {
			stale = r.Break
		}
	}

	if stale == nil {
		t.Fatal("stale break b1 missing from history")
	}

	if stale.Open() {
		t.Error("expected stale break to be closed")
	}

	if !stale.EndTime.Equal(second) {
		t.Errorf("expected stale break closed at %v, got %v", second, stale.EndTime)
	}
}

func TestStrictModePanicsOnSecondOpenBreak(t *testing.T) {
	l := New(nil, nil)
	l.strict = true

	l.Prepend(breakRecord("b1", base), sessionRecord("s1", base.Add(-time.Minute), time.Minute))

	defer func() {
		if recover() == nil {
			t.Error("expected a panic when a second open break appears in strict mode")
		}
	}()

	// same controller bug as above, but strict mode refuses to repair it
	l.Prepend(
		breakRecord("b2", base.Add(10*time.Minute)),
		sessionRecord("s2", base, 10*time.Minute),
	)
}

func TestCloseOpenBreak(t *testing.T) {
	l := New(nil, nil)

	l.Prepend(breakRecord("b1", base), sessionRecord("s1", base.Add(-time.Minute), time.Minute))

	now := base.Add(7 * time.Minute)
	l.CloseOpenBreak(now)

	brk, open := l.OpenBreak()
	if open {
		t.Fatalf("expected no open break, found %s", brk.ID)
	}

	records := l.Records()
	if got := records[0].Break.Duration; got != 7*time.Minute {
		t.Errorf("expected break duration 7m, got %v", got)
	}

	// Closing again is a no-op.
	l.CloseOpenBreak(now.Add(time.Hour))

	if got := l.Records()[0].Break.Duration; got != 7*time.Minute {
		t.Errorf("expected duration unchanged, got %v", got)
	}
}

func TestUpdateBreakNote(t *testing.T) {
	l := New(nil, nil)

	l.Prepend(breakRecord("b1", base), sessionRecord("s1", base.Add(-time.Minute), time.Minute))

	if err := l.UpdateBreakNote("b1", "stretched my legs"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := l.Records()[0].Break.Note; got != "stretched my legs" {
		t.Errorf("expected note to be updated, got %q", got)
	}

	err := l.UpdateBreakNote("nope", "x")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestAmendSession(t *testing.T) {
	l := New(nil, nil)

	l.Prepend(breakRecord("b1", base), sessionRecord("s1", base.Add(-time.Minute), time.Minute))

	comment := "lost focus near the end"
	distractions := 4
	difficulty := DifficultyHard

	err := l.AmendSession("s1", SessionPatch{
		Comment:      &comment,
		Distractions: &distractions,
		Difficulty:   &difficulty,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sess := l.Records()[1].Session

	if sess.Comment != comment {
		t.Errorf("expected comment %q, got %q", comment, sess.Comment)
	}

	if sess.Distractions != distractions {
		t.Errorf("expected distractions %d, got %d", distractions, sess.Distractions)
	}

	if sess.Difficulty != difficulty {
		t.Errorf("expected difficulty %s, got %s", difficulty, sess.Difficulty)
	}

	if err := l.AmendSession("missing", SessionPatch{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestClearEmptiesHistory(t *testing.T) {
	p := &memPersister{}
	l := New(nil, p)

	l.Prepend(breakRecord("b1", base), sessionRecord("s1", base.Add(-time.Minute), time.Minute))
	l.Clear()

	if l.Len() != 0 {
		t.Errorf("expected empty ledger, got %d records", l.Len())
	}

	last := p.saves[len(p.saves)-1]
	if len(last) != 0 {
		t.Errorf("expected empty snapshot persisted, got %d records", len(last))
	}
}

func TestTotals(t *testing.T) {
	l := New(nil, nil)

	now := base

	l.Prepend(BreakRecord{ID: "b1", StartTime: now.Add(25 * time.Minute)},
		sessionRecord("s1", now, 25*time.Minute))

	now = now.Add(30 * time.Minute)
	l.CloseOpenBreak(now)

	l.Prepend(BreakRecord{ID: "b2", StartTime: now.Add(10 * time.Minute)},
		sessionRecord("s2", now, 10*time.Minute))

	if got := l.TotalFocus(); got != 35*time.Minute {
		t.Errorf("expected total focus 35m, got %v", got)
	}

	// b2 is still open and must not count.
	if got := l.TotalBreak(); got != 5*time.Minute {
		t.Errorf("expected total break 5m, got %v", got)
	}
}

func TestPersistCalledOnEveryMutation(t *testing.T) {
	p := &memPersister{}
	l := New(nil, p)

	l.Prepend(breakRecord("b1", base), sessionRecord("s1", base.Add(-time.Minute), time.Minute))
	l.CloseOpenBreak(base.Add(time.Minute))
	_ = l.UpdateBreakNote("b1", "note")

	comment := "c"
	_ = l.AmendSession("s1", SessionPatch{Comment: &comment})

	l.Clear()

	if len(p.saves) != 5 {
		t.Errorf("expected 5 persisted snapshots, got %d", len(p.saves))
	}
}

func TestPersistFailureIsNonFatal(t *testing.T) {
	p := &memPersister{err: errors.New("disk full")}
	l := New(nil, p)

	l.Prepend(breakRecord("b1", base), sessionRecord("s1", base.Add(-time.Minute), time.Minute))

	// In-memory state remains authoritative.
	if l.Len() != 2 {
		t.Errorf("expected records retained after persist failure, got %d", l.Len())
	}
}

func TestHistoryRoundTrip(t *testing.T) {
	l := New(nil, nil)

	score := 82
	sess := sessionRecord("s1", base, 25*time.Minute)
	sess.Posture = &score
	sess.Difficulty = DifficultyMedium
	sess.Comment = "solid block"
	sess.Distractions = 2

	l.Prepend(breakRecord("b1", base.Add(25*time.Minute)), sess)
	l.CloseOpenBreak(base.Add(30 * time.Minute))
	l.Prepend(breakRecord("b2", base.Add(40*time.Minute)),
		sessionRecord("s2", base.Add(30*time.Minute), 10*time.Minute))

	original := l.Records()

	b, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}

	var restored []Record

	if err := json.Unmarshal(b, &restored); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(original, restored); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
