package store_test

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/lockin/ledger"
	"github.com/ayoisaiah/lockin/store"
)

func newClient(t *testing.T) *store.Client {
	t.Helper()

	c, err := store.NewClient(filepath.Join(t.TempDir(), "lockin.db"))
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func TestRecordsRoundTrip(t *testing.T) {
	c := newClient(t)

	start := time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC)
	score := 64

	records := []ledger.Record{
		{
			Kind: ledger.KindBreak,
			Break: &ledger.BreakRecord{
				ID:        "b1",
				StartTime: start.Add(25 * time.Minute),
				Note:      "coffee",
			},
		},
		{
			Kind: ledger.KindSession,
			Session: &ledger.SessionRecord{
				ID:           "s1",
				StartTime:    start,
				Duration:     25 * time.Minute,
				Goal:         "Write report",
				Distractions: 2,
				Posture:      &score,
				Difficulty:   ledger.DifficultyMedium,
			},
		},
	}

	if err := c.SaveRecords(records); err != nil {
		t.Fatal(err)
	}

	got, err := c.LoadRecords()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(records, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadRecordsEmptyStore(t *testing.T) {
	c := newClient(t)

	got, err := c.LoadRecords()
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 0 {
		t.Errorf("expected empty history, got %d records", len(got))
	}
}

func TestLoadRecordsToleratesCorruptData(t *testing.T) {
	c := newClient(t)

	err := c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte("history")).
			Put([]byte("records"), []byte("{not json"))
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := c.LoadRecords()
	if err != nil {
		t.Fatal(err)
	}

	if len(got) != 0 {
		t.Errorf("expected corrupt history to load as empty, got %d records", len(got))
	}
}

func TestNewClientWhileLocked(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "lockin.db")

	first, err := store.NewClient(dbPath)
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		_ = first.Close()
	})

	// a second instance must be refused while the first holds the lock
	_, err = store.NewClient(dbPath)
	if err == nil {
		t.Fatal("expected an error opening a locked database")
	}

	if !strings.Contains(err.Error(), "already running") {
		t.Errorf("expected single-instance error, got %q", err)
	}
}

func TestStreakRoundTrip(t *testing.T) {
	c := newClient(t)

	streak, err := c.LoadStreak()
	if err != nil {
		t.Fatal(err)
	}

	if streak != 0 {
		t.Errorf("expected zero streak on fresh store, got %d", streak)
	}

	if err := c.SaveStreak(7); err != nil {
		t.Fatal(err)
	}

	streak, err = c.LoadStreak()
	if err != nil {
		t.Fatal(err)
	}

	if streak != 7 {
		t.Errorf("expected streak 7, got %d", streak)
	}
}
