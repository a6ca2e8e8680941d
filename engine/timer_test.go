package engine

import (
	"errors"
	"testing"
	"time"
)

func TestTimerRejectsNonPositiveDuration(t *testing.T) {
	cases := []struct {
		name string
		d    time.Duration
	}{
		{name: "zero", d: 0},
		{name: "negative", d: -time.Minute},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ticker := &fakeTicker{}
			e := NewTimerEngine(ticker, time.Second, nil, nil)

			err := e.Start(tc.d)
			if !errors.Is(err, ErrInvalidDuration) {
				t.Errorf("expected ErrInvalidDuration, got %v", err)
			}

			if ticker.started != 0 {
				t.Error("clock must not be engaged for an invalid duration")
			}
		})
	}
}

func TestTimerCountdown(t *testing.T) {
	ticker := &fakeTicker{}

	var remaining []time.Duration

	e := NewTimerEngine(ticker, time.Second, func(r time.Duration) {
		remaining = append(remaining, r)
	}, nil)

	if err := e.Start(3 * time.Second); err != nil {
		t.Fatal(err)
	}

	ticker.tick(2)

	r, unbounded := e.Remaining()
	if unbounded {
		t.Error("finite run reported as unbounded")
	}

	if r != time.Second {
		t.Errorf("expected 1s remaining, got %v", r)
	}

	want := []time.Duration{2 * time.Second, time.Second}
	if len(remaining) != len(want) {
		t.Fatalf("expected %d tick callbacks, got %d", len(want), len(remaining))
	}

	for i := range want {
		if remaining[i] != want[i] {
			t.Errorf("tick %d: expected %v, got %v", i, want[i], remaining[i])
		}
	}
}

func TestTimerExpiresExactlyOnce(t *testing.T) {
	ticker := &fakeTicker{}

	var expires int

	e := NewTimerEngine(ticker, time.Second, nil, func() { expires++ })

	if err := e.Start(2 * time.Second); err != nil {
		t.Fatal(err)
	}

	ticker.tick(2)

	// A queued tick can still arrive after the engine cancelled its clock.
	ticker.running = true
	ticker.tick(3)

	if expires != 1 {
		t.Errorf("expected exactly one expiry, got %d", expires)
	}

	if e.Active() {
		t.Error("expected timer to be inactive after expiry")
	}
}

func TestTimerExpiryCancelsClock(t *testing.T) {
	ticker := &fakeTicker{}
	e := NewTimerEngine(ticker, time.Second, nil, nil)

	if err := e.Start(time.Second); err != nil {
		t.Fatal(err)
	}

	ticker.tick(1)

	if ticker.running {
		t.Error("expected clock cancelled after expiry")
	}
}

func TestTimerStopSuppressesCallbacks(t *testing.T) {
	ticker := &fakeTicker{}

	var ticks, expires int

	e := NewTimerEngine(ticker, time.Second,
		func(time.Duration) { ticks++ },
		func() { expires++ },
	)

	if err := e.Start(2 * time.Second); err != nil {
		t.Fatal(err)
	}

	ticker.tick(1)
	e.Stop()

	// A tick that was already queued when Stop ran.
	ticker.running = true
	ticker.tick(1)

	if ticks != 1 {
		t.Errorf("expected 1 tick callback, got %d", ticks)
	}

	if expires != 0 {
		t.Errorf("expected no expiry after stop, got %d", expires)
	}
}

func TestTimerRestartAfterStop(t *testing.T) {
	ticker := &fakeTicker{}
	e := NewTimerEngine(ticker, time.Second, nil, nil)

	if err := e.Start(5 * time.Second); err != nil {
		t.Fatal(err)
	}

	ticker.tick(2)
	e.Stop()

	if err := e.Start(3 * time.Second); err != nil {
		t.Fatal(err)
	}

	ticker.tick(1)

	r, _ := e.Remaining()
	if r != 2*time.Second {
		t.Errorf("expected fresh countdown at 2s, got %v", r)
	}
}

func TestTimerUnbounded(t *testing.T) {
	ticker := &fakeTicker{}

	var lastRemaining time.Duration

	e := NewTimerEngine(ticker, time.Second, func(r time.Duration) {
		lastRemaining = r
	}, func() {
		t.Error("unbounded run must never expire")
	})

	if err := e.Start(Unbounded); err != nil {
		t.Fatal(err)
	}

	ticker.tick(100)

	if lastRemaining != Unbounded {
		t.Errorf("expected Unbounded remaining, got %v", lastRemaining)
	}

	if got := e.Elapsed(); got != 100*time.Second {
		t.Errorf("expected 100s elapsed, got %v", got)
	}

	_, unbounded := e.Remaining()
	if !unbounded {
		t.Error("expected run to report unbounded")
	}
}

func TestTimerPauseFreezesRemaining(t *testing.T) {
	ticker := &fakeTicker{}
	e := NewTimerEngine(ticker, time.Second, nil, nil)

	if err := e.Start(10 * time.Second); err != nil {
		t.Fatal(err)
	}

	ticker.tick(3)
	e.Pause()
	ticker.tick(5)

	r, _ := e.Remaining()
	if r != 7*time.Second {
		t.Errorf("expected remaining frozen at 7s, got %v", r)
	}

	e.Resume()
	ticker.tick(2)

	r, _ = e.Remaining()
	if r != 5*time.Second {
		t.Errorf("expected 5s remaining after resume, got %v", r)
	}
}
