package engine

import (
	"math"
	"sync"
	"time"

	"github.com/ayoisaiah/lockin/internal/apperr"
)

// Unbounded marks a session with no fixed duration. It is a sentinel
// maximum rather than literal infinity so remaining-time arithmetic stays
// well-defined.
const Unbounded = time.Duration(math.MaxInt64)

// ErrInvalidDuration rejects a start request before the clock is engaged.
var ErrInvalidDuration = &apperr.Error{
	Message: "session duration must be greater than zero",
}

// TimerEngine counts a requested duration down to zero, or counts an
// unbounded session up, on top of a Ticker.
type TimerEngine struct {
	ticker    Ticker
	onTick    func(remaining time.Duration)
	onExpire  func()
	interval  time.Duration
	remaining time.Duration
	elapsed   time.Duration
	gen       uint64
	mu        sync.Mutex
	unbounded bool
	active    bool
}

// NewTimerEngine wires a timer to its tick source. onTick receives the
// remaining time after every tick (Unbounded for open-ended runs); onExpire
// fires exactly once when a finite countdown reaches zero. Either callback
// may be nil.
func NewTimerEngine(
	ticker Ticker,
	interval time.Duration,
	onTick func(remaining time.Duration),
	onExpire func(),
) *TimerEngine {
	if interval <= 0 {
		interval = TickInterval
	}

	return &TimerEngine{
		ticker:   ticker,
		interval: interval,
		onTick:   onTick,
		onExpire: onExpire,
	}
}

// Start begins a countdown for the given duration, or an open-ended run
// when d is Unbounded. A non-positive finite duration is rejected before
// the clock is engaged.
func (e *TimerEngine) Start(d time.Duration) error {
	if d != Unbounded && d <= 0 {
		return ErrInvalidDuration
	}

	e.mu.Lock()
	e.gen++
	e.remaining = d
	e.elapsed = 0
	e.unbounded = d == Unbounded
	e.active = true
	e.mu.Unlock()

	e.ticker.Start(e.tick)

	return nil
}

// Pause freezes the countdown. Remaining time holds across a pause/resume
// pair to within one tick interval.
func (e *TimerEngine) Pause() {
	e.ticker.Pause()
}

// Resume continues a paused countdown.
func (e *TimerEngine) Resume() {
	e.ticker.Resume()
}

// Stop cancels the clock and suppresses any tick or expiry that may already
// be queued, guarding against a user stop racing a natural expiry.
func (e *TimerEngine) Stop() {
	e.mu.Lock()
	e.active = false
	e.gen++
	e.mu.Unlock()

	e.ticker.Cancel()
}

// Remaining reports the time left on the countdown and whether the run is
// unbounded.
func (e *TimerEngine) Remaining() (time.Duration, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.remaining, e.unbounded
}

// Elapsed reports accumulated ticking time. Paused time is excluded because
// a paused clock emits nothing.
func (e *TimerEngine) Elapsed() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.elapsed
}

// Active reports whether a run is in progress.
func (e *TimerEngine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.active
}

func (e *TimerEngine) tick() {
	e.mu.Lock()

	if !e.active {
		e.mu.Unlock()
		return
	}

	gen := e.gen
	e.elapsed += e.interval

	var expired bool

	if !e.unbounded {
		e.remaining -= e.interval
		if e.remaining <= 0 {
			e.remaining = 0
			e.active = false
			expired = true
		}
	}

	remaining := e.remaining
	if e.unbounded {
		remaining = Unbounded
	}

	onTick, onExpire := e.onTick, e.onExpire

	e.mu.Unlock()

	if expired {
		// Expiry is terminal until Start is called again.
		e.ticker.Cancel()
	}

	if !e.sameGen(gen) {
		return
	}

	if onTick != nil {
		onTick(remaining)
	}

	if expired && onExpire != nil {
		onExpire()
	}
}

// sameGen reports whether no Start or Stop intervened since the generation
// was captured.
func (e *TimerEngine) sameGen(gen uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.gen == gen
}
