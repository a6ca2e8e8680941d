// Package engine implements the focus-session state machine: a pausable
// tick source, the countdown timer built on it, and the session controller
// that archives completed sessions into the history ledger.
package engine

import (
	"log/slog"
	"sync"
	"time"
)

// TickInterval is the clock resolution.
const TickInterval = time.Second

// TickFunc is invoked once per interval while a clock is active.
type TickFunc func()

// Ticker is the scheduling primitive the timer counts on. It knows nothing
// about sessions.
type Ticker interface {
	Start(onTick TickFunc)
	Pause()
	Resume()
	Cancel()
}

// Clock emits a notification once per fixed interval while active. Pausing
// freezes emission without losing the interval in progress; cancelling
// releases the underlying ticker so a later Start begins cleanly.
type Clock struct {
	stopCh   chan struct{}
	interval time.Duration
	mu       sync.Mutex
	running  bool
	paused   bool
}

// NewClock returns a clock ticking at the given interval, defaulting to
// TickInterval when zero.
func NewClock(interval time.Duration) *Clock {
	if interval <= 0 {
		interval = TickInterval
	}

	return &Clock{interval: interval}
}

// Start begins emitting ticks. It is a no-op while the clock is already
// running.
func (c *Clock) Start(onTick TickFunc) {
	c.mu.Lock()

	if c.running {
		c.mu.Unlock()
		return
	}

	c.running = true
	c.paused = false
	stop := make(chan struct{})
	c.stopCh = stop

	c.mu.Unlock()

	go c.run(onTick, stop)
}

// Pause freezes tick emission. Idempotent.
func (c *Clock) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.paused = true
}

// Resume continues tick emission after a pause without skipping or
// double-counting an interval. Idempotent.
func (c *Clock) Resume() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.paused = false
}

// Cancel stops emission permanently and releases the ticker. A subsequent
// Start restarts cleanly.
func (c *Clock) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.running {
		return
	}

	c.running = false
	close(c.stopCh)
}

func (c *Clock) run(onTick TickFunc, stop chan struct{}) {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			paused := c.paused
			c.mu.Unlock()

			if paused {
				continue
			}

			emit(onTick)
		}
	}
}

// emit shields the clock from a misbehaving callback: a single bad tick
// must not kill the loop.
func emit(onTick TickFunc) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("tick callback panicked", slog.Any("panic", r))
		}
	}()

	onTick()
}
