package engine

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ayoisaiah/lockin/ledger"
	"github.com/ayoisaiah/lockin/store"
)

// DefaultGoal stands in for a session started without a stated goal.
const DefaultGoal = "YOLO-MODE"

// streakThreshold is the distraction count at which a completed session
// breaks the focus streak.
const streakThreshold = 3

// State is the controller's position in the session lifecycle.
type State int

const (
	StateIdle State = iota
	StateRunning
	StatePaused
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "idle"
	}
}

// PostureFunc supplies an optional posture score at session end. It must
// return quickly; the controller never waits for a sensor.
type PostureFunc func() (score int, ok bool)

// Controller owns the session lifecycle. It drives the timer, counts
// distractions, derives the focus streak, and is the sole writer of the
// history ledger. Guard violations from duplicate UI events (double start,
// stop while idle, distraction while paused) are deliberate silent no-ops.
type Controller struct {
	engine        *TimerEngine
	ledger        *ledger.Ledger
	db            store.DB
	listener      Listener
	posture       PostureFunc
	now           func() time.Time
	goal          string
	lastSessionID string
	difficulty    ledger.Difficulty
	startTime     time.Time
	streak        int
	distractions  int
	state         State
	mu            sync.Mutex
	active        bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithListener subscribes a lifecycle listener.
func WithListener(l Listener) Option {
	return func(c *Controller) {
		if l != nil {
			c.listener = l
		}
	}
}

// WithPosture wires the posture collaborator.
func WithPosture(p PostureFunc) Option {
	return func(c *Controller) {
		if p != nil {
			c.posture = p
		}
	}
}

// WithNow overrides the wall clock, for tests.
func WithNow(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// NewController builds a controller on the given tick source. The previous
// streak is loaded from the store when one is provided.
func NewController(
	ticker Ticker,
	interval time.Duration,
	led *ledger.Ledger,
	db store.DB,
	opts ...Option,
) *Controller {
	c := &Controller{
		ledger:   led,
		db:       db,
		listener: NopListener{},
		now:      time.Now,
		state:    StateIdle,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.engine = NewTimerEngine(ticker, interval, nil, c.handleExpire)

	if db != nil {
		streak, err := db.LoadStreak()
		if err != nil {
			slog.Error("failed to load streak", slog.Any("error", err))
		}

		c.streak = streak
	}

	return c
}

// StartSession begins a new session. A blank goal resolves to DefaultGoal;
// d may be Unbounded for an open-ended session. Starting while a session is
// already running or paused is a silent no-op.
func (c *Controller) StartSession(goal string, d time.Duration) error {
	if d != Unbounded && d <= 0 {
		return ErrInvalidDuration
	}

	c.mu.Lock()

	if c.state != StateIdle {
		// Duplicate start events from fast UI interaction are expected.
		c.mu.Unlock()
		return nil
	}

	now := c.now()

	resolved := strings.TrimSpace(goal)
	if resolved == "" {
		resolved = DefaultGoal
	}

	c.ledger.CloseOpenBreak(now)

	c.distractions = 0
	c.goal = resolved
	c.startTime = now
	c.state = StateRunning
	c.active = true

	c.mu.Unlock()

	// The duration was validated above, so the engine cannot refuse it.
	_ = c.engine.Start(d)

	c.listener.OnStart(resolved)

	return nil
}

// SetDifficulty records the user's difficulty rating for the active
// session. Ignored while idle.
func (c *Controller) SetDifficulty(d ledger.Difficulty) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateIdle || !d.Valid() {
		return
	}

	c.difficulty = d
}

// Pause freezes the running session. No-op unless running.
func (c *Controller) Pause() {
	c.mu.Lock()

	if c.state != StateRunning {
		c.mu.Unlock()
		return
	}

	c.state = StatePaused
	c.mu.Unlock()

	c.engine.Pause()
	c.listener.OnPause()
}

// Resume continues a paused session. No-op unless paused.
func (c *Controller) Resume() {
	c.mu.Lock()

	if c.state != StatePaused {
		c.mu.Unlock()
		return
	}

	c.state = StateRunning
	c.mu.Unlock()

	c.engine.Resume()
	c.listener.OnResume()
}

// LogDistraction bumps the distraction counter. Distractions don't count
// while paused or idle.
func (c *Controller) LogDistraction() {
	c.mu.Lock()

	if c.state != StateRunning {
		c.mu.Unlock()
		return
	}

	c.distractions++
	count := c.distractions

	c.mu.Unlock()

	c.listener.OnDistraction(count)
}

// Stop ends the session early. Stop and a natural expiry funnel into the
// same ending step; whichever arrives first wins.
func (c *Controller) Stop() {
	c.endSession(false)
}

func (c *Controller) handleExpire() {
	c.endSession(true)
}

// endSession archives the finished session and opens the break that
// follows it. The active guard makes the losing side of a stop/expiry race
// a no-op.
func (c *Controller) endSession(expired bool) {
	c.mu.Lock()

	if !c.active {
		c.mu.Unlock()
		return
	}

	c.active = false
	c.state = StateIdle

	goal := c.goal
	difficulty := c.difficulty
	distractions := c.distractions
	startTime := c.startTime

	if distractions < streakThreshold {
		c.streak++
	} else {
		c.streak = 0
	}

	streak := c.streak

	c.goal = ""
	c.difficulty = ""
	c.distractions = 0

	c.mu.Unlock()

	c.engine.Stop()

	now := c.now()

	dur := now.Sub(startTime)
	if dur < 0 {
		dur = 0
	}

	sess := ledger.SessionRecord{
		ID:           uuid.NewString(),
		StartTime:    startTime,
		Duration:     dur,
		Goal:         goal,
		Distractions: distractions,
		Difficulty:   difficulty,
	}

	// Best-effort: a sensor that hasn't reported yet just leaves the score
	// out of the record.
	if c.posture != nil {
		if score, ok := c.posture(); ok && score >= 0 && score <= 100 {
			sess.Posture = &score
		}
	}

	brk := ledger.BreakRecord{
		ID:        uuid.NewString(),
		StartTime: now,
	}

	c.ledger.Prepend(brk, sess)

	c.mu.Lock()
	c.lastSessionID = sess.ID
	c.mu.Unlock()

	c.persistStreak(streak)

	if expired {
		c.listener.OnExpire()
	}
}

// AmendSession applies a post-session edit to an archived session.
func (c *Controller) AmendSession(id string, patch ledger.SessionPatch) error {
	return c.ledger.AmendSession(id, patch)
}

// UpdateBreakNote edits the note on a break record.
func (c *Controller) UpdateBreakNote(id, note string) error {
	return c.ledger.UpdateBreakNote(id, note)
}

// ClearHistory empties the ledger and resets the streak. Destructive; the
// CLI confirms with the user first.
func (c *Controller) ClearHistory() {
	c.mu.Lock()
	c.streak = 0
	c.mu.Unlock()

	c.ledger.Clear()
	c.persistStreak(0)
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Goal returns the active session's goal, empty while idle.
func (c *Controller) Goal() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.goal
}

// Distractions reports the active session's distraction count.
func (c *Controller) Distractions() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.distractions
}

// Streak reports the current focus streak.
func (c *Controller) Streak() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.streak
}

// StartedAt returns the active session's start time.
func (c *Controller) StartedAt() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.startTime
}

// LastSessionID identifies the most recently archived session, for
// post-session annotation.
func (c *Controller) LastSessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.lastSessionID
}

// Remaining reports the countdown state for display.
func (c *Controller) Remaining() (time.Duration, bool) {
	return c.engine.Remaining()
}

// Elapsed reports ticking time accumulated by the active session,
// excluding pauses.
func (c *Controller) Elapsed() time.Duration {
	return c.engine.Elapsed()
}

// Ledger exposes the history for read-only consumers like the CLI table.
func (c *Controller) Ledger() *ledger.Ledger {
	return c.ledger
}

func (c *Controller) persistStreak(streak int) {
	if c.db == nil {
		return
	}

	if err := c.db.SaveStreak(streak); err != nil {
		slog.Error("failed to persist streak", slog.Any("error", err))
	}
}
