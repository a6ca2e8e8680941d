package engine

import (
	"time"
)

// fakeTicker drives the timer by hand. Tests are single-threaded, so no
// locking is needed.
type fakeTicker struct {
	onTick  TickFunc
	started int
	running bool
	paused  bool
}

func (f *fakeTicker) Start(onTick TickFunc) {
	if f.running {
		return
	}

	f.running = true
	f.paused = false
	f.onTick = onTick
	f.started++
}

func (f *fakeTicker) Pause() {
	f.paused = true
}

func (f *fakeTicker) Resume() {
	f.paused = false
}

func (f *fakeTicker) Cancel() {
	f.running = false
}

// tick fires n ticks, honoring the running and paused flags the way the
// real clock does.
func (f *fakeTicker) tick(n int) {
	for i := 0; i < n; i++ {
		if !f.running || f.paused || f.onTick == nil {
			return
		}

		f.onTick()
	}
}

// fakeClock is an adjustable wall clock.
type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{
		t: time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC),
	}
}

func (f *fakeClock) Now() time.Time {
	return f.t
}

func (f *fakeClock) Advance(d time.Duration) {
	f.t = f.t.Add(d)
}

// recordingListener captures every notification it receives.
type recordingListener struct {
	starts       []string
	distractions []int
	pauses       int
	resumes      int
	expires      int
}

func (r *recordingListener) OnStart(goal string) { r.starts = append(r.starts, goal) }
func (r *recordingListener) OnPause()            { r.pauses++ }
func (r *recordingListener) OnResume()           { r.resumes++ }
func (r *recordingListener) OnExpire()           { r.expires++ }
func (r *recordingListener) OnDistraction(count int) {
	r.distractions = append(r.distractions, count)
}
