package engine

import (
	"log/slog"
)

// Listener receives fire-and-forget session lifecycle notifications. The
// audio layer and any other collaborator subscribe through it; failure or
// absence of a listener never affects engine correctness.
type Listener interface {
	OnStart(goal string)
	OnPause()
	OnResume()
	OnExpire()
	OnDistraction(count int)
}

// NopListener discards all notifications.
type NopListener struct{}

func (NopListener) OnStart(string)    {}
func (NopListener) OnPause()          {}
func (NopListener) OnResume()         {}
func (NopListener) OnExpire()         {}
func (NopListener) OnDistraction(int) {}

// MultiListener fans notifications out to several listeners. A panicking
// listener is logged and skipped.
type MultiListener []Listener

func (m MultiListener) OnStart(goal string) {
	m.each(func(l Listener) { l.OnStart(goal) })
}

func (m MultiListener) OnPause() {
	m.each(func(l Listener) { l.OnPause() })
}

func (m MultiListener) OnResume() {
	m.each(func(l Listener) { l.OnResume() })
}

func (m MultiListener) OnExpire() {
	m.each(func(l Listener) { l.OnExpire() })
}

func (m MultiListener) OnDistraction(count int) {
	m.each(func(l Listener) { l.OnDistraction(count) })
}

func (m MultiListener) each(notify func(Listener)) {
	for _, l := range m {
		if l == nil {
			continue
		}

		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("listener panicked", slog.Any("panic", r))
				}
			}()

			notify(l)
		}()
	}
}
