package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"

	"github.com/ayoisaiah/lockin/engine"
	"github.com/ayoisaiah/lockin/internal/timeutil"
)

// formatClock renders a duration as "MM:SS", rolling minutes past 99 rather
// than truncating them.
func formatClock(d time.Duration) string {
	mins, secs := timeutil.SecsToMinsAndSecs(d.Seconds())

	return fmt.Sprintf("%02d:%02d", mins, secs)
}

func (m *Model) timerView() string {
	var s strings.Builder

	s.WriteString(m.styles.goal.Render("[" + m.ctrl.Goal() + "]"))

	if m.ctrl.State() == engine.StatePaused {
		s.WriteString(" " + m.styles.warning.Render("[Paused]"))
	} else if !m.unbounded {
		remaining, _ := m.ctrl.Remaining()
		endTime := time.Now().Add(remaining)

		s.WriteString(" " + m.styles.hint.Render(
			"until "+timeutil.FormatClock(
				endTime,
				m.cfg.Display.TwentyFourHour,
			),
		))
	}

	s.WriteString("\n\n")

	if m.unbounded {
		s.WriteString(m.styles.clock.Render(formatClock(m.ctrl.Elapsed())))
	} else {
		remaining, _ := m.ctrl.Remaining()
		s.WriteString(m.styles.clock.Render(formatClock(remaining)))
	}

	s.WriteString("\n\n")

	if !m.unbounded && m.duration > 0 {
		percent := float64(m.ctrl.Elapsed()) / float64(m.duration)
		s.WriteString(m.progress.ViewAs(percent))
		s.WriteString("\n\n")
	}

	s.WriteString(m.styles.hint.Render(
		fmt.Sprintf(
			"distractions: %d  streak: %d",
			m.ctrl.Distractions(),
			m.ctrl.Streak(),
		),
	))

	s.WriteString("\n\n" + m.help.ShortHelpView([]key.Binding{
		defaultKeymap.togglePlay,
		defaultKeymap.distraction,
		defaultKeymap.stop,
		defaultKeymap.quit,
	}))

	return s.String()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.annotating {
		return m.styles.base.Render(m.form.View())
	}

	return m.styles.base.Render(m.timerView())
}
