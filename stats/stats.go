// Package stats aggregates the session history into per-goal summaries.
package stats

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/maruel/natural"

	"github.com/ayoisaiah/lockin/internal/timeutil"
	"github.com/ayoisaiah/lockin/internal/ui"
	"github.com/ayoisaiah/lockin/ledger"
)

// GoalSummary aggregates all sessions that share a goal.
type GoalSummary struct {
	Goal         string        `json:"goal"`
	Sessions     int           `json:"sessions"`
	Focus        time.Duration `json:"focus"`
	Distractions int           `json:"distractions"`
}

// Summary is the full aggregation of the history.
type Summary struct {
	Goals             []GoalSummary `json:"goals"`
	TotalFocus        time.Duration `json:"total_focus"`
	TotalBreak        time.Duration `json:"total_break"`
	TotalSessions     int           `json:"total_sessions"`
	TotalDistractions int           `json:"total_distractions"`
	Streak            int           `json:"streak"`
}

// Compute builds a summary from history records. Open breaks contribute
// nothing to break time. Goals are ordered naturally so that "goal 2" sorts
// before "goal 10".
func Compute(records []ledger.Record, streak int) *Summary {
	s := &Summary{Streak: streak}

	byGoal := make(map[string]*GoalSummary)

	for _, rec := range records {
		switch rec.Kind {
		case ledger.KindSession:
			sess := rec.Session

			s.TotalSessions++
			s.TotalFocus += sess.Duration
			s.TotalDistractions += sess.Distractions

			g, ok := byGoal[sess.Goal]
			if !ok {
				g = &GoalSummary{Goal: sess.Goal}
				byGoal[sess.Goal] = g
			}

			g.Sessions++
			g.Focus += sess.Duration
			g.Distractions += sess.Distractions
		case ledger.KindBreak:
			if !rec.Break.Open() {
				s.TotalBreak += rec.Break.Duration
			}
		}
	}

	for _, g := range byGoal {
		s.Goals = append(s.Goals, *g)
	}

	slices.SortFunc(s.Goals, func(a, b GoalSummary) int {
		if natural.Less(a.Goal, b.Goal) {
			return -1
		}

		if natural.Less(b.Goal, a.Goal) {
			return 1
		}

		return 0
	})

	return s
}

func (s *Summary) ToJSON() ([]byte, error) {
	return json.Marshal(s)
}

// Print writes the summary as a table followed by overall totals.
func (s *Summary) Print(w io.Writer) {
	tableBody := make([][]string, len(s.Goals))

	for i, g := range s.Goals {
		tableBody[i] = []string{
			g.Goal,
			fmt.Sprintf("%d", g.Sessions),
			timeutil.FormatDuration(g.Focus),
			fmt.Sprintf("%d", g.Distractions),
		}
	}

	tableBody = append([][]string{
		{"GOAL", "SESSIONS", "FOCUS TIME", "DISTRACTIONS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)

	fmt.Fprintf(
		w,
		"Total focus: %s, total break: %s, streak: %s\n",
		ui.Green(timeutil.FormatDuration(s.TotalFocus)),
		ui.Blue(timeutil.FormatDuration(s.TotalBreak)),
		ui.Magenta(s.Streak),
	)
}
