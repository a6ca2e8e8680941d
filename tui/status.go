package tui

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/pterm/pterm"
	bolt "go.etcd.io/bbolt"

	"github.com/ayoisaiah/lockin/engine"
	"github.com/ayoisaiah/lockin/internal/osutil"
	"github.com/ayoisaiah/lockin/internal/pathutil"
	"github.com/ayoisaiah/lockin/internal/timeutil"
	"github.com/ayoisaiah/lockin/internal/ui"
)

// Status is a snapshot of the running session, written to disk on every tick
// so that other lockin processes can report on it.
type Status struct {
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time,omitzero"`
	Goal         string    `json:"goal"`
	Distractions int       `json:"distractions"`
	Paused       bool      `json:"paused"`
}

func (m *Model) writeStatusFile() (err error) {
	s := Status{
		Goal:         m.ctrl.Goal(),
		StartTime:    m.ctrl.StartedAt(),
		Distractions: m.ctrl.Distractions(),
		Paused:       m.ctrl.State() == engine.StatePaused,
	}

	if remaining, unbounded := m.ctrl.Remaining(); !unbounded {
		s.EndTime = time.Now().Add(remaining)
	}

	statusFilePath := pathutil.StatusFilePath()

	statusFile, err := os.Create(statusFilePath)
	if err != nil {
		return err
	}

	defer func() {
		ferr := statusFile.Close()
		if ferr != nil {
			err = ferr
		}
	}()

	b, err := json.Marshal(s)
	if err != nil {
		return err
	}

	writer := bufio.NewWriter(statusFile)

	_, err = writer.Write(b)
	if err != nil {
		return err
	}

	return writer.Flush()
}

// ReportStatus prints the state of a session running in another lockin
// process. It prints nothing when no session is active.
func ReportStatus() error {
	dbFilePath := pathutil.DBFilePath()
	statusFilePath := pathutil.StatusFilePath()

	var fileMode fs.FileMode = osutil.FilePermission

	db, err := bolt.Open(dbFilePath, fileMode, &bolt.Options{
		Timeout: 100 * time.Millisecond,
	})
	// the database is free, so no session is running
	if err == nil {
		_ = db.Close()
		return nil
	}

	if !errors.Is(err, bolt.ErrTimeout) {
		return err
	}

	fileBytes, err := os.ReadFile(statusFilePath)
	if err != nil {
		// missing file should not return an error
		return nil
	}

	var s Status

	err = json.Unmarshal(fileBytes, &s)
	if err != nil {
		return err
	}

	label := ui.Highlight(fmt.Sprintf("[%s]", s.Goal))
	if s.Paused {
		label += " (paused)"
	}

	if s.EndTime.IsZero() {
		elapsed := time.Since(s.StartTime).Round(time.Second)
		pterm.Printfln(
			"%s: %s elapsed, %d distractions",
			label,
			timeutil.FormatDuration(elapsed),
			s.Distractions,
		)

		return nil
	}

	remaining := time.Until(s.EndTime)
	if remaining < 0 {
		return nil
	}

	mins, secs := timeutil.SecsToMinsAndSecs(remaining.Seconds())

	pterm.Printfln(
		"%s: %02d:%02d remaining, %d distractions",
		label,
		mins,
		secs,
		s.Distractions,
	)

	return nil
}
