package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/markusmobius/go-dateparser"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/lockin/internal/timeutil"
	"github.com/ayoisaiah/lockin/internal/ui"
	"github.com/ayoisaiah/lockin/ledger"
)

const noRecordsMsg = "No history records found for the specified time range"

// parseSince interprets a human-readable time expression such as
// "2 weeks ago" or "yesterday".
func parseSince(s string) (time.Time, error) {
	cfg := &dateparser.Configuration{
		CurrentTime: time.Now(),
	}

	dt, err := dateparser.Parse(cfg, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse --since value: %w", err)
	}

	return dt.Time, nil
}

// filterSince drops records that started before the cutoff.
func filterSince(records []ledger.Record, cutoff time.Time) []ledger.Record {
	filtered := make([]ledger.Record, 0, len(records))

	for _, rec := range records {
		var start time.Time

		switch rec.Kind {
		case ledger.KindSession:
			start = rec.Session.StartTime
		case ledger.KindBreak:
			start = rec.Break.StartTime
		}

		if !start.Before(cutoff) {
			filtered = append(filtered, rec)
		}
	}

	return filtered
}

// printHistoryTable prints the interleaved history, newest first.
func printHistoryTable(w io.Writer, records []ledger.Record) {
	tableBody := make([][]string, len(records))

	for i, rec := range records {
		var row []string

		switch rec.Kind {
		case ledger.KindSession:
			sess := rec.Session

			distractions := fmt.Sprintf("%d", sess.Distractions)
			if sess.Distractions >= 3 {
				distractions = ui.Red(distractions)
			}

			row = []string{
				fmt.Sprintf("%d", i+1),
				ui.Green("session"),
				sess.ID,
				sess.StartTime.Format("Jan 02, 2006 03:04 PM"),
				ui.Cyan(sess.Goal),
				timeutil.FormatDuration(sess.Duration),
				distractions,
			}
		case ledger.KindBreak:
			brk := rec.Break

			duration := timeutil.FormatDuration(brk.Duration)
			if brk.Open() {
				duration = ui.Yellow("ongoing")
			}

			row = []string{
				fmt.Sprintf("%d", i+1),
				ui.Blue("break"),
				brk.ID,
				brk.StartTime.Format("Jan 02, 2006 03:04 PM"),
				brk.Note,
				duration,
				"",
			}
		}

		tableBody[i] = row
	}

	tableBody = append([][]string{
		{"#", "TYPE", "ID", "START DATE", "GOAL / NOTE", "DURATION", "DISTRACTIONS"},
	}, tableBody...)

	ui.PrintTable(tableBody, w)
}

// historyAction prints the session and break history.
func historyAction(ctx *cli.Context) error {
	led, dbClient, err := ledgerHelper(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = dbClient.Close()
	}()

	records := led.Records()

	if ctx.String("since") != "" {
		cutoff, err := parseSince(ctx.String("since"))
		if err != nil {
			return err
		}

		records = filterSince(records, cutoff)
	}

	if ctx.Bool("json") {
		b, err := json.Marshal(records)
		if err != nil {
			return err
		}

		pterm.Println(string(b))

		return nil
	}

	if len(records) == 0 {
		pterm.Info.Println(noRecordsMsg)
		return nil
	}

	printHistoryTable(os.Stdout, records)

	return nil
}
