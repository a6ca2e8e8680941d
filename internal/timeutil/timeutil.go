// Package timeutil provides utility functions for working with time-related
// operations.
package timeutil

import (
	"fmt"
	"math"
	"strings"
	"time"
)

const minutesInAnHour = 60

// Round rounds a time value in seconds, minutes, or hours to the nearest
// integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// SecsToMinsAndSecs expresses a seconds value in minutes and seconds.
func SecsToMinsAndSecs(seconds float64) (mins, secs int) {
	total := Round(seconds)

	if total < 0 {
		total = 0
	}

	return total / minutesInAnHour, total % minutesInAnHour
}

// MinsToHoursAndMins expresses a minutes value in hours and mins.
func MinsToHoursAndMins(val int) (hrs, mins int) {
	hrs = int(math.Floor(float64(val) / float64(minutesInAnHour)))
	mins = val % minutesInAnHour

	return
}

// FormatDuration renders a duration as a compact human-readable string such
// as "2h 15m" or "45s".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}

	totalSecs := Round(d.Seconds())

	hrs, mins := MinsToHoursAndMins(totalSecs / minutesInAnHour)
	secs := totalSecs % minutesInAnHour

	var b strings.Builder

	if hrs > 0 {
		fmt.Fprintf(&b, "%dh ", hrs)
	}

	if mins > 0 || hrs > 0 {
		fmt.Fprintf(&b, "%dm", mins)
	}

	if hrs == 0 && mins == 0 {
		fmt.Fprintf(&b, "%ds", secs)
	}

	return strings.TrimSpace(b.String())
}

// FormatClock renders a wall-clock time according to the 24-hour preference.
func FormatClock(t time.Time, twentyFourHour bool) string {
	if twentyFourHour {
		return t.Format("15:04:05")
	}

	return t.Format("03:04:05 PM")
}
