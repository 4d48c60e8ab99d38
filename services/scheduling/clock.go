package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// slotStrideMinutes is the spacing between generated visiting slots, and
// also the tolerance applied when matching a requested time to a slot.
const slotStrideMinutes = 30

// parseClock converts a strict "HH:MM" 24-hour string to minutes since
// midnight.
func parseClock(hhmm string) (int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q: expected HH:MM", hhmm)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", hhmm, err)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", hhmm, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("time %q out of range", hhmm)
	}
	return hour*60 + minute, nil
}

// formatClock renders minutes since midnight as zero-padded "HH:MM", so
// lexicographic order equals chronological order.
func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// DayWindow returns the half-open [midnight, next midnight) range containing
// t, in t's location. All capacity and token queries use this window.
func DayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// weekdayKey maps a time.Weekday to the lowercase name used as the weekly
// schedule map key (index 0=Sunday .. 6=Saturday).
func weekdayKey(d time.Weekday) string {
	return strings.ToLower(d.String())
}
