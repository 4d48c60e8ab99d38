package scheduling

import (
	"fmt"
	"time"
)

const visitDateLayout = "2006-01-02"

// defaultVisitClock is applied when a visit date is given without a time.
const defaultVisitClock = 9 * 60

// ResolveVisitTime combines an optional "YYYY-MM-DD" date and an optional
// "HH:MM" time into the single timestamp used for the day window and the
// stored record. A supplied date overrides now as the base day; a supplied
// time is applied to that base; a date without a time defaults to 09:00;
// with neither, now is returned unchanged. Malformed non-empty inputs are
// rejected rather than silently ignored so caller typos cannot land a
// registration on the wrong day.
func ResolveVisitTime(dateStr, timeStr string, now time.Time) (time.Time, error) {
	base := now
	dated := false
	if dateStr != "" {
		d, err := time.ParseInLocation(visitDateLayout, dateStr, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid visit date %q: expected YYYY-MM-DD", dateStr)
		}
		base = d
		dated = true
	}

	if timeStr != "" {
		minutes, err := parseClock(timeStr)
		if err != nil {
			return time.Time{}, err
		}
		return time.Date(base.Year(), base.Month(), base.Day(), minutes/60, minutes%60, 0, 0, now.Location()), nil
	}
	if dated {
		return time.Date(base.Year(), base.Month(), base.Day(), defaultVisitClock/60, defaultVisitClock%60, 0, 0, now.Location()), nil
	}
	return now, nil
}
