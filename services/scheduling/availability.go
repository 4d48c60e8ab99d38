package scheduling

import (
	"sort"
	"time"

	"opdcare/models"
)

// periodOrder fixes the generation order of visiting periods; the final slot
// list is sorted afterwards, so this only matters for malformed configs.
var periodOrder = [3]string{"morning", "afternoon", "evening"}

// IsDateAvailable reports whether the doctor accepts visits on the weekday of
// date. A nil doctor or zero date is treated as available so callers without
// schedule data are never blocked; only an explicit false entry in the weekly
// schedule blocks a weekday. Doctors configured before the weekly schedule
// existed therefore stay fully bookable.
func IsDateAvailable(doctor *models.Staff, date time.Time) bool {
	if doctor == nil || date.IsZero() {
		return true
	}
	entry, ok := doctor.WeeklySchedule[weekdayKey(date.Weekday())]
	if !ok || entry == nil {
		return true
	}
	return *entry
}

// ListAvailableSlots expands the doctor's enabled visiting periods into
// "HH:MM" slots at a 30-minute stride for the given date. An unavailable
// date yields nothing. Period ends are exclusive; a period whose end is not
// after its start yields nothing; a period with a malformed start or end is
// skipped. The combined list is sorted so overlapping periods interleave
// chronologically; duplicates from overlapping periods are kept.
func ListAvailableSlots(doctor *models.Staff, date time.Time) []string {
	if doctor == nil || len(doctor.VisitingHours) == 0 {
		return nil
	}
	if !IsDateAvailable(doctor, date) {
		return nil
	}

	var slots []string
	for _, name := range periodOrder {
		period := doctor.VisitingHours[name]
		if period == nil || !period.Enabled {
			continue
		}
		start, err := parseClock(period.StartTime)
		if err != nil {
			continue
		}
		end, err := parseClock(period.EndTime)
		if err != nil {
			continue
		}
		for m := start; m < end; m += slotStrideMinutes {
			slots = append(slots, formatClock(m))
		}
	}
	sort.Strings(slots)
	return slots
}

// IsTimeAvailable reports whether requested ("HH:MM") falls within 30 minutes
// (inclusive, measured in minutes since midnight) of one of the doctor's
// slots on date. Any absent input passes: the caller did not constrain that
// dimension. An unavailable date fails; a doctor with no slots configured
// accepts any time.
func IsTimeAvailable(doctor *models.Staff, date time.Time, requested string) bool {
	if doctor == nil || date.IsZero() || requested == "" {
		return true
	}
	if !IsDateAvailable(doctor, date) {
		return false
	}
	slots := ListAvailableSlots(doctor, date)
	if len(slots) == 0 {
		return true
	}
	want, err := parseClock(requested)
	if err != nil {
		return false
	}
	for _, slot := range slots {
		have, err := parseClock(slot)
		if err != nil {
			continue
		}
		diff := want - have
		if diff < 0 {
			diff = -diff
		}
		if diff <= slotStrideMinutes {
			return true
		}
	}
	return false
}
