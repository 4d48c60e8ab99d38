package scheduling

import (
	"testing"
	"time"

	"opdcare/models"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

// Mondays in 2026: Jan 5 is a Monday.
var (
	monday  = time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	tuesday = time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC)
	sunday  = time.Date(2026, 1, 4, 0, 0, 0, 0, time.UTC)
)

func TestIsDateAvailableDefaults(t *testing.T) {
	assert.True(t, IsDateAvailable(nil, monday), "nil doctor must be available")
	assert.True(t, IsDateAvailable(&models.Staff{}, time.Time{}), "zero date must be available")
	assert.True(t, IsDateAvailable(&models.Staff{}, monday), "unset schedule must be available")
}

func TestIsDateAvailableWeeklySchedule(t *testing.T) {
	doctor := &models.Staff{
		WeeklySchedule: map[string]*bool{
			"monday":  boolPtr(false),
			"tuesday": boolPtr(true),
			"sunday":  nil,
		},
	}
	assert.False(t, IsDateAvailable(doctor, monday), "explicit false blocks the weekday")
	assert.True(t, IsDateAvailable(doctor, tuesday))
	assert.True(t, IsDateAvailable(doctor, sunday), "nil entry means available")

	wednesday := tuesday.AddDate(0, 0, 1)
	assert.True(t, IsDateAvailable(doctor, wednesday), "missing entry means available")
}

func TestListAvailableSlotsSinglePeriod(t *testing.T) {
	doctor := &models.Staff{
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning": {Enabled: true, StartTime: "09:00", EndTime: "10:00"},
		},
	}
	assert.Equal(t, []string{"09:00", "09:30"}, ListAvailableSlots(doctor, monday),
		"end time is exclusive")
}

func TestListAvailableSlotsMultiplePeriods(t *testing.T) {
	doctor := &models.Staff{
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning":   {Enabled: true, StartTime: "09:00", EndTime: "10:00"},
			"afternoon": {Enabled: false, StartTime: "13:00", EndTime: "15:00"},
			"evening":   {Enabled: true, StartTime: "17:00", EndTime: "18:30"},
		},
	}
	assert.Equal(t,
		[]string{"09:00", "09:30", "17:00", "17:30", "18:00"},
		ListAvailableSlots(doctor, monday))
}

func TestListAvailableSlotsOverlapKeepsDuplicates(t *testing.T) {
	doctor := &models.Staff{
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning":   {Enabled: true, StartTime: "09:00", EndTime: "11:00"},
			"afternoon": {Enabled: true, StartTime: "10:00", EndTime: "11:00"},
		},
	}
	assert.Equal(t,
		[]string{"09:00", "09:30", "10:00", "10:00", "10:30", "10:30"},
		ListAvailableSlots(doctor, monday),
		"overlapping periods are merged sorted, not de-duplicated")
}

func TestListAvailableSlotsEdgeCases(t *testing.T) {
	assert.Nil(t, ListAvailableSlots(nil, monday))
	assert.Nil(t, ListAvailableSlots(&models.Staff{}, monday))

	blocked := &models.Staff{
		WeeklySchedule: map[string]*bool{"monday": boolPtr(false)},
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning": {Enabled: true, StartTime: "09:00", EndTime: "10:00"},
		},
	}
	assert.Nil(t, ListAvailableSlots(blocked, monday), "unavailable date yields no slots")

	malformed := &models.Staff{
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning":   {Enabled: true, StartTime: "9am", EndTime: "10:00"},
			"afternoon": {Enabled: true, StartTime: "14:00", EndTime: "14:00"},
			"evening":   {Enabled: true, StartTime: "18:00", EndTime: "17:00"},
		},
	}
	assert.Empty(t, ListAvailableSlots(malformed, monday),
		"unparseable and empty ranges are skipped")
}

func TestIsTimeAvailableDefaults(t *testing.T) {
	doctor := &models.Staff{
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning": {Enabled: true, StartTime: "09:00", EndTime: "10:00"},
		},
	}
	assert.True(t, IsTimeAvailable(nil, monday, "23:00"), "nil doctor passes")
	assert.True(t, IsTimeAvailable(doctor, time.Time{}, "23:00"), "zero date passes")
	assert.True(t, IsTimeAvailable(doctor, monday, ""), "empty time passes")
	assert.True(t, IsTimeAvailable(&models.Staff{}, monday, "23:00"),
		"no configured hours means unrestricted booking")
}

func TestIsTimeAvailableTolerance(t *testing.T) {
	doctor := &models.Staff{
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning": {Enabled: true, StartTime: "09:00", EndTime: "09:30"},
		},
	}
	// Single slot at 09:00; tolerance is 30 minutes inclusive.
	assert.True(t, IsTimeAvailable(doctor, monday, "09:25"))
	assert.True(t, IsTimeAvailable(doctor, monday, "08:30"), "exactly 30 minutes before")
	assert.True(t, IsTimeAvailable(doctor, monday, "09:30"), "exactly 30 minutes after")
	assert.False(t, IsTimeAvailable(doctor, monday, "09:31"), "31 minutes is outside tolerance")
	assert.False(t, IsTimeAvailable(doctor, monday, "10:00"))
	assert.False(t, IsTimeAvailable(doctor, monday, "bogus"), "unparseable time never matches")
}

func TestIsTimeAvailableBlockedDate(t *testing.T) {
	doctor := &models.Staff{
		WeeklySchedule: map[string]*bool{"monday": boolPtr(false)},
		VisitingHours: map[string]*models.VisitingPeriod{
			"morning": {Enabled: true, StartTime: "09:00", EndTime: "10:00"},
		},
	}
	assert.False(t, IsTimeAvailable(doctor, monday, "09:00"),
		"time check fails on an unavailable date")
	assert.True(t, IsTimeAvailable(doctor, tuesday, "09:00"))
}
