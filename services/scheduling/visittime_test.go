package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clock = time.Date(2026, 3, 10, 14, 45, 12, 0, time.UTC)

func TestResolveVisitTimeDateAndTime(t *testing.T) {
	got, err := ResolveVisitTime("2026-04-01", "10:30", clock)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 1, 10, 30, 0, 0, time.UTC), got)
}

func TestResolveVisitTimeDateOnlyDefaultsToNine(t *testing.T) {
	got, err := ResolveVisitTime("2026-04-01", "", clock)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC), got)
}

func TestResolveVisitTimeTimeOnlyUsesToday(t *testing.T) {
	got, err := ResolveVisitTime("", "16:00", clock)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC), got)
}

func TestResolveVisitTimeNeitherReturnsNow(t *testing.T) {
	got, err := ResolveVisitTime("", "", clock)
	require.NoError(t, err)
	assert.Equal(t, clock, got)
}

func TestResolveVisitTimeRejectsMalformedInput(t *testing.T) {
	cases := []struct {
		name, date, time string
	}{
		{"bad date format", "01-04-2026", "10:30"},
		{"non-numeric date", "next tuesday", ""},
		{"bad time format", "2026-04-01", "10.30"},
		{"hour out of range", "2026-04-01", "25:00"},
		{"minute out of range", "", "10:75"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ResolveVisitTime(tc.date, tc.time, clock)
			assert.Error(t, err)
		})
	}
}

func TestDayWindow(t *testing.T) {
	start, end := DayWindow(clock)
	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), end)
}
