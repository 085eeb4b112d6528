package sprintcal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestISOWeek(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{"2025-12-04", 49},
		{"2025-12-29", 1},  // ISO week 1 of 2026
		{"2026-01-01", 1},  // Thursday anchors the week to 2026
		{"2024-12-30", 1},  // Monday of ISO week 1 of 2025
		{"2026-02-19", 8},
		{"bogus", 0},
		{"", 0},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ISOWeek(tc.date), "date=%s", tc.date)
	}
}

func TestWeekdayShort(t *testing.T) {
	cases := []struct {
		date string
		want string
	}{
		{"2025-12-01", "Mo"},
		{"2025-12-02", "Di"},
		{"2025-12-03", "Mi"},
		{"2025-12-04", "Do"},
		{"2025-12-05", "Fr"},
		{"2025-12-06", "Sa"},
		{"2025-12-07", "So"},
		{"not-a-date", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, WeekdayShort(tc.date), "date=%s", tc.date)
	}
}

func TestIsWeekend(t *testing.T) {
	assert.False(t, IsWeekend("2025-12-05"))
	assert.True(t, IsWeekend("2025-12-06"))
	assert.True(t, IsWeekend("2025-12-07"))
	assert.False(t, IsWeekend("2025-12-08"))
	assert.False(t, IsWeekend("garbage"))
}

func TestSprintFor(t *testing.T) {
	windows := DefaultWindows("26.1")
	cases := []struct {
		date string
		want string
	}{
		{"2025-12-04", "26.1-S1"},
		{"2025-12-17", "26.1-S1"},
		{"2025-12-18", "26.1-S2"},
		{"2026-01-14", "26.1-S2"},
		{"2026-02-19", "26.1-IP"},
		{"2026-03-04", "26.1-IP"},
		{"2026-03-05", ""},
		{"2025-12-03", ""},
		{"nonsense", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SprintFor(windows, tc.date), "date=%s", tc.date)
	}
}

func TestDefaultWindows_UnknownPI(t *testing.T) {
	assert.Nil(t, DefaultWindows("27.3"))
}

func TestGenerateCalendar(t *testing.T) {
	days := GenerateCalendar("26.1", []Window{
		{Label: "26.1-S1", Start: "2025-12-04", End: "2025-12-10"},
	})
	// Dec 4 (Thu) .. Dec 10 (Wed), minus Sat 6 and Sun 7.
	require.Len(t, days, 5)
	assert.Equal(t, "2025-12-04", days[0].Date)
	assert.Equal(t, "2025-12-05", days[1].Date)
	assert.Equal(t, "2025-12-08", days[2].Date)
	assert.Equal(t, "2025-12-10", days[4].Date)
	for _, d := range days {
		assert.Equal(t, "26.1", d.PI)
		assert.Equal(t, "26.1-S1", d.Sprint)
		assert.False(t, IsWeekend(d.Date))
	}
}

func TestGenerateCalendar_FullPI(t *testing.T) {
	days := GenerateCalendar("26.1", DefaultWindows("26.1"))
	require.NotEmpty(t, days)
	assert.Equal(t, "2025-12-04", days[0].Date)
	assert.Equal(t, "2026-03-04", days[len(days)-1].Date)

	bySprint := map[string]int{}
	for _, d := range days {
		bySprint[d.Sprint]++
	}
	assert.Equal(t, 10, bySprint["26.1-S1"])
	assert.Equal(t, 20, bySprint["26.1-S2"])
	assert.Equal(t, 10, bySprint["26.1-S3"])
	assert.Equal(t, 15, bySprint["26.1-S4"])
	assert.Equal(t, 10, bySprint["26.1-IP"])
}
