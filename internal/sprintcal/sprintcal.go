// Package sprintcal resolves calendar dates to PI sprints: ISO week
// numbers, Swiss-German weekday labels and the default sprint windows a
// fresh PI calendar is generated from.
package sprintcal

import (
	"time"

	"github.com/mvogel/piboard/internal/domain"
)

const dateLayout = "2006-01-02"

// Window is one sprint's date range, both ends inclusive.
type Window struct {
	Label string
	Start string // YYYY-MM-DD
	End   string
}

// DefaultWindows returns the built-in sprint windows for a PI, or nil
// when none are known. Windows for other PIs come from configuration.
func DefaultWindows(pi string) []Window {
	if pi != "26.1" {
		return nil
	}
	return []Window{
		{Label: "26.1-S1", Start: "2025-12-04", End: "2025-12-17"},
		{Label: "26.1-S2", Start: "2025-12-18", End: "2026-01-14"},
		{Label: "26.1-S3", Start: "2026-01-15", End: "2026-01-28"},
		{Label: "26.1-S4", Start: "2026-01-29", End: "2026-02-18"},
		{Label: "26.1-IP", Start: "2026-02-19", End: "2026-03-04"},
	}
}

// weekday shorts in de-CH, indexed by time.Weekday (Sunday first).
var weekdayShorts = [7]string{"So", "Mo", "Di", "Mi", "Do", "Fr", "Sa"}

// ISOWeek returns the ISO-8601 week number for a YYYY-MM-DD date, or 0
// when the date does not parse.
func ISOWeek(date string) int {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return 0
	}
	_, week := t.ISOWeek()
	return week
}

// WeekdayShort returns the two-letter Swiss-German weekday label for a
// date, or "" when the date does not parse.
func WeekdayShort(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return weekdayShorts[t.Weekday()]
}

// IsWeekend reports whether the date falls on Saturday or Sunday.
// Unparseable dates are not weekends. The check uses time.Weekday, not
// the display label.
func IsWeekend(date string) bool {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return false
	}
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// SprintFor returns the label of the window containing the date, or ""
// when the date parses into no window or does not parse at all.
func SprintFor(windows []Window, date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	for _, w := range windows {
		start, err := time.Parse(dateLayout, w.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(dateLayout, w.End)
		if err != nil {
			continue
		}
		if !t.Before(start) && !t.After(end) {
			return w.Label
		}
	}
	return ""
}

// GenerateCalendar expands sprint windows into one calendar day per
// weekday (Monday through Friday) per window, in date order.
func GenerateCalendar(pi string, windows []Window) []domain.CalendarDay {
	var days []domain.CalendarDay
	for _, w := range windows {
		start, err := time.Parse(dateLayout, w.Start)
		if err != nil {
			continue
		}
		end, err := time.Parse(dateLayout, w.End)
		if err != nil {
			continue
		}
		for t := start; !t.After(end); t = t.AddDate(0, 0, 1) {
			date := t.Format(dateLayout)
			if IsWeekend(date) {
				continue
			}
			days = append(days, domain.CalendarDay{
				PI:     pi,
				Date:   date,
				Sprint: w.Label,
			})
		}
	}
	return days
}
