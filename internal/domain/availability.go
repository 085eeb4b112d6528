package domain

import (
	"strconv"
	"strings"
)

// CalendarDay is one working day of a PI's sprint calendar.
type CalendarDay struct {
	PI     string
	Date   string // YYYY-MM-DD
	Sprint string // sprint label, e.g. "26.1-S2"
}

// AvailabilityDay is one stored availability cell: how much of the given
// day a developer is present. Value is kept as entered ("0", "0.5", "1").
type AvailabilityDay struct {
	PI    string
	Date  string
	Dev   string // developer key
	Value string
}

// AvailabilitySet is the in-memory availability grid: developer key to
// date to raw cell value. Cells are sparse; an absent cell means the
// developer is fully available that day.
type AvailabilitySet map[string]map[string]string

// FractionFor resolves one cell to a fraction of a day. A missing or
// empty cell defaults to 1 (present): storing "" clears the cell back to
// fully available. A cell that holds garbage counts as 0. This
// default-to-available rule is relied on everywhere: a fresh calendar
// yields full capacity.
func (a AvailabilitySet) FractionFor(dev, date string) float64 {
	days, ok := a[dev]
	if !ok {
		return 1
	}
	raw, ok := days[date]
	if !ok {
		return 1
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

// Set records one cell, allocating the per-developer map on first use.
func (a AvailabilitySet) Set(dev, date, value string) {
	if a[dev] == nil {
		a[dev] = map[string]string{}
	}
	a[dev][date] = value
}

// IsIPSprint reports whether a sprint label names the innovation &
// planning sprint. Matching is by substring so "26.1-IP" and "IP" both
// qualify.
func IsIPSprint(label string) bool {
	return strings.Contains(label, "IP")
}
