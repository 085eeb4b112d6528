// Package importer parses the CSV and JSON exports the planning board
// is fed from: Jira issue exports, Everhour time reports and developer
// rosters. Header matching is tolerant because every export tool names
// its columns differently.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// headerIndex maps lowercased, trimmed column names to their position.
type headerIndex map[string]int

func indexHeader(record []string) headerIndex {
	idx := make(headerIndex, len(record))
	for i, name := range record {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")))
		if _, ok := idx[name]; !ok {
			idx[name] = i
		}
	}
	return idx
}

// pick returns the first matching column's value, "" when none match.
func (h headerIndex) pick(record []string, names ...string) string {
	for _, name := range names {
		if i, ok := h[strings.ToLower(name)]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
	}
	return ""
}

// pickFloat parses the first matching column as a number, 0 otherwise.
func (h headerIndex) pickFloat(record []string, names ...string) float64 {
	raw := h.pick(record, names...)
	if raw == "" {
		return 0
	}
	// Everhour writes decimal commas in some locales.
	raw = strings.ReplaceAll(raw, ",", ".")
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return f
}

// readAll reads a CSV stream with lenient field counts and returns the
// header index and data records.
func readAll(r io.Reader) (headerIndex, [][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("reading csv: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("csv is empty")
	}
	return indexHeader(records[0]), records[1:], nil
}

// truncate shortens a string to max runes.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
