package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// nullableFloatToValue converts a *float64 to a value suitable for
// SQLite storage. Returns nil (SQL NULL) if the pointer is nil.
func nullableFloatToValue(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// parseNullableFloat converts a scanned sql.NullFloat64 back to *float64.
func parseNullableFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

// boolToInt converts a Go bool to an integer (0 or 1) for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer (0 or 1) to a Go bool.
func intToBool(i int) bool {
	return i != 0
}

// encodeStringMap serializes a string map into the JSON TEXT columns
// used for sprint team overrides and per-team budgets. A nil map
// encodes as the empty object so the column default stays meaningful.
func encodeStringMap[V any](m map[string]V) (string, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encoding map column: %w", err)
	}
	return string(b), nil
}

// decodeStringMap parses a JSON TEXT column back into a map. Empty and
// NULL columns yield an empty map.
func decodeStringMap[V any](raw string) (map[string]V, error) {
	if raw == "" || raw == "{}" {
		return map[string]V{}, nil
	}
	var m map[string]V
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("decoding map column: %w", err)
	}
	return m, nil
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// parseTime parses an RFC3339 timestamp column, zero time on failure.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
