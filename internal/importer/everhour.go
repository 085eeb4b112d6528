package importer

import (
	"fmt"
	"io"

	"github.com/mvogel/piboard/internal/domain"
)

// ParseEverhourCSV parses an Everhour time report into time entries for
// the given PI. Rows without an issue key fail the import.
func ParseEverhourCSV(r io.Reader, pi string) ([]domain.TimeEntry, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	var entries []domain.TimeEntry
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		key := header.pick(record, "Key", "Issue Key", "Task ID")
		if key == "" {
			return nil, fmt.Errorf("row %d: missing issue key", i+2)
		}
		entries = append(entries, domain.TimeEntry{
			PI:       pi,
			IssueKey: key,
			Hours:    header.pickFloat(record, "Time", "Hours", "Total Time"),
			Sprint:   header.pick(record, "Sprint", "Tags"),
		})
	}
	return entries, nil
}
