package importer

import (
	"fmt"
	"io"

	"github.com/mvogel/piboard/internal/domain"
)

// summaryMaxLen caps imported story names for table display.
const summaryMaxLen = 50

// ParseJiraCSV parses a Jira issue export into stories for the given
// PI. A row without an issue key fails the whole import: a truncated
// export should never silently half-replace a PI's stories.
func ParseJiraCSV(r io.Reader, pi string) ([]domain.Story, error) {
	header, records, err := readAll(r)
	if err != nil {
		return nil, err
	}

	var stories []domain.Story
	for i, record := range records {
		if len(record) == 0 {
			continue
		}
		key := header.pick(record, "Key", "Issue key", "ID")
		if key == "" {
			return nil, fmt.Errorf("row %d: missing issue key", i+2)
		}
		stories = append(stories, domain.Story{
			PI:          pi,
			Key:         key,
			Name:        truncate(header.pick(record, "Summary", "Name"), summaryMaxLen),
			Status:      header.pick(record, "Status"),
			StoryPoints: header.pickFloat(record, "Custom field (Story Points)", "Story Points", "SP"),
			Team:        header.pick(record, "Custom field (pdev_unit)", "pdev_unit", "Team"),
			Sprint:      header.pick(record, "Custom field (current Sprint)", "current Sprint", "Sprint"),
			EpicKey:     header.pick(record, "Parent key", "Parent", "Epic Link"),
		})
	}
	return stories, nil
}
