package domain

// Story is one imported Jira issue, scoped to a PI.
type Story struct {
	PI          string
	Key         string
	Name        string
	StoryPoints float64
	Team        string
	Status      string
	Sprint      string
	EpicKey     string
}

// DoneStatuses are the issue statuses that count toward feature progress.
var DoneStatuses = map[string]bool{
	"Done":   true,
	"Closed": true,
}

// IsDone reports whether the story's status counts as completed.
func (s *Story) IsDone() bool {
	return DoneStatuses[s.Status]
}

// TimeEntry is one imported Everhour booking, scoped to a PI.
type TimeEntry struct {
	PI       string
	IssueKey string
	Sprint   string
	Hours    float64
}
