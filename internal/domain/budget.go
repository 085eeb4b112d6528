package domain

import "time"

// Topic is a budget line grouping features, ordered by priority.
type Topic struct {
	ID            string
	PI            string
	Key           string
	Name          string
	Priority      int
	Budget        float64
	PerTeamBudget map[string]float64 // team ID -> CHF
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BudgetFor returns the budget to roll up under an optional team filter:
// the declared total when no filter is active, otherwise the per-team
// share (0 when the team has none).
func (t *Topic) BudgetFor(teamID string) float64 {
	if teamID == "" {
		return t.Budget
	}
	return t.PerTeamBudget[teamID]
}

// Feature is a planned deliverable linked to a Jira epic. Stories roll
// up to the feature whose JiraKey matches their epic key.
type Feature struct {
	ID            string
	PI            string
	Name          string
	JiraKey       string
	Budget        float64
	PerTeamBudget map[string]float64
	EpicOwner     string
	TopicKey      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BudgetFor mirrors Topic.BudgetFor for features.
func (f *Feature) BudgetFor(teamID string) float64 {
	if teamID == "" {
		return f.Budget
	}
	return f.PerTeamBudget[teamID]
}
