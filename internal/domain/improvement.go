package domain

import "time"

type ImprovementPriority string

const (
	PriorityLow  ImprovementPriority = "Low"
	PriorityHigh ImprovementPriority = "High"
)

type ImprovementStatus string

const (
	ImprovementBacklog    ImprovementStatus = "Backlog"
	ImprovementInProgress ImprovementStatus = "In Progress"
	ImprovementDone       ImprovementStatus = "Done"
	ImprovementDismissed  ImprovementStatus = "Dismissed"
)

// Improvement is one entry of the team improvement backlog.
type Improvement struct {
	ID        string
	PI        string
	Idea      string
	Priority  ImprovementPriority
	Reporter  string
	Status    ImprovementStatus
	Details   string
	Date      string // YYYY-MM-DD
	CreatedAt time.Time
	UpdatedAt time.Time
}
