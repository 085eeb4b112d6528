package domain

import "time"

// Developer is one row of a PI's capacity roster. Numeric fields are
// pointers: a nil value means "not filled in" and falls back to the
// derivation defaults below, which differ from the seeded roster values.
type Developer struct {
	Key         string
	PI          string
	Name        string
	Team        string
	Stack       string
	SpecialCase bool

	DailyHours    *float64
	WorkRatio     *float64
	Load          *float64
	DevelopRatio  *float64
	MaintainRatio *float64
	ManageRatio   *float64
	Velocity      *float64
	InternalCost  *float64

	// SprintTeams overrides Team for individual sprint labels, for
	// developers lent to another team mid-PI.
	SprintTeams map[string]string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Derivation defaults for unset developer numerics. Ratios and velocity
// intentionally default to zero so an unconfigured developer contributes
// no bucket capacity.
const (
	DefaultDailyHours = 8.0
	DefaultLoad       = 90.0
	ManDayHours       = 8.0
)

// TeamFor returns the team the developer works in during the given
// sprint: the SprintTeams override if present, otherwise the home team.
func (d *Developer) TeamFor(sprint string) string {
	if t, ok := d.SprintTeams[sprint]; ok && t != "" {
		return t
	}
	return d.Team
}
