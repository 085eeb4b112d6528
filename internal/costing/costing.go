// Package costing derives team hourly rates from planned story points
// and rolls stories up into feature and topic budget lines. Rates are
// intentionally circular: the rate comes from the plan and is then
// applied to logged hours, so actuals are comparable to planned cost
// rather than to payroll.
package costing

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/mvogel/piboard/internal/domain"
)

// Input bundles one PI's costing inputs. Hours maps the canonical team
// name to the team's available develop hours outside the IP sprint.
type Input struct {
	Teams    []domain.Team
	Stories  []domain.Story
	Entries  []domain.TimeEntry
	Topics   []domain.Topic
	Features []domain.Feature
	Hours    map[string]float64
	Aliases  *domain.AliasSet
}

func (in *Input) aliases() *domain.AliasSet {
	if in.Aliases != nil {
		return in.Aliases
	}
	return domain.DefaultAliases()
}

// teamFor resolves a free-text team name from imported data to the
// configured team, alias aware. Returns nil for unknown teams.
func (in *Input) teamFor(name string) *domain.Team {
	a := in.aliases()
	for i := range in.Teams {
		if a.Same(in.Teams[i].Name, name) {
			return &in.Teams[i]
		}
	}
	return nil
}

// TeamRate is one team's derived cost parameters.
type TeamRate struct {
	Team           domain.Team
	PlannedSP      float64
	PlannedCost    float64
	AvailableHours float64
	EffectiveRate  float64 // CHF/hour, 0 when no hours
}

// PlannedSP sums the story points of a team's PI stories, alias aware.
func PlannedSP(in Input, team string) float64 {
	a := in.aliases()
	return lo.SumBy(in.Stories, func(s domain.Story) float64 {
		if !a.Same(s.Team, team) {
			return 0
		}
		return s.StoryPoints
	})
}

// DeriveRates computes every team's effective hourly rate: planned cost
// (planned SP times the team's story point value) spread over the
// available hours. A team with no hours gets rate 0, never a division
// by zero.
func DeriveRates(in Input) map[string]TeamRate {
	rates := make(map[string]TeamRate, len(in.Teams))
	a := in.aliases()
	for _, team := range in.Teams {
		sp := PlannedSP(in, team.Name)
		cost := sp * team.StoryPointValue
		hours := in.Hours[a.Canonical(team.Name)]
		rate := 0.0
		if hours > 0 {
			rate = cost / hours
		}
		rates[a.Canonical(team.Name)] = TeamRate{
			Team:           team,
			PlannedSP:      sp,
			PlannedCost:    cost,
			AvailableHours: hours,
			EffectiveRate:  rate,
		}
	}
	return rates
}

// rateFor returns the effective rate for a story's team, 0 when the
// team is unknown.
func rateFor(in Input, rates map[string]TeamRate, team string) float64 {
	t := in.teamFor(team)
	if t == nil {
		return 0
	}
	return rates[in.aliases().Canonical(t.Name)].EffectiveRate
}

// StoryCost is one story with its logged hours and derived actual cost.
type StoryCost struct {
	Story domain.Story
	Hours float64
	Cost  float64
}

// ActualCosts prices every story's logged hours at its team's effective
// rate. Stories of unknown teams or teams without a positive rate are
// listed with zero cost.
func ActualCosts(in Input) []StoryCost {
	rates := DeriveRates(in)
	hoursByKey := map[string]float64{}
	for _, e := range in.Entries {
		hoursByKey[e.IssueKey] += e.Hours
	}
	out := make([]StoryCost, 0, len(in.Stories))
	for _, s := range in.Stories {
		sc := StoryCost{Story: s, Hours: hoursByKey[s.Key]}
		if rate := rateFor(in, rates, s.Team); rate > 0 {
			sc.Cost = sc.Hours * rate
		}
		out = append(out, sc)
	}
	return out
}

// BudgetRow is one line of the budget report. Variance is always
// budget minus planned.
type BudgetRow struct {
	Key      string
	Name     string
	Budget   float64
	Planned  float64
	Actual   float64
	Variance float64
	Progress int // 0..100, done SP share
}

// TopicRollup is a topic line with its feature lines.
type TopicRollup struct {
	BudgetRow
	Features []BudgetRow
}

// BudgetReport is the full rollup for a PI and optional team filter.
type BudgetReport struct {
	Topics []TopicRollup
	Total  BudgetRow
}

// spValueFor returns the story point value of the story's team, 0 for
// unknown teams.
func spValueFor(in Input, team string) float64 {
	t := in.teamFor(team)
	if t == nil {
		return 0
	}
	return t.StoryPointValue
}

// featureRow rolls one feature's stories into a budget line. When a
// team filter is active only that team's stories count and the feature
// budget is its per-team share.
func featureRow(in Input, rates map[string]TeamRate, hoursByKey map[string]float64, f domain.Feature, teamFilter *domain.Team) BudgetRow {
	a := in.aliases()
	row := BudgetRow{Key: f.JiraKey, Name: f.Name}
	if teamFilter != nil {
		row.Budget = f.BudgetFor(teamFilter.ID)
	} else {
		row.Budget = f.Budget
	}

	var totalSP, doneSP float64
	for _, s := range in.Stories {
		if s.EpicKey == "" || s.EpicKey != f.JiraKey {
			continue
		}
		if teamFilter != nil && !a.Same(s.Team, teamFilter.Name) {
			continue
		}
		row.Planned += s.StoryPoints * spValueFor(in, s.Team)
		if rate := rateFor(in, rates, s.Team); rate > 0 {
			row.Actual += hoursByKey[s.Key] * rate
		}
		totalSP += s.StoryPoints
		if s.IsDone() {
			doneSP += s.StoryPoints
		}
	}
	if totalSP > 0 {
		row.Progress = int(math.Round(doneSP / totalSP * 100))
	}
	row.Variance = row.Budget - row.Planned
	return row
}

// RollupBudget builds the budget report. Lines where budget, planned
// and actual are all zero are dropped; totals are formed from the rows
// that remain and the total variance is recomputed from the summed
// budget and planned figures.
func RollupBudget(in Input, teamID string) BudgetReport {
	var teamFilter *domain.Team
	if teamID != "" {
		for i := range in.Teams {
			if in.Teams[i].ID == teamID {
				teamFilter = &in.Teams[i]
			}
		}
	}
	rates := DeriveRates(in)
	hoursByKey := map[string]float64{}
	for _, e := range in.Entries {
		hoursByKey[e.IssueKey] += e.Hours
	}

	byTopic := lo.GroupBy(in.Features, func(f domain.Feature) string { return f.TopicKey })

	topics := make([]domain.Topic, len(in.Topics))
	copy(topics, in.Topics)
	sort.Slice(topics, func(i, j int) bool { return topics[i].Priority < topics[j].Priority })

	var report BudgetReport
	for _, topic := range topics {
		tr := TopicRollup{BudgetRow: BudgetRow{Key: topic.Key, Name: topic.Name}}
		if teamFilter != nil {
			tr.Budget = topic.BudgetFor(teamFilter.ID)
		} else {
			tr.Budget = topic.Budget
		}
		var totalSP, doneSP float64
		for _, f := range byTopic[topic.Key] {
			fr := featureRow(in, rates, hoursByKey, f, teamFilter)
			tr.Planned += fr.Planned
			tr.Actual += fr.Actual
			// progress needs SP, not cost; recount from the stories
			for _, s := range in.Stories {
				if s.EpicKey == "" || s.EpicKey != f.JiraKey {
					continue
				}
				if teamFilter != nil && !in.aliases().Same(s.Team, teamFilter.Name) {
					continue
				}
				totalSP += s.StoryPoints
				if s.IsDone() {
					doneSP += s.StoryPoints
				}
			}
			if fr.Budget == 0 && fr.Planned == 0 && fr.Actual == 0 {
				continue
			}
			tr.Features = append(tr.Features, fr)
		}
		if totalSP > 0 {
			tr.Progress = int(math.Round(doneSP / totalSP * 100))
		}
		tr.Variance = tr.Budget - tr.Planned
		if tr.Budget == 0 && tr.Planned == 0 && tr.Actual == 0 {
			continue
		}
		report.Topics = append(report.Topics, tr)
		report.Total.Budget += tr.Budget
		report.Total.Planned += tr.Planned
		report.Total.Actual += tr.Actual
	}
	report.Total.Name = "Total"
	report.Total.Variance = report.Total.Budget - report.Total.Planned
	return report
}
