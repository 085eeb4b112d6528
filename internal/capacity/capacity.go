// Package capacity turns developer profiles, the sprint calendar and the
// availability grid into per-sprint bucket capacities. All functions are
// pure; persistence stays in the service layer.
package capacity

import (
	"sort"

	"github.com/mvogel/piboard/internal/domain"
)

// Bucket selects which per-day rate an aggregation sums.
type Bucket string

const (
	BucketDevelop  Bucket = "develop"
	BucketMaintain Bucket = "maintain"
	BucketManage   Bucket = "manage"
	BucketSP       Bucket = "sp"
)

// Buckets lists all aggregation buckets in display order.
var Buckets = []Bucket{BucketDevelop, BucketMaintain, BucketManage, BucketSP}

// DailyRates are one developer's derived per-day capacities.
type DailyRates struct {
	Develop  float64 // hours/day
	Maintain float64
	Manage   float64
	SP       float64 // story points/day
}

// For returns the rate for one bucket.
func (r DailyRates) For(b Bucket) float64 {
	switch b {
	case BucketDevelop:
		return r.Develop
	case BucketMaintain:
		return r.Maintain
	case BucketManage:
		return r.Manage
	case BucketSP:
		return r.SP
	}
	return 0
}

// RatesFor derives a developer's per-day rates. Effective daily hours are
// the configured hours scaled by load; each bucket takes its ratio share.
// SP per day converts develop hours to man-days before applying velocity.
// Unset fields fall back to the derivation defaults: 8 daily hours, 90
// load, zero ratios and velocity.
func RatesFor(d *domain.Developer) DailyRates {
	dailyHours := domain.Float64FromPtrWithDefault(domain.DefaultDailyHours, d.DailyHours)
	load := domain.Float64FromPtrWithDefault(domain.DefaultLoad, d.Load)
	develop := domain.Float64FromPtrWithDefault(0, d.DevelopRatio)
	maintain := domain.Float64FromPtrWithDefault(0, d.MaintainRatio)
	manage := domain.Float64FromPtrWithDefault(0, d.ManageRatio)
	velocity := domain.Float64FromPtrWithDefault(0, d.Velocity)

	eff := dailyHours * (load / 100)
	devHours := eff * (develop / 100)
	return DailyRates{
		Develop:  devHours,
		Maintain: eff * (maintain / 100),
		Manage:   eff * (manage / 100),
		SP:       devHours / domain.ManDayHours * velocity,
	}
}

// SprintDays sums a developer's availability fractions over one sprint's
// calendar days. Days without an entry count as fully available.
func SprintDays(cal []domain.CalendarDay, av domain.AvailabilitySet, sprint, dev string) float64 {
	var days float64
	for _, d := range cal {
		if d.Sprint != sprint {
			continue
		}
		days += av.FractionFor(dev, d.Date)
	}
	return days
}

// Input bundles everything one PI's capacity aggregation reads.
type Input struct {
	Developers   []domain.Developer
	Calendar     []domain.CalendarDay
	Availability domain.AvailabilitySet
	Aliases      *domain.AliasSet
}

// DevRow is one developer's line of the capacity table. SpecialCase
// developers keep their row but contribute nothing to any total.
type DevRow struct {
	Dev       domain.Developer
	PerSprint map[string]float64
	Total     float64
	TotalNoIP float64
}

// Summary is one bucket's capacity table for a team filter.
type Summary struct {
	Bucket       Bucket
	Sprints      []string // calendar order
	Rows         []DevRow // sorted by developer name
	SprintTotals map[string]float64
	Total        float64
	TotalNoIP    float64
}

// SprintLabels returns the distinct sprint labels of a calendar in first
// occurrence order.
func SprintLabels(cal []domain.CalendarDay) []string {
	seen := map[string]bool{}
	var labels []string
	for _, d := range cal {
		if d.Sprint == "" || seen[d.Sprint] {
			continue
		}
		seen[d.Sprint] = true
		labels = append(labels, d.Sprint)
	}
	return labels
}

// Aggregate builds one bucket's capacity table. An empty team aggregates
// every developer; otherwise a developer's cells count only for sprints
// where the effective team (sprint override, then home team, alias
// resolved) matches. Totals exclude special-case developers and are kept
// both with and without the IP sprint.
func Aggregate(in Input, team string, bucket Bucket) Summary {
	aliases := in.Aliases
	if aliases == nil {
		aliases = domain.DefaultAliases()
	}
	sprints := SprintLabels(in.Calendar)
	sum := Summary{
		Bucket:       bucket,
		Sprints:      sprints,
		SprintTotals: map[string]float64{},
	}

	for i := range in.Developers {
		dev := in.Developers[i]
		rate := RatesFor(&dev).For(bucket)
		row := DevRow{Dev: dev, PerSprint: map[string]float64{}}
		matched := false
		for _, sprint := range sprints {
			if team != "" && !aliases.Same(dev.TeamFor(sprint), team) {
				continue
			}
			matched = true
			v := SprintDays(in.Calendar, in.Availability, sprint, dev.Key) * rate
			row.PerSprint[sprint] = v
			row.Total += v
			if !domain.IsIPSprint(sprint) {
				row.TotalNoIP += v
			}
			if dev.SpecialCase {
				continue
			}
			sum.SprintTotals[sprint] += v
			sum.Total += v
			if !domain.IsIPSprint(sprint) {
				sum.TotalNoIP += v
			}
		}
		if matched {
			sum.Rows = append(sum.Rows, row)
		}
	}

	sort.Slice(sum.Rows, func(i, j int) bool {
		return sum.Rows[i].Dev.Name < sum.Rows[j].Dev.Name
	})
	return sum
}

// TeamHours returns a team's develop-bucket hours outside the IP sprint.
// This is the available-hours denominator of the effective rate.
func TeamHours(in Input, team string) float64 {
	return Aggregate(in, team, BucketDevelop).TotalNoIP
}
