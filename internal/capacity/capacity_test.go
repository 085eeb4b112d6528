package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/sprintcal"
)

func ptr(v float64) *float64 { return &v }

func dev(key, team string, opts ...func(*domain.Developer)) domain.Developer {
	d := domain.Developer{
		Key:          key,
		PI:           "26.1",
		Name:         key,
		Team:         team,
		DailyHours:   ptr(8),
		Load:         ptr(100),
		DevelopRatio: ptr(100),
	}
	for _, o := range opts {
		o(&d)
	}
	return d
}

// twoSprintCal builds a small calendar: 4 weekdays of S1 and 2 of IP.
func twoSprintCal() []domain.CalendarDay {
	return sprintcal.GenerateCalendar("26.1", []sprintcal.Window{
		{Label: "26.1-S1", Start: "2025-12-08", End: "2025-12-11"},
		{Label: "26.1-IP", Start: "2025-12-15", End: "2025-12-16"},
	})
}

func TestRatesFor_Defaults(t *testing.T) {
	d := &domain.Developer{}
	r := RatesFor(d)
	// 8h at 90% load, all ratios unset.
	assert.Zero(t, r.Develop)
	assert.Zero(t, r.Maintain)
	assert.Zero(t, r.Manage)
	assert.Zero(t, r.SP)

	d.DevelopRatio = ptr(100)
	r = RatesFor(d)
	assert.InDelta(t, 7.2, r.Develop, 1e-9)
}

func TestRatesFor_Buckets(t *testing.T) {
	d := &domain.Developer{
		DailyHours:    ptr(8),
		Load:          ptr(90),
		DevelopRatio:  ptr(80),
		MaintainRatio: ptr(20),
		ManageRatio:   ptr(0),
		Velocity:      ptr(1),
	}
	r := RatesFor(d)
	assert.InDelta(t, 5.76, r.Develop, 1e-9)  // 8*0.9*0.8
	assert.InDelta(t, 1.44, r.Maintain, 1e-9) // 8*0.9*0.2
	assert.Zero(t, r.Manage)
	assert.InDelta(t, 0.72, r.SP, 1e-9) // 5.76/8*1
}

func TestSprintDays_DefaultToAvailable(t *testing.T) {
	cal := twoSprintCal()
	av := domain.AvailabilitySet{}
	assert.Equal(t, 4.0, SprintDays(cal, av, "26.1-S1", "anna"))

	av.Set("anna", "2025-12-08", "0.5")
	av.Set("anna", "2025-12-09", "0")
	assert.Equal(t, 2.5, SprintDays(cal, av, "26.1-S1", "anna"))
	// Other developers keep the default.
	assert.Equal(t, 4.0, SprintDays(cal, av, "26.1-S1", "ben"))
}

// An empty availability grid and a grid with every cell explicitly 1
// must produce identical capacity.
func TestAggregate_EmptyGridEqualsAllOnes(t *testing.T) {
	cal := twoSprintCal()
	in := Input{
		Developers: []domain.Developer{dev("anna", "Neon"), dev("ben", "Neon")},
		Calendar:   cal,
	}
	empty := Aggregate(in, "Neon", BucketDevelop)

	full := domain.AvailabilitySet{}
	for _, d := range cal {
		full.Set("anna", d.Date, "1")
		full.Set("ben", d.Date, "1")
	}
	in.Availability = full
	explicit := Aggregate(in, "Neon", BucketDevelop)

	assert.Equal(t, empty.Total, explicit.Total)
	assert.Equal(t, empty.TotalNoIP, explicit.TotalNoIP)
	assert.Equal(t, empty.SprintTotals, explicit.SprintTotals)
}

func TestAggregate_IPSplit(t *testing.T) {
	in := Input{
		Developers: []domain.Developer{dev("anna", "Neon")},
		Calendar:   twoSprintCal(),
	}
	s := Aggregate(in, "Neon", BucketDevelop)
	// 8h/day: 4 S1 days + 2 IP days.
	assert.Equal(t, 48.0, s.Total)
	assert.Equal(t, 32.0, s.TotalNoIP)
	assert.Equal(t, 32.0, s.SprintTotals["26.1-S1"])
	assert.Equal(t, 16.0, s.SprintTotals["26.1-IP"])
}

func TestAggregate_SpecialCaseListedButExcluded(t *testing.T) {
	in := Input{
		Developers: []domain.Developer{
			dev("anna", "Neon"),
			dev("guest", "Neon", func(d *domain.Developer) { d.SpecialCase = true }),
		},
		Calendar: twoSprintCal(),
	}
	s := Aggregate(in, "Neon", BucketDevelop)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, 48.0, s.Total, "special case must not contribute")
	assert.Equal(t, 32.0, s.SprintTotals["26.1-S1"])

	var guest DevRow
	for _, r := range s.Rows {
		if r.Dev.Key == "guest" {
			guest = r
		}
	}
	assert.Equal(t, 48.0, guest.Total, "row itself still shows the hours")
}

func TestAggregate_SprintTeamOverride(t *testing.T) {
	lent := dev("anna", "Neon", func(d *domain.Developer) {
		d.SprintTeams = map[string]string{"26.1-IP": "Tungsten"}
	})
	in := Input{Developers: []domain.Developer{lent}, Calendar: twoSprintCal()}

	neon := Aggregate(in, "Neon", BucketDevelop)
	assert.Equal(t, 32.0, neon.Total)
	assert.Zero(t, neon.SprintTotals["26.1-IP"])

	tungsten := Aggregate(in, "Tungsten", BucketDevelop)
	assert.Equal(t, 16.0, tungsten.Total)
}

func TestAggregate_AliasResolution(t *testing.T) {
	in := Input{
		Developers: []domain.Developer{dev("anna", "Hydrogen 1")},
		Calendar:   twoSprintCal(),
	}
	viaAlias := Aggregate(in, "H1", BucketDevelop)
	viaName := Aggregate(in, "Hydrogen 1", BucketDevelop)
	assert.Equal(t, 48.0, viaAlias.Total)
	assert.Equal(t, viaAlias.Total, viaName.Total)
}

// Per-team totals summed over all teams must equal the unfiltered total.
func TestAggregate_PerTeamRoundTrip(t *testing.T) {
	in := Input{
		Developers: []domain.Developer{
			dev("anna", "Neon"),
			dev("ben", "Tungsten", func(d *domain.Developer) {
				d.SprintTeams = map[string]string{"26.1-S1": "Neon"}
			}),
			dev("carla", "Hydrogen 1"),
			dev("guest", "Neon", func(d *domain.Developer) { d.SpecialCase = true }),
		},
		Calendar: twoSprintCal(),
	}
	all := Aggregate(in, "", BucketDevelop)

	var byTeam float64
	for _, team := range []string{"Neon", "Tungsten", "H1"} {
		byTeam += Aggregate(in, team, BucketDevelop).Total
	}
	assert.InDelta(t, all.Total, byTeam, 1e-9)
}

func TestTeamHours(t *testing.T) {
	in := Input{
		Developers: []domain.Developer{dev("anna", "Neon"), dev("ben", "Tungsten")},
		Calendar:   twoSprintCal(),
	}
	assert.Equal(t, 32.0, TeamHours(in, "Neon"))
	assert.Equal(t, 32.0, TeamHours(in, "Tungsten"))
	assert.Zero(t, TeamHours(in, "Zn2C"))
}
