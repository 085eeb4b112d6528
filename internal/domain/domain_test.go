package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFractionFor_Defaults(t *testing.T) {
	av := AvailabilitySet{}
	av.Set("anna", "2025-12-04", "0.5")
	av.Set("anna", "2025-12-05", "0")
	av.Set("ben", "2025-12-04", "x")
	av.Set("ben", "2025-12-05", "")
	av.Set("ben", "2025-12-08", "  ")

	cases := []struct {
		name string
		dev  string
		date string
		want float64
	}{
		{"entered half day", "anna", "2025-12-04", 0.5},
		{"entered absent", "anna", "2025-12-05", 0},
		{"missing date defaults to present", "anna", "2025-12-08", 1},
		{"missing developer defaults to present", "carla", "2025-12-04", 1},
		{"non-numeric counts as absent", "ben", "2025-12-04", 0},
		{"cleared cell is present again", "ben", "2025-12-05", 1},
		{"whitespace cell is present", "ben", "2025-12-08", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, av.FractionFor(tc.dev, tc.date))
		})
	}
}

func TestAliasSet_Same(t *testing.T) {
	a := DefaultAliases()
	assert.True(t, a.Same("Hydrogen 1", "H1"))
	assert.True(t, a.Same("H1", "Hydrogen 1"))
	assert.True(t, a.Same("h1", "H1"))
	assert.True(t, a.Same(" Neon ", "Neon"))
	assert.False(t, a.Same("Neon", "H1"))
}

func TestAliasSet_Canonical(t *testing.T) {
	a := DefaultAliases()
	assert.Equal(t, "H1", a.Canonical("Hydrogen 1"))
	assert.Equal(t, "H1", a.Canonical("H1"))
	assert.Equal(t, "Tungsten", a.Canonical("Tungsten"))
}

func TestTeamFor_SprintOverride(t *testing.T) {
	d := &Developer{
		Team:        "Neon",
		SprintTeams: map[string]string{"26.1-S2": "Tungsten"},
	}
	assert.Equal(t, "Tungsten", d.TeamFor("26.1-S2"))
	assert.Equal(t, "Neon", d.TeamFor("26.1-S1"))
	assert.Equal(t, "Neon", d.TeamFor("26.1-IP"))
}

func TestIsIPSprint(t *testing.T) {
	assert.True(t, IsIPSprint("26.1-IP"))
	assert.True(t, IsIPSprint("IP"))
	assert.False(t, IsIPSprint("26.1-S1"))
	assert.False(t, IsIPSprint(""))
}

func TestMetricSheet_GetDistinguishesUnsetFromZero(t *testing.T) {
	s := NewMetricSheet("26.1", "Neon")
	s.Set(0, MetricSP, KindActual, 0)

	v, ok := s.Get(0, MetricSP, KindActual)
	assert.True(t, ok)
	assert.Zero(t, v)

	_, ok = s.Get(0, MetricSP, KindPlan)
	assert.False(t, ok)
	_, ok = s.Get(1, MetricSP, KindActual)
	assert.False(t, ok)
}

func TestStoryIsDone(t *testing.T) {
	assert.True(t, (&Story{Status: "Done"}).IsDone())
	assert.True(t, (&Story{Status: "Closed"}).IsDone())
	assert.False(t, (&Story{Status: "In Progress"}).IsDone())
	assert.False(t, (&Story{Status: "done"}).IsDone())
}
