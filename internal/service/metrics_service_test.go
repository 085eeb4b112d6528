package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/testutil"
)

func TestMetricsService_SheetRoundTrip(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	svc := NewMetricsService(repos.metrics, repos.stories, nil)

	key := domain.MetricKey{Sprint: 1, Metric: domain.MetricSP, Kind: domain.KindPlan}
	require.NoError(t, svc.SetValue(ctx, "26.1", "Hydrogen 1", key, 40))

	// Reads under either spelling hit the same canonical sheet.
	sheet, err := svc.Sheet(ctx, "26.1", "H1")
	require.NoError(t, err)
	assert.Equal(t, "H1", sheet.Team)
	v, ok := sheet.Get(1, domain.MetricSP, domain.KindPlan)
	require.True(t, ok)
	assert.Equal(t, 40.0, v)
}

func TestMetricsService_Derived(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	svc := NewMetricsService(repos.metrics, repos.stories, nil)

	set := func(metric string, kind domain.MetricKind, v float64) {
		t.Helper()
		require.NoError(t, svc.SetValue(ctx, "26.1", "Neon", domain.MetricKey{Sprint: 1, Metric: metric, Kind: kind}, v))
	}
	set(domain.MetricDev, domain.KindPlan, 100)
	set(domain.MetricDev, domain.KindActual, 90)
	set(domain.MetricSP, domain.KindPlan, 40)
	set(domain.MetricSP, domain.KindActual, 30)

	story := testutil.NewTestStory("PD-1", 60)
	require.NoError(t, repos.stories.Upsert(ctx, &story))

	d, err := svc.Derived(ctx, "26.1", "Neon", 1)
	require.NoError(t, err)

	require.NotNil(t, d.ReportedRatio)
	assert.InDelta(t, 90.0, *d.ReportedRatio, 0.001)
	require.NotNil(t, d.SPAcceptance)
	assert.InDelta(t, 75.0, *d.SPAcceptance, 0.001)
	assert.Nil(t, d.IssueAcceptance)
	assert.InDelta(t, 50.0, d.PIProgress, 0.001)
}

func TestMetricsService_Rollup(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	svc := NewMetricsService(repos.metrics, repos.stories, nil)

	for _, team := range []string{"Neon", "Tungsten"} {
		require.NoError(t, svc.SetValue(ctx, "26.1", team,
			domain.MetricKey{Sprint: 1, Metric: domain.MetricSP, Kind: domain.KindPlan}, 40))
		require.NoError(t, svc.SetValue(ctx, "26.1", team,
			domain.MetricKey{Sprint: 1, Metric: domain.MetricBugsCreated, Kind: domain.KindActual}, 3))
	}
	require.NoError(t, svc.SetValue(ctx, "26.1", "Neon",
		domain.MetricKey{Sprint: 1, Metric: domain.MetricSP, Kind: domain.KindActual}, 30))
	require.NoError(t, svc.SetValue(ctx, "26.1", "Neon",
		domain.MetricKey{Sprint: 1, Metric: domain.MetricDefectRatio, Kind: domain.KindActual}, 8))

	r, err := svc.Rollup(ctx, "26.1", 1)
	require.NoError(t, err)

	// Tungsten never entered accepted SP, so only Neon's 75% counts.
	require.NotNil(t, r.SPAcceptance)
	assert.InDelta(t, 75.0, *r.SPAcceptance, 0.001)
	assert.Equal(t, 6.0, r.BugsCreated)
	// Defect ratio sums divide by the fixed historical team count.
	assert.InDelta(t, 2.0, r.DefectRatio, 0.001)
}
