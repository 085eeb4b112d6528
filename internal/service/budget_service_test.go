package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/testutil"
)

// seedCostingFixture writes one team's worth of stories, hours and
// budget structure: 32 available develop hours, 20 planned SP at 100
// CHF, so the effective rate comes out at 62.50.
func seedCostingFixture(t *testing.T, repos testRepos) {
	t.Helper()
	ctx := context.Background()
	seedShortCalendar(t, repos)

	require.NoError(t, repos.developers.Upsert(ctx, testutil.NewTestDeveloper("anna")))
	require.NoError(t, repos.teams.Upsert(ctx, testutil.NewTestTeam("neon", "Neon")))

	done := testutil.NewTestStory("PD-1", 10, testutil.WithStatus("Done"), testutil.WithEpic("PD-100"))
	open := testutil.NewTestStory("PD-2", 10, testutil.WithEpic("PD-100"))
	require.NoError(t, repos.stories.ReplaceForPI(ctx, "26.1", []domain.Story{done, open}))

	require.NoError(t, repos.entries.ReplaceForPI(ctx, "26.1", []domain.TimeEntry{
		{PI: "26.1", IssueKey: "PD-1", Sprint: "26.1-S1", Hours: 8},
	}))

	require.NoError(t, repos.topics.Upsert(ctx, testutil.NewTestTopic("platform", "Platform", 5000)))
	require.NoError(t, repos.features.Upsert(ctx, testutil.NewTestFeature("Search", "PD-100", "platform", 3000)))
}

func newBudgetService(repos testRepos) BudgetService {
	return NewBudgetService(
		repos.developers, repos.calendar, repos.availability,
		repos.teams, repos.stories, repos.entries,
		repos.topics, repos.features, nil,
	)
}

func TestBudgetService_Rates(t *testing.T) {
	repos := newTestRepos(t)
	seedCostingFixture(t, repos)

	rates, err := newBudgetService(repos).Rates(context.Background(), "26.1")
	require.NoError(t, err)

	neon, ok := rates["Neon"]
	require.True(t, ok)
	assert.Equal(t, 20.0, neon.PlannedSP)
	assert.Equal(t, 2000.0, neon.PlannedCost)
	assert.Equal(t, 32.0, neon.AvailableHours)
	assert.Equal(t, 62.5, neon.EffectiveRate)
}

func TestBudgetService_StoryCosts(t *testing.T) {
	repos := newTestRepos(t)
	seedCostingFixture(t, repos)

	costs, err := newBudgetService(repos).StoryCosts(context.Background(), "26.1")
	require.NoError(t, err)
	require.Len(t, costs, 2)

	assert.Equal(t, "PD-1", costs[0].Story.Key)
	assert.Equal(t, 8.0, costs[0].Hours)
	assert.Equal(t, 500.0, costs[0].Cost)
	assert.Zero(t, costs[1].Hours)
	assert.Zero(t, costs[1].Cost)
}

func TestBudgetService_Report(t *testing.T) {
	repos := newTestRepos(t)
	seedCostingFixture(t, repos)

	report, err := newBudgetService(repos).Report(context.Background(), "26.1", "")
	require.NoError(t, err)
	require.Len(t, report.Topics, 1)

	topic := report.Topics[0]
	assert.Equal(t, "platform", topic.Key)
	assert.Equal(t, 5000.0, topic.Budget)
	assert.Equal(t, 2000.0, topic.Planned)
	assert.Equal(t, 500.0, topic.Actual)
	assert.Equal(t, 50, topic.Progress)

	require.Len(t, topic.Features, 1)
	feature := topic.Features[0]
	assert.Equal(t, "PD-100", feature.Key)
	assert.Equal(t, 3000.0, feature.Budget)
	assert.Equal(t, 1000.0, feature.Variance)
	assert.Equal(t, 50, feature.Progress)

	assert.Equal(t, 2000.0, report.Total.Planned)
	assert.Equal(t, 500.0, report.Total.Actual)
}
