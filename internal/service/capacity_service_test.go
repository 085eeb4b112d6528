package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvogel/piboard/internal/capacity"
	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/repository"
	"github.com/mvogel/piboard/internal/sprintcal"
	"github.com/mvogel/piboard/internal/testutil"
)

type testRepos struct {
	db           *sql.DB
	teams        *repository.SQLiteTeamRepo
	developers   *repository.SQLiteDeveloperRepo
	calendar     *repository.SQLiteCalendarRepo
	availability *repository.SQLiteAvailabilityRepo
	stories      *repository.SQLiteStoryRepo
	entries      *repository.SQLiteTimeEntryRepo
	topics       *repository.SQLiteTopicRepo
	features     *repository.SQLiteFeatureRepo
	metrics      *repository.SQLiteMetricRepo
	metadata     *repository.SQLiteMetadataRepo
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:           database,
		teams:        repository.NewSQLiteTeamRepo(database),
		developers:   repository.NewSQLiteDeveloperRepo(database),
		calendar:     repository.NewSQLiteCalendarRepo(database),
		availability: repository.NewSQLiteAvailabilityRepo(database),
		stories:      repository.NewSQLiteStoryRepo(database),
		entries:      repository.NewSQLiteTimeEntryRepo(database),
		topics:       repository.NewSQLiteTopicRepo(database),
		features:     repository.NewSQLiteFeatureRepo(database),
		metrics:      repository.NewSQLiteMetricRepo(database),
		metadata:     repository.NewSQLiteMetadataRepo(database),
	}
}

// seedShortCalendar writes a 4-day S1 plus 2-day IP calendar.
func seedShortCalendar(t *testing.T, repos testRepos) {
	t.Helper()
	ctx := context.Background()
	days := sprintcal.GenerateCalendar("26.1", []sprintcal.Window{
		{Label: "26.1-S1", Start: "2025-12-08", End: "2025-12-11"},
		{Label: "26.1-IP", Start: "2025-12-15", End: "2025-12-16"},
	})
	for i := range days {
		require.NoError(t, repos.calendar.UpsertDay(ctx, &days[i]))
	}
}

func TestCapacityService_Summary(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	seedShortCalendar(t, repos)

	require.NoError(t, repos.developers.Upsert(ctx, testutil.NewTestDeveloper("anna")))
	require.NoError(t, repos.developers.Upsert(ctx, testutil.NewTestDeveloper("ben", testutil.WithTeam("Tungsten"))))

	// Anna is away half a day.
	require.NoError(t, repos.availability.Set(ctx, &domain.AvailabilityDay{
		PI: "26.1", Date: "2025-12-08", Dev: "anna", Value: "0.5",
	}))

	svc := NewCapacityService(repos.developers, repos.calendar, repos.availability, repos.teams, nil)

	sum, err := svc.Summary(ctx, "26.1", "Neon", capacity.BucketDevelop)
	require.NoError(t, err)
	require.Len(t, sum.Rows, 1)
	assert.Equal(t, "anna", sum.Rows[0].Dev.Key)
	// 3.5 S1 days + 2 IP days at 8h.
	assert.Equal(t, 44.0, sum.Total)
	assert.Equal(t, 28.0, sum.TotalNoIP)
}

func TestCapacityService_TeamHours(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()
	seedShortCalendar(t, repos)

	require.NoError(t, repos.teams.Upsert(ctx, testutil.NewTestTeam("neon", "Neon")))
	require.NoError(t, repos.teams.Upsert(ctx, testutil.NewTestTeam("h1", "Hydrogen 1")))
	require.NoError(t, repos.developers.Upsert(ctx, testutil.NewTestDeveloper("anna")))
	require.NoError(t, repos.developers.Upsert(ctx, testutil.NewTestDeveloper("carla", testutil.WithTeam("H1"))))

	svc := NewCapacityService(repos.developers, repos.calendar, repos.availability, repos.teams, nil)

	hours, err := svc.TeamHours(ctx, "26.1")
	require.NoError(t, err)
	assert.Equal(t, 32.0, hours["Neon"])
	// Carla's "H1" credits the aliased "Hydrogen 1" team under its
	// canonical name.
	assert.Equal(t, 32.0, hours["H1"])
}
