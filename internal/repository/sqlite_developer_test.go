package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/testutil"
)

func TestDeveloperRepo_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDeveloperRepo(db)
	ctx := context.Background()

	dev := testutil.NewTestDeveloper("anna",
		testutil.WithTeam("Hydrogen 1"),
		testutil.WithSprintTeam("26.1-S2", "Tungsten"),
		testutil.WithRatios(80, 20, 0),
	)
	require.NoError(t, repo.Upsert(ctx, dev))

	got, err := repo.Get(ctx, "26.1", "anna")
	require.NoError(t, err)
	assert.Equal(t, "Hydrogen 1", got.Team)
	assert.Equal(t, "Tungsten", got.SprintTeams["26.1-S2"])
	require.NotNil(t, got.DevelopRatio)
	assert.Equal(t, 80.0, *got.DevelopRatio)
	require.NotNil(t, got.MaintainRatio)
	assert.Equal(t, 20.0, *got.MaintainRatio)
	assert.False(t, got.SpecialCase)
}

func TestDeveloperRepo_NilNumericsSurviveRoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDeveloperRepo(db)
	ctx := context.Background()

	dev := testutil.NewTestDeveloper("ben")
	dev.DailyHours = nil
	dev.Load = nil
	dev.Velocity = nil
	require.NoError(t, repo.Upsert(ctx, dev))

	got, err := repo.Get(ctx, "26.1", "ben")
	require.NoError(t, err)
	assert.Nil(t, got.DailyHours, "NULL must stay distinct from zero")
	assert.Nil(t, got.Load)
	assert.Nil(t, got.Velocity)
}

func TestDeveloperRepo_Get_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDeveloperRepo(db)

	_, err := repo.Get(context.Background(), "26.1", "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeveloperRepo_Upsert_LastWriteWins(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDeveloperRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestDeveloper("anna", testutil.WithTeam("Neon"))))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestDeveloper("anna", testutil.WithTeam("Zn2C"))))

	devs, err := repo.ListByPI(ctx, "26.1")
	require.NoError(t, err)
	require.Len(t, devs, 1)
	assert.Equal(t, "Zn2C", devs[0].Team)
}

func TestDeveloperRepo_ReplaceForPI(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteDeveloperRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testutil.NewTestDeveloper("anna")))
	require.NoError(t, repo.Upsert(ctx, testutil.NewTestDeveloper("ben")))

	other := testutil.NewTestDeveloper("other")
	other.PI = "26.2"
	require.NoError(t, repo.Upsert(ctx, other))

	require.NoError(t, repo.ReplaceForPI(ctx, "26.1", []*domain.Developer{
		testutil.NewTestDeveloper("carla"),
	}))

	devs, err := repo.ListByPI(ctx, "26.1")
	require.NoError(t, err)
	require.Len(t, devs, 1)
	assert.Equal(t, "carla", devs[0].Key)

	// Other PIs are untouched.
	others, err := repo.ListByPI(ctx, "26.2")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}
