package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/repository"
	"github.com/mvogel/piboard/internal/service"
	"github.com/mvogel/piboard/internal/sprintcal"
	"github.com/mvogel/piboard/internal/testutil"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	teams := repository.NewSQLiteTeamRepo(database)
	developers := repository.NewSQLiteDeveloperRepo(database)
	calendar := repository.NewSQLiteCalendarRepo(database)
	availability := repository.NewSQLiteAvailabilityRepo(database)
	stories := repository.NewSQLiteStoryRepo(database)
	entries := repository.NewSQLiteTimeEntryRepo(database)
	topics := repository.NewSQLiteTopicRepo(database)
	features := repository.NewSQLiteFeatureRepo(database)
	metricRepo := repository.NewSQLiteMetricRepo(database)

	days := sprintcal.GenerateCalendar("26.1", []sprintcal.Window{
		{Label: "26.1-S1", Start: "2025-12-08", End: "2025-12-11"},
	})
	for i := range days {
		require.NoError(t, calendar.UpsertDay(ctx, &days[i]))
	}
	require.NoError(t, teams.Upsert(ctx, testutil.NewTestTeam("neon", "Neon")))
	require.NoError(t, developers.Upsert(ctx, testutil.NewTestDeveloper("anna")))
	story := testutil.NewTestStory("PD-1", 10, testutil.WithStatus("Done"))
	require.NoError(t, stories.Upsert(ctx, &story))

	aliases := domain.DefaultAliases()
	return &Server{
		Capacity:   service.NewCapacityService(developers, calendar, availability, teams, aliases),
		Budget:     service.NewBudgetService(developers, calendar, availability, teams, stories, entries, topics, features, aliases),
		Metrics:    service.NewMetricsService(metricRepo, stories, aliases),
		Calendar:   service.NewCalendarService(calendar, availability),
		Teams:      teams,
		Developers: developers,
	}
}

func get(t *testing.T, e http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetCapacity(t *testing.T) {
	e := newTestServer(t).NewEcho()

	rec := get(t, e, "/api/pis/26.1/capacity?team=Neon")
	require.Equal(t, http.StatusOK, rec.Code)

	var sum capacitySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sum))
	assert.Equal(t, "develop", sum.Bucket)
	assert.Equal(t, []string{"26.1-S1"}, sum.Sprints)
	require.Len(t, sum.Rows, 1)
	assert.Equal(t, "anna", sum.Rows[0].Key)
	assert.Equal(t, 32.0, sum.Total)
}

func TestGetCapacityBadBucket(t *testing.T) {
	e := newTestServer(t).NewEcho()
	rec := get(t, e, "/api/pis/26.1/capacity?bucket=everything")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetRates(t *testing.T) {
	e := newTestServer(t).NewEcho()

	rec := get(t, e, "/api/pis/26.1/budget/rates")
	require.Equal(t, http.StatusOK, rec.Code)

	var rates map[string]teamRateDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rates))
	neon, ok := rates["Neon"]
	require.True(t, ok)
	assert.Equal(t, 10.0, neon.PlannedSP)
	assert.Equal(t, 1000.0, neon.PlannedCost)
	assert.Equal(t, 32.0, neon.AvailableHours)
	assert.InDelta(t, 31.25, neon.EffectiveRate, 0.001)
}

func TestGetCalendar(t *testing.T) {
	e := newTestServer(t).NewEcho()

	rec := get(t, e, "/api/pis/26.1/calendar")
	require.Equal(t, http.StatusOK, rec.Code)

	var days []calendarDayDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &days))
	require.Len(t, days, 4)
	assert.Equal(t, "Mo", days[0].Weekday)
	assert.Equal(t, 50, days[0].Week)
	assert.Equal(t, "26.1-S1", days[0].Sprint)
}

func TestGetDevelopersKeepsUnsetFields(t *testing.T) {
	e := newTestServer(t).NewEcho()

	rec := get(t, e, "/api/pis/26.1/developers")
	require.Equal(t, http.StatusOK, rec.Code)

	var devs []developerDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &devs))
	require.Len(t, devs, 1)
	assert.Equal(t, "anna", devs[0].Key)
	require.NotNil(t, devs[0].DailyHours)
	assert.Equal(t, 8.0, *devs[0].DailyHours)
	// never configured, must arrive as null rather than 0
	assert.Nil(t, devs[0].MaintainRatio)
}

func TestGetMetricsBadSprint(t *testing.T) {
	e := newTestServer(t).NewEcho()

	for _, q := range []string{"sprint=abc", "sprint=0", "sprint=-2"} {
		rec := get(t, e, "/api/pis/26.1/metrics/rollup?"+q)
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
	}

	// Absent sprint still defaults to 1.
	rec := get(t, e, "/api/pis/26.1/metrics/rollup")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetMetricsRollupEmpty(t *testing.T) {
	e := newTestServer(t).NewEcho()

	rec := get(t, e, "/api/pis/26.1/metrics/rollup?sprint=1")
	require.Equal(t, http.StatusOK, rec.Code)

	var r rollup
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	assert.Nil(t, r.SPAcceptance)
	assert.Zero(t, r.BugsCreated)
}
