package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvogel/piboard/internal/testutil"
)

const jiraCSV = `Key,Summary,Status,Custom field (Story Points),Custom field (pdev_unit),Custom field (current Sprint)
PD-1,Login flow,Done,5,Neon,26.1-S1
PD-2,Search index,Open,8,Hydrogen 1,26.1-S2
`

func TestImportService_ImportJiraReplacesWholesale(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	stale := testutil.NewTestStory("PD-OLD", 13)
	require.NoError(t, repos.stories.Upsert(ctx, &stale))

	svc := NewImportService(testutil.NewTestUoW(repos.db), nil)
	n, err := svc.ImportJira(ctx, "26.1", strings.NewReader(jiraCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	stories, err := repos.stories.ListByPI(ctx, "26.1")
	require.NoError(t, err)
	require.Len(t, stories, 2)
	assert.Equal(t, "PD-1", stories[0].Key)
	assert.Equal(t, 5.0, stories[0].StoryPoints)
	assert.Equal(t, "Hydrogen 1", stories[1].Team)
}

func TestImportService_ImportJiraRollsBackOnFailure(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	stale := testutil.NewTestStory("PD-OLD", 13)
	require.NoError(t, repos.stories.Upsert(ctx, &stale))

	boom := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: repos.db, FailOn: 3, Err: boom}

	svc := NewImportService(uow, nil)
	_, err := svc.ImportJira(ctx, "26.1", strings.NewReader(jiraCSV))
	require.ErrorIs(t, err, boom)

	// The delete and the first insert were rolled back with the failure.
	stories, err := repos.stories.ListByPI(ctx, "26.1")
	require.NoError(t, err)
	require.Len(t, stories, 1)
	assert.Equal(t, "PD-OLD", stories[0].Key)
}

func TestImportService_ImportJiraBadRowKeepsOldData(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	stale := testutil.NewTestStory("PD-OLD", 13)
	require.NoError(t, repos.stories.Upsert(ctx, &stale))

	svc := NewImportService(testutil.NewTestUoW(repos.db), nil)
	_, err := svc.ImportJira(ctx, "26.1", strings.NewReader("Key,Summary\nPD-1,ok\n,missing\n"))
	require.Error(t, err)

	stories, err := repos.stories.ListByPI(ctx, "26.1")
	require.NoError(t, err)
	require.Len(t, stories, 1)
}

func TestImportService_ImportEverhour(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	csv := "Key,Time,Sprint\nPD-1,\"12,5\",26.1-S1\nPD-1,4,26.1-S2\n"
	svc := NewImportService(testutil.NewTestUoW(repos.db), nil)
	n, err := svc.ImportEverhour(ctx, "26.1", strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	entries, err := repos.entries.ListByPI(ctx, "26.1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 12.5, entries[0].Hours)
}

func TestImportService_ImportDevelopersJSON(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	payload := `[{"key":"TSC","name":"TSC","team":"H1","dailyHours":"8","load":null}]`
	svc := NewImportService(testutil.NewTestUoW(repos.db), nil)
	n, err := svc.ImportDevelopers(ctx, "26.1", strings.NewReader(payload), "json")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	dev, err := repos.developers.Get(ctx, "26.1", "TSC")
	require.NoError(t, err)
	assert.Equal(t, "H1", dev.Team)
	require.NotNil(t, dev.DailyHours)
	assert.Equal(t, 8.0, *dev.DailyHours)
	assert.Nil(t, dev.Load)
}

func TestImportService_ImportDevelopersUnknownFormat(t *testing.T) {
	repos := newTestRepos(t)
	svc := NewImportService(testutil.NewTestUoW(repos.db), nil)
	_, err := svc.ImportDevelopers(context.Background(), "26.1", strings.NewReader(""), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown developers format")
}
