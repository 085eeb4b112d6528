package cli

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvogel/piboard/internal/capacity"
)

type stubCapacity struct {
	lastTeam   string
	lastBucket capacity.Bucket
}

func (s *stubCapacity) Summary(ctx context.Context, pi, team string, bucket capacity.Bucket) (*capacity.Summary, error) {
	s.lastTeam = team
	s.lastBucket = bucket
	return &capacity.Summary{Bucket: bucket, Sprints: []string{"26.1-S1"}}, nil
}

func (s *stubCapacity) TeamHours(ctx context.Context, pi string) (map[string]float64, error) {
	return nil, nil
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDashboardModel_CyclesBucketAndTeam(t *testing.T) {
	stub := &stubCapacity{}
	app := &App{Capacity: stub}
	m := newDashboardModel(app, "26.1", []string{"", "Neon", "H1"})

	cmd := m.Init()
	require.NotNil(t, cmd)
	msg := cmd()
	loaded, ok := msg.(summaryLoadedMsg)
	require.True(t, ok)
	assert.Equal(t, capacity.BucketDevelop, loaded.summary.Bucket)

	// b cycles develop -> maintain.
	next, cmd := m.Update(keyMsg("b"))
	m = next.(dashboardModel)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, capacity.BucketMaintain, stub.lastBucket)

	// t cycles everyone -> Neon.
	next, cmd = m.Update(keyMsg("t"))
	m = next.(dashboardModel)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, "Neon", stub.lastTeam)

	// q quits.
	_, cmd = m.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestDashboardModel_ViewStates(t *testing.T) {
	m := newDashboardModel(&App{}, "26.1", nil)
	assert.Contains(t, m.View(), "Loading")

	next, _ := m.Update(summaryErrMsg{err: assert.AnError})
	m = next.(dashboardModel)
	assert.Contains(t, m.View(), "Error")

	next, _ = m.Update(summaryLoadedMsg{summary: &capacity.Summary{
		Bucket:       capacity.BucketDevelop,
		Sprints:      []string{"26.1-S1"},
		SprintTotals: map[string]float64{},
	}})
	m = next.(dashboardModel)
	assert.Contains(t, m.View(), "all teams")
}
