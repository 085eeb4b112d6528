package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mvogel/piboard/internal/capacity"
	"github.com/mvogel/piboard/internal/cli/formatter"
)

// dashboardKeyMap holds the key bindings for the capacity dashboard.
type dashboardKeyMap struct {
	Bucket key.Binding
	Team   key.Binding
	Reload key.Binding
	Quit   key.Binding
}

func defaultDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Bucket: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bucket")),
		Team:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "team")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// dashboardModel is the interactive capacity view: `b` cycles the
// bucket, `t` cycles the team filter, `r` reloads, `q` quits.
type dashboardModel struct {
	app   *App
	pi    string
	teams []string // team filter cycle, "" first for everyone

	keys dashboardKeyMap

	bucketIdx int
	teamIdx   int

	summary *capacity.Summary
	err     error
}

type summaryLoadedMsg struct {
	summary *capacity.Summary
}

type summaryErrMsg struct {
	err error
}

func newDashboardModel(app *App, pi string, teams []string) dashboardModel {
	if len(teams) == 0 {
		teams = []string{""}
	}
	return dashboardModel{app: app, pi: pi, teams: teams, keys: defaultDashboardKeyMap()}
}

func (m dashboardModel) bucket() capacity.Bucket {
	return capacity.Buckets[m.bucketIdx]
}

func (m dashboardModel) team() string {
	return m.teams[m.teamIdx]
}

func (m dashboardModel) load() tea.Cmd {
	app, pi, team, bucket := m.app, m.pi, m.team(), m.bucket()
	return func() tea.Msg {
		sum, err := app.Capacity.Summary(context.Background(), pi, team, bucket)
		if err != nil {
			return summaryErrMsg{err: err}
		}
		return summaryLoadedMsg{summary: sum}
	}
}

func (m dashboardModel) Init() tea.Cmd {
	return m.load()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		m.summary = msg.summary
		m.err = nil
		return m, nil
	case summaryErrMsg:
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Bucket):
			m.bucketIdx = (m.bucketIdx + 1) % len(capacity.Buckets)
			return m, m.load()
		case key.Matches(msg, m.keys.Team):
			m.teamIdx = (m.teamIdx + 1) % len(m.teams)
			return m, m.load()
		case key.Matches(msg, m.keys.Reload):
			return m, m.load()
		}
	}
	return m, nil
}

func (m dashboardModel) View() string {
	header := formatter.Header("PI " + m.pi)

	var help []string
	for _, b := range []key.Binding{m.keys.Bucket, m.keys.Team, m.keys.Reload, m.keys.Quit} {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	footer := formatter.Dim(strings.Join(help, " · "))

	var body string
	switch {
	case m.err != nil:
		body = formatter.StyleRed.Render("Error: " + m.err.Error())
	case m.summary == nil:
		body = formatter.Dim("Loading…")
	default:
		body = formatter.FormatCapacitySummary(m.summary)
	}

	team := m.team()
	if team == "" {
		team = "all teams"
	}
	status := formatter.Dim("filter: " + team)

	return header + "\n\n" + body + "\n" + status + "\n" + footer + "\n"
}
