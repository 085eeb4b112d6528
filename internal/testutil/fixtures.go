package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/mvogel/piboard/internal/domain"
)

// Developer options
type DeveloperOption func(*domain.Developer)

func WithTeam(team string) DeveloperOption {
	return func(d *domain.Developer) {
		d.Team = team
	}
}

func WithSprintTeam(sprint, team string) DeveloperOption {
	return func(d *domain.Developer) {
		if d.SprintTeams == nil {
			d.SprintTeams = map[string]string{}
		}
		d.SprintTeams[sprint] = team
	}
}

func WithSpecialCase() DeveloperOption {
	return func(d *domain.Developer) {
		d.SpecialCase = true
	}
}

func WithRatios(develop, maintain, manage float64) DeveloperOption {
	return func(d *domain.Developer) {
		d.DevelopRatio = domain.Float64Ptr(develop)
		d.MaintainRatio = domain.Float64Ptr(maintain)
		d.ManageRatio = domain.Float64Ptr(manage)
	}
}

// NewTestDeveloper builds a full-time developer on the 26.1 roster
// defaults: 8h days, full load, all hours on develop.
func NewTestDeveloper(key string, opts ...DeveloperOption) *domain.Developer {
	now := time.Now().UTC()
	d := &domain.Developer{
		Key:          key,
		PI:           "26.1",
		Name:         key,
		Team:         "Neon",
		DailyHours:   domain.Float64Ptr(8),
		Load:         domain.Float64Ptr(100),
		DevelopRatio: domain.Float64Ptr(100),
		Velocity:     domain.Float64Ptr(1),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewTestTeam builds a team with a 100 CHF story point value.
func NewTestTeam(id, name string) *domain.Team {
	now := time.Now().UTC()
	return &domain.Team{
		ID:              id,
		PI:              "26.1",
		Name:            name,
		StoryPointValue: 100,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Story options
type StoryOption func(*domain.Story)

func WithStatus(status string) StoryOption {
	return func(s *domain.Story) {
		s.Status = status
	}
}

func WithEpic(epicKey string) StoryOption {
	return func(s *domain.Story) {
		s.EpicKey = epicKey
	}
}

// NewTestStory builds an open story for team Neon.
func NewTestStory(key string, points float64, opts ...StoryOption) domain.Story {
	s := domain.Story{
		PI:          "26.1",
		Key:         key,
		Name:        "story " + key,
		StoryPoints: points,
		Team:        "Neon",
		Status:      "Open",
		Sprint:      "26.1-S1",
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewTestTopic builds a topic with a fresh ID.
func NewTestTopic(key, name string, budget float64) *domain.Topic {
	now := time.Now().UTC()
	return &domain.Topic{
		ID:        uuid.New().String(),
		PI:        "26.1",
		Key:       key,
		Name:      name,
		Budget:    budget,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewTestFeature builds a feature with a fresh ID.
func NewTestFeature(name, jiraKey, topicKey string, budget float64) *domain.Feature {
	now := time.Now().UTC()
	return &domain.Feature{
		ID:        uuid.New().String(),
		PI:        "26.1",
		Name:      name,
		JiraKey:   jiraKey,
		Budget:    budget,
		TopicKey:  topicKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
