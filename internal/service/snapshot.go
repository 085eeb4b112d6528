package service

import (
	"context"
	"fmt"

	"github.com/mvogel/piboard/internal/capacity"
	"github.com/mvogel/piboard/internal/costing"
	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/repository"
)

// snapshotLoader assembles the in-memory engine inputs from the
// repositories. Services share it so every report reads the same shape.
type snapshotLoader struct {
	developers   repository.DeveloperRepo
	calendar     repository.CalendarRepo
	availability repository.AvailabilityRepo
	aliases      *domain.AliasSet
}

func (l *snapshotLoader) aliasSet() *domain.AliasSet {
	if l.aliases != nil {
		return l.aliases
	}
	return domain.DefaultAliases()
}

func (l *snapshotLoader) capacityInput(ctx context.Context, pi string) (capacity.Input, error) {
	devs, err := l.developers.ListByPI(ctx, pi)
	if err != nil {
		return capacity.Input{}, fmt.Errorf("loading developers: %w", err)
	}
	cal, err := l.calendar.ListByPI(ctx, pi)
	if err != nil {
		return capacity.Input{}, fmt.Errorf("loading calendar: %w", err)
	}
	grid, err := l.availability.GridByPI(ctx, pi)
	if err != nil {
		return capacity.Input{}, fmt.Errorf("loading availability: %w", err)
	}

	in := capacity.Input{
		Calendar:     cal,
		Availability: grid,
		Aliases:      l.aliasSet(),
	}
	for _, d := range devs {
		in.Developers = append(in.Developers, *d)
	}
	return in, nil
}

// costingLoader extends the snapshot with the costing collections.
type costingLoader struct {
	snapshotLoader
	teams    repository.TeamRepo
	stories  repository.StoryRepo
	entries  repository.TimeEntryRepo
	topics   repository.TopicRepo
	features repository.FeatureRepo
}

func (l *costingLoader) costingInput(ctx context.Context, pi string) (costing.Input, error) {
	capIn, err := l.capacityInput(ctx, pi)
	if err != nil {
		return costing.Input{}, err
	}
	teams, err := l.teams.ListByPI(ctx, pi)
	if err != nil {
		return costing.Input{}, fmt.Errorf("loading teams: %w", err)
	}
	stories, err := l.stories.ListByPI(ctx, pi)
	if err != nil {
		return costing.Input{}, fmt.Errorf("loading stories: %w", err)
	}
	entries, err := l.entries.ListByPI(ctx, pi)
	if err != nil {
		return costing.Input{}, fmt.Errorf("loading time entries: %w", err)
	}
	topics, err := l.topics.ListByPI(ctx, pi)
	if err != nil {
		return costing.Input{}, fmt.Errorf("loading topics: %w", err)
	}
	features, err := l.features.ListByPI(ctx, pi)
	if err != nil {
		return costing.Input{}, fmt.Errorf("loading features: %w", err)
	}

	aliases := l.aliasSet()
	in := costing.Input{
		Stories:  stories,
		Entries:  entries,
		Topics:   topics,
		Features: features,
		Hours:    map[string]float64{},
		Aliases:  aliases,
	}
	for _, t := range teams {
		in.Teams = append(in.Teams, *t)
		in.Hours[aliases.Canonical(t.Name)] = capacity.TeamHours(capIn, t.Name)
	}
	return in, nil
}
