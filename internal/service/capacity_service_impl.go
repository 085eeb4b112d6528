package service

import (
	"context"

	"github.com/mvogel/piboard/internal/capacity"
	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/repository"
)

type capacityService struct {
	loader snapshotLoader
	teams  repository.TeamRepo
}

func NewCapacityService(
	developers repository.DeveloperRepo,
	calendar repository.CalendarRepo,
	availability repository.AvailabilityRepo,
	teams repository.TeamRepo,
	aliases *domain.AliasSet,
) CapacityService {
	return &capacityService{
		loader: snapshotLoader{
			developers:   developers,
			calendar:     calendar,
			availability: availability,
			aliases:      aliases,
		},
		teams: teams,
	}
}

func (s *capacityService) Summary(ctx context.Context, pi, team string, bucket capacity.Bucket) (*capacity.Summary, error) {
	in, err := s.loader.capacityInput(ctx, pi)
	if err != nil {
		return nil, err
	}
	sum := capacity.Aggregate(in, team, bucket)
	return &sum, nil
}

func (s *capacityService) TeamHours(ctx context.Context, pi string) (map[string]float64, error) {
	in, err := s.loader.capacityInput(ctx, pi)
	if err != nil {
		return nil, err
	}
	teams, err := s.teams.ListByPI(ctx, pi)
	if err != nil {
		return nil, err
	}
	aliases := s.loader.aliasSet()
	hours := make(map[string]float64, len(teams))
	for _, t := range teams {
		hours[aliases.Canonical(t.Name)] = capacity.TeamHours(in, t.Name)
	}
	return hours, nil
}
