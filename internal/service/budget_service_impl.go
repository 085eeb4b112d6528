package service

import (
	"context"

	"github.com/mvogel/piboard/internal/costing"
	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/repository"
)

type budgetService struct {
	loader costingLoader
}

func NewBudgetService(
	developers repository.DeveloperRepo,
	calendar repository.CalendarRepo,
	availability repository.AvailabilityRepo,
	teams repository.TeamRepo,
	stories repository.StoryRepo,
	entries repository.TimeEntryRepo,
	topics repository.TopicRepo,
	features repository.FeatureRepo,
	aliases *domain.AliasSet,
) BudgetService {
	return &budgetService{
		loader: costingLoader{
			snapshotLoader: snapshotLoader{
				developers:   developers,
				calendar:     calendar,
				availability: availability,
				aliases:      aliases,
			},
			teams:    teams,
			stories:  stories,
			entries:  entries,
			topics:   topics,
			features: features,
		},
	}
}

func (s *budgetService) Rates(ctx context.Context, pi string) (map[string]costing.TeamRate, error) {
	in, err := s.loader.costingInput(ctx, pi)
	if err != nil {
		return nil, err
	}
	return costing.DeriveRates(in), nil
}

func (s *budgetService) StoryCosts(ctx context.Context, pi string) ([]costing.StoryCost, error) {
	in, err := s.loader.costingInput(ctx, pi)
	if err != nil {
		return nil, err
	}
	return costing.ActualCosts(in), nil
}

func (s *budgetService) Report(ctx context.Context, pi, teamID string) (*costing.BudgetReport, error) {
	in, err := s.loader.costingInput(ctx, pi)
	if err != nil {
		return nil, err
	}
	report := costing.RollupBudget(in, teamID)
	return &report, nil
}
