package service

import (
	"context"
	"fmt"

	"github.com/mvogel/piboard/internal/costing"
	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/metrics"
	"github.com/mvogel/piboard/internal/repository"
)

type metricsService struct {
	metrics repository.MetricRepo
	stories repository.StoryRepo
	aliases *domain.AliasSet
}

func NewMetricsService(metricRepo repository.MetricRepo, stories repository.StoryRepo, aliases *domain.AliasSet) MetricsService {
	if aliases == nil {
		aliases = domain.DefaultAliases()
	}
	return &metricsService{metrics: metricRepo, stories: stories, aliases: aliases}
}

func (s *metricsService) Sheet(ctx context.Context, pi, team string) (*domain.MetricSheet, error) {
	return s.metrics.SheetFor(ctx, pi, s.aliases.Canonical(team))
}

func (s *metricsService) SetValue(ctx context.Context, pi, team string, key domain.MetricKey, value float64) error {
	return s.metrics.Set(ctx, pi, s.aliases.Canonical(team), key, value)
}

// plannedSP sums a team's story points over the PI, the denominator of
// the PI progress ratio.
func (s *metricsService) plannedSP(ctx context.Context, pi, team string) (float64, error) {
	stories, err := s.stories.ListByPI(ctx, pi)
	if err != nil {
		return 0, fmt.Errorf("loading stories: %w", err)
	}
	in := costing.Input{Stories: stories, Aliases: s.aliases}
	return costing.PlannedSP(in, team), nil
}

func (s *metricsService) Derived(ctx context.Context, pi, team string, sprint int) (*metrics.Derived, error) {
	sheet, err := s.metrics.SheetFor(ctx, pi, s.aliases.Canonical(team))
	if err != nil {
		return nil, err
	}
	planned, err := s.plannedSP(ctx, pi, team)
	if err != nil {
		return nil, err
	}
	d := metrics.Derive(sheet, sprint, planned)
	return &d, nil
}

func (s *metricsService) Rollup(ctx context.Context, pi string, sprint int) (*metrics.Rollup, error) {
	sheets, err := s.metrics.SheetsByPI(ctx, pi)
	if err != nil {
		return nil, err
	}
	teams := make([]metrics.TeamSheet, 0, len(sheets))
	for _, sheet := range sheets {
		planned, err := s.plannedSP(ctx, pi, sheet.Team)
		if err != nil {
			return nil, err
		}
		teams = append(teams, metrics.TeamSheet{Sheet: sheet, PlannedSP: planned})
	}
	r := metrics.RollupTeams(teams, sprint)
	return &r, nil
}
