package service

import (
	"context"
	"io"

	"github.com/mvogel/piboard/internal/capacity"
	"github.com/mvogel/piboard/internal/costing"
	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/metrics"
	"github.com/mvogel/piboard/internal/sprintcal"
)

type CapacityService interface {
	// Summary builds one bucket's capacity table, optionally filtered
	// by team name.
	Summary(ctx context.Context, pi, team string, bucket capacity.Bucket) (*capacity.Summary, error)
	// TeamHours maps canonical team names to their available develop
	// hours outside the IP sprint.
	TeamHours(ctx context.Context, pi string) (map[string]float64, error)
}

type BudgetService interface {
	Rates(ctx context.Context, pi string) (map[string]costing.TeamRate, error)
	StoryCosts(ctx context.Context, pi string) ([]costing.StoryCost, error)
	Report(ctx context.Context, pi, teamID string) (*costing.BudgetReport, error)
}

type MetricsService interface {
	Sheet(ctx context.Context, pi, team string) (*domain.MetricSheet, error)
	SetValue(ctx context.Context, pi, team string, key domain.MetricKey, value float64) error
	Derived(ctx context.Context, pi, team string, sprint int) (*metrics.Derived, error)
	Rollup(ctx context.Context, pi string, sprint int) (*metrics.Rollup, error)
}

type CalendarService interface {
	// Seed generates the PI's default calendar. It is a no-op when the
	// PI already has calendar rows; the returned count is the number of
	// days written.
	Seed(ctx context.Context, pi string, windows []sprintcal.Window) (int, error)
	List(ctx context.Context, pi string) ([]domain.CalendarDay, error)
	SetAvailability(ctx context.Context, pi, date, dev, value string) error
}

type SeedService interface {
	// EnsureDefaults seeds the default teams and, for PI 26.1, the
	// default developer roster. Idempotent; never overwrites rows the
	// user has touched.
	EnsureDefaults(ctx context.Context, pi string) error
}

type ImportService interface {
	ImportJira(ctx context.Context, pi string, r io.Reader) (int, error)
	ImportEverhour(ctx context.Context, pi string, r io.Reader) (int, error)
	ImportDevelopers(ctx context.Context, pi string, r io.Reader, format string) (int, error)
}
