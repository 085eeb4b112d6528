package repository

import (
	"context"
	"errors"

	"github.com/mvogel/piboard/internal/domain"
)

// ErrNotFound is the sentinel returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type TeamRepo interface {
	Upsert(ctx context.Context, t *domain.Team) error
	Get(ctx context.Context, pi, id string) (*domain.Team, error)
	ListByPI(ctx context.Context, pi string) ([]*domain.Team, error)
	Delete(ctx context.Context, pi, id string) error
}

type DeveloperRepo interface {
	Upsert(ctx context.Context, d *domain.Developer) error
	Get(ctx context.Context, pi, key string) (*domain.Developer, error)
	ListByPI(ctx context.Context, pi string) ([]*domain.Developer, error)
	Delete(ctx context.Context, pi, key string) error
	// ReplaceForPI swaps the PI's whole roster, used by imports under a
	// unit of work.
	ReplaceForPI(ctx context.Context, pi string, devs []*domain.Developer) error
}

type CalendarRepo interface {
	UpsertDay(ctx context.Context, d *domain.CalendarDay) error
	ListByPI(ctx context.Context, pi string) ([]domain.CalendarDay, error)
	CountByPI(ctx context.Context, pi string) (int, error)
}

type AvailabilityRepo interface {
	Set(ctx context.Context, d *domain.AvailabilityDay) error
	// GridByPI loads the PI's sparse availability grid.
	GridByPI(ctx context.Context, pi string) (domain.AvailabilitySet, error)
}

type StoryRepo interface {
	Upsert(ctx context.Context, s *domain.Story) error
	ListByPI(ctx context.Context, pi string) ([]domain.Story, error)
	ReplaceForPI(ctx context.Context, pi string, stories []domain.Story) error
}

type TimeEntryRepo interface {
	ListByPI(ctx context.Context, pi string) ([]domain.TimeEntry, error)
	ReplaceForPI(ctx context.Context, pi string, entries []domain.TimeEntry) error
}

type TopicRepo interface {
	Upsert(ctx context.Context, t *domain.Topic) error
	GetByKey(ctx context.Context, pi, key string) (*domain.Topic, error)
	ListByPI(ctx context.Context, pi string) ([]domain.Topic, error)
	Delete(ctx context.Context, id string) error
}

type FeatureRepo interface {
	Upsert(ctx context.Context, f *domain.Feature) error
	Get(ctx context.Context, id string) (*domain.Feature, error)
	ListByPI(ctx context.Context, pi string) ([]domain.Feature, error)
	Delete(ctx context.Context, id string) error
}

type MetricRepo interface {
	Set(ctx context.Context, pi, team string, key domain.MetricKey, value float64) error
	SheetFor(ctx context.Context, pi, team string) (*domain.MetricSheet, error)
	SheetsByPI(ctx context.Context, pi string) ([]*domain.MetricSheet, error)
}

type ImprovementRepo interface {
	Upsert(ctx context.Context, imp *domain.Improvement) error
	Get(ctx context.Context, id string) (*domain.Improvement, error)
	ListByPI(ctx context.Context, pi string) ([]*domain.Improvement, error)
	Delete(ctx context.Context, id string) error
}

type MetadataRepo interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
