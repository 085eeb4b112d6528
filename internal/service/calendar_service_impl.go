package service

import (
	"context"
	"fmt"

	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/repository"
	"github.com/mvogel/piboard/internal/sprintcal"
)

type calendarService struct {
	calendar     repository.CalendarRepo
	availability repository.AvailabilityRepo
}

func NewCalendarService(calendar repository.CalendarRepo, availability repository.AvailabilityRepo) CalendarService {
	return &calendarService{calendar: calendar, availability: availability}
}

func (s *calendarService) Seed(ctx context.Context, pi string, windows []sprintcal.Window) (int, error) {
	existing, err := s.calendar.CountByPI(ctx, pi)
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}
	if windows == nil {
		windows = sprintcal.DefaultWindows(pi)
	}
	if len(windows) == 0 {
		return 0, fmt.Errorf("no sprint windows known for PI %s", pi)
	}
	days := sprintcal.GenerateCalendar(pi, windows)
	for i := range days {
		if err := s.calendar.UpsertDay(ctx, &days[i]); err != nil {
			return 0, err
		}
	}
	return len(days), nil
}

func (s *calendarService) List(ctx context.Context, pi string) ([]domain.CalendarDay, error) {
	return s.calendar.ListByPI(ctx, pi)
}

func (s *calendarService) SetAvailability(ctx context.Context, pi, date, dev, value string) error {
	switch value {
	case "0", "0.5", "1", "":
	default:
		return fmt.Errorf("availability value %q: want 0, 0.5 or 1", value)
	}
	return s.availability.Set(ctx, &domain.AvailabilityDay{PI: pi, Date: date, Dev: dev, Value: value})
}
