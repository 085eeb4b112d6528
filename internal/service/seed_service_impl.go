package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/repository"
)

// defaultTeams are created for every PI a user opens.
var defaultTeams = []struct {
	ID   string
	Name string
}{
	{"neon", "Neon"},
	{"h1", "Hydrogen 1"},
	{"zn2c", "Zn2C"},
	{"tungsten", "Tungsten"},
}

// defaultRoster is the 26.1 developer roster, keyed by team.
var defaultRoster = []struct {
	Team string
	Keys []string
}{
	{"Tungsten", []string{"JRE", "DKA", "LRU", "RGA", "LOR", "OMO"}},
	{"Neon", []string{"BRO", "MPL", "LBU", "RTH", "IWI", "STH"}},
	{"H1", []string{"TSC", "GRO", "MBR", "PSC", "SFR", "DMA", "VNA", "RBU"}},
	{"Zn2C", []string{"JEI", "YHU", "PNI", "VTS", "PSA", "MMA", "LMA", "RSA", "NAC"}},
	{"UI", []string{"KFI", "SOL"}},
	{"TMGT", []string{"JDE", "VSC"}},
	{"Admin", []string{"CIR", "MVA", "NRA", "BAS", "DGR", "RBL", "LSO"}},
}

type seedService struct {
	teams      repository.TeamRepo
	developers repository.DeveloperRepo
	metadata   repository.MetadataRepo
	logger     *slog.Logger
}

func NewSeedService(teams repository.TeamRepo, developers repository.DeveloperRepo, metadata repository.MetadataRepo, logger *slog.Logger) SeedService {
	if logger == nil {
		logger = slog.Default()
	}
	return &seedService{teams: teams, developers: developers, metadata: metadata, logger: logger}
}

func (s *seedService) EnsureDefaults(ctx context.Context, pi string) error {
	if err := s.ensureTeams(ctx, pi); err != nil {
		return err
	}
	if pi == "26.1" {
		if err := s.ensureRoster(ctx, pi); err != nil {
			return err
		}
	}
	return nil
}

// ensureTeams creates the default teams that do not exist yet. Existing
// rows keep whatever the user configured.
func (s *seedService) ensureTeams(ctx context.Context, pi string) error {
	for _, dt := range defaultTeams {
		_, err := s.teams.Get(ctx, pi, dt.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("checking team %s: %w", dt.ID, err)
		}
		if err := s.teams.Upsert(ctx, &domain.Team{ID: dt.ID, PI: pi, Name: dt.Name}); err != nil {
			return err
		}
		s.logger.Info("seeded default team", "pi", pi, "team", dt.ID)
	}
	return nil
}

// ensureRoster seeds the default developers once per PI, tracked in the
// metadata table so a deliberately emptied roster stays empty.
func (s *seedService) ensureRoster(ctx context.Context, pi string) error {
	marker := pi + "_roster_seeded"
	if _, err := s.metadata.Get(ctx, marker); err == nil {
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	var added int
	for _, group := range defaultRoster {
		for _, key := range group.Keys {
			if _, err := s.developers.Get(ctx, pi, key); err == nil {
				continue
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			dev := &domain.Developer{
				PI:            pi,
				Key:           key,
				Name:          key,
				Team:          group.Team,
				Stack:         "Fullstack",
				DailyHours:    domain.Float64Ptr(8),
				WorkRatio:     domain.Float64Ptr(100),
				InternalCost:  domain.Float64Ptr(100),
				Load:          domain.Float64Ptr(90),
				ManageRatio:   domain.Float64Ptr(0),
				DevelopRatio:  domain.Float64Ptr(80),
				MaintainRatio: domain.Float64Ptr(20),
				Velocity:      domain.Float64Ptr(1),
			}
			if err := s.developers.Upsert(ctx, dev); err != nil {
				return err
			}
			added++
		}
	}
	if err := s.metadata.Set(ctx, marker, "true"); err != nil {
		return err
	}
	s.logger.Info("seeded default roster", "pi", pi, "developers", added)
	return nil
}
