package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/mvogel/piboard/internal/db"
	"github.com/mvogel/piboard/internal/importer"
	"github.com/mvogel/piboard/internal/repository"
)

type importService struct {
	uow    db.UnitOfWork
	logger *slog.Logger
}

// NewImportService builds the import service. Imports replace a PI's
// rows wholesale inside one transaction: either the new export lands
// completely or the old data stays.
func NewImportService(uow db.UnitOfWork, logger *slog.Logger) ImportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &importService{uow: uow, logger: logger}
}

func (s *importService) ImportJira(ctx context.Context, pi string, r io.Reader) (int, error) {
	stories, err := importer.ParseJiraCSV(r, pi)
	if err != nil {
		return 0, fmt.Errorf("parsing jira export: %w", err)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteStoryRepo(tx).ReplaceForPI(ctx, pi, stories)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("imported jira stories", "pi", pi, "count", len(stories))
	return len(stories), nil
}

func (s *importService) ImportEverhour(ctx context.Context, pi string, r io.Reader) (int, error) {
	entries, err := importer.ParseEverhourCSV(r, pi)
	if err != nil {
		return 0, fmt.Errorf("parsing everhour export: %w", err)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTimeEntryRepo(tx).ReplaceForPI(ctx, pi, entries)
	})
	if err != nil {
		return 0, err
	}
	s.logger.Info("imported time entries", "pi", pi, "count", len(entries))
	return len(entries), nil
}

func (s *importService) ImportDevelopers(ctx context.Context, pi string, r io.Reader, format string) (int, error) {
	var parsed int
	err := func() error {
		switch format {
		case "json":
			ds, err := importer.ParseDevelopersJSON(r, pi)
			if err != nil {
				return fmt.Errorf("parsing developers json: %w", err)
			}
			parsed = len(ds)
			return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return repository.NewSQLiteDeveloperRepo(tx).ReplaceForPI(ctx, pi, ds)
			})
		case "csv":
			ds, err := importer.ParseDevelopersCSV(r, pi)
			if err != nil {
				return fmt.Errorf("parsing developers csv: %w", err)
			}
			parsed = len(ds)
			return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
				return repository.NewSQLiteDeveloperRepo(tx).ReplaceForPI(ctx, pi, ds)
			})
		default:
			return fmt.Errorf("unknown developers format %q (want json or csv)", format)
		}
	}()
	if err != nil {
		return 0, err
	}
	s.logger.Info("imported developers", "pi", pi, "count", parsed)
	return parsed, nil
}
