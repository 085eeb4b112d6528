package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/mvogel/piboard/internal/cli"
	"github.com/mvogel/piboard/internal/config"
	"github.com/mvogel/piboard/internal/db"
	"github.com/mvogel/piboard/internal/repository"
	"github.com/mvogel/piboard/internal/service"
	"github.com/mvogel/piboard/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	})))

	cfgPath := os.Getenv("PIBOARD_CONFIG")
	if cfgPath == "" {
		cfgPath = "piboard.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	dbPath := os.Getenv("PIBOARD_DB")
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	teamRepo := repository.NewSQLiteTeamRepo(database)
	developerRepo := repository.NewSQLiteDeveloperRepo(database)
	calendarRepo := repository.NewSQLiteCalendarRepo(database)
	availabilityRepo := repository.NewSQLiteAvailabilityRepo(database)
	storyRepo := repository.NewSQLiteStoryRepo(database)
	entryRepo := repository.NewSQLiteTimeEntryRepo(database)
	topicRepo := repository.NewSQLiteTopicRepo(database)
	featureRepo := repository.NewSQLiteFeatureRepo(database)
	metricRepo := repository.NewSQLiteMetricRepo(database)
	improvementRepo := repository.NewSQLiteImprovementRepo(database)
	metadataRepo := repository.NewSQLiteMetadataRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)
	aliases := cfg.AliasSet()

	app := &cli.App{
		Capacity: service.NewCapacityService(developerRepo, calendarRepo, availabilityRepo, teamRepo, aliases),
		Budget: service.NewBudgetService(developerRepo, calendarRepo, availabilityRepo,
			teamRepo, storyRepo, entryRepo, topicRepo, featureRepo, aliases),
		Metrics:  service.NewMetricsService(metricRepo, storyRepo, aliases),
		Calendar: service.NewCalendarService(calendarRepo, availabilityRepo),
		Seed:     service.NewSeedService(teamRepo, developerRepo, metadataRepo, nil),
		Import:   service.NewImportService(uow, nil),

		Teams:        teamRepo,
		Developers:   developerRepo,
		Topics:       topicRepo,
		Features:     featureRepo,
		Improvements: improvementRepo,

		Aliases:    aliases,
		DefaultPI:  cfg.DefaultPI,
		WindowsFor: cfg.WindowsFor,
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	app.ServeFn = func(app *cli.App, addr string) error {
		srv := &web.Server{
			Capacity:   app.Capacity,
			Budget:     app.Budget,
			Metrics:    app.Metrics,
			Calendar:   app.Calendar,
			Teams:      app.Teams,
			Developers: app.Developers,
			Logger:     slog.Default(),
		}
		return srv.Run(addr)
	}

	if err := app.Seed.EnsureDefaults(context.Background(), cfg.DefaultPI); err != nil {
		return fmt.Errorf("seeding defaults: %w", err)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}

func logLevel() slog.Level {
	if os.Getenv("PIBOARD_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
