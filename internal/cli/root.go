package cli

import (
	"github.com/spf13/cobra"

	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/repository"
	"github.com/mvogel/piboard/internal/service"
	"github.com/mvogel/piboard/internal/sprintcal"
)

// App holds references to the services and repositories the CLI
// commands run against.
type App struct {
	Capacity service.CapacityService
	Budget   service.BudgetService
	Metrics  service.MetricsService
	Calendar service.CalendarService
	Seed     service.SeedService
	Import   service.ImportService

	Teams        repository.TeamRepo
	Developers   repository.DeveloperRepo
	Topics       repository.TopicRepo
	Features     repository.FeatureRepo
	Improvements repository.ImprovementRepo

	Aliases   *domain.AliasSet
	DefaultPI string
	// WindowsFor yields the sprint windows a PI calendar is generated
	// from.
	WindowsFor func(pi string) []sprintcal.Window
	// IsInteractive gates the huh forms: flags only when false.
	IsInteractive func() bool

	// ServeFn starts the HTTP API; wired in main to keep the web
	// package out of the command tree.
	ServeFn func(app *App, addr string) error
}

func (app *App) interactive() bool {
	return app.IsInteractive != nil && app.IsInteractive()
}

// NewRootCmd creates the top-level "piboard" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "piboard",
		Short: "PI capacity, budget and metrics board",
	}

	defaultPI := app.DefaultPI
	if defaultPI == "" {
		defaultPI = "26.1"
	}
	root.PersistentFlags().String("pi", defaultPI, "Program increment, e.g. 26.1")

	root.AddCommand(
		newTeamCmd(app),
		newDeveloperCmd(app),
		newTopicCmd(app),
		newFeatureCmd(app),
		newImprovementCmd(app),
		newCalendarCmd(app),
		newCapacityCmd(app),
		newBudgetCmd(app),
		newMetricsCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newDashboardCmd(app),
		newServeCmd(app),
	)

	return root
}

// piFlag reads the persistent --pi flag from any command in the tree.
func piFlag(cmd *cobra.Command) string {
	pi, _ := cmd.Flags().GetString("pi")
	return pi
}
