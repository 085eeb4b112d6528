// Package web serves the read-side of the board as a JSON API. The
// write path stays on the CLI; the API exists for dashboards and
// spreadsheet pulls.
package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/mvogel/piboard/internal/capacity"
	"github.com/mvogel/piboard/internal/repository"
	"github.com/mvogel/piboard/internal/service"
	"github.com/mvogel/piboard/internal/sprintcal"
)

// Server holds the services the API reads from.
type Server struct {
	Capacity   service.CapacityService
	Budget     service.BudgetService
	Metrics    service.MetricsService
	Calendar   service.CalendarService
	Teams      repository.TeamRepo
	Developers repository.DeveloperRepo
	Logger     *slog.Logger
}

// NewEcho builds the echo instance with all routes registered.
func (s *Server) NewEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	api := e.Group("/api/pis/:pi")
	api.GET("/capacity", s.getCapacity)
	api.GET("/capacity/hours", s.getTeamHours)
	api.GET("/budget/report", s.getBudgetReport)
	api.GET("/budget/rates", s.getRates)
	api.GET("/budget/stories", s.getStoryCosts)
	api.GET("/metrics/rollup", s.getMetricsRollup)
	api.GET("/metrics/teams/:team", s.getMetricsDerived)
	api.GET("/calendar", s.getCalendar)
	api.GET("/teams", s.getTeams)
	api.GET("/developers", s.getDevelopers)

	return e
}

// Run starts the server on addr and blocks until it stops.
func (s *Server) Run(addr string) error {
	if s.Logger != nil {
		s.Logger.Info("serving api", "addr", addr)
	}
	return s.NewEcho().Start(addr)
}

func jsonError(c echo.Context, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// sprintParam reads the sprint query, defaulting to 1 when absent. A
// value that is present but not a positive number is a client error.
func sprintParam(c echo.Context) (int, error) {
	raw := c.QueryParam("sprint")
	if raw == "" {
		return 1, nil
	}
	sprint, err := strconv.Atoi(raw)
	if err != nil || sprint < 1 {
		return 0, fmt.Errorf("invalid sprint %q", raw)
	}
	return sprint, nil
}

func (s *Server) getCapacity(c echo.Context) error {
	bucket := capacity.Bucket(c.QueryParam("bucket"))
	if bucket == "" {
		bucket = capacity.BucketDevelop
	}
	found := false
	for _, b := range capacity.Buckets {
		if b == bucket {
			found = true
		}
	}
	if !found {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "unknown bucket " + string(bucket)})
	}

	sum, err := s.Capacity.Summary(c.Request().Context(), c.Param("pi"), c.QueryParam("team"), bucket)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, capacitySummaryDTO(sum))
}

func (s *Server) getTeamHours(c echo.Context) error {
	hours, err := s.Capacity.TeamHours(c.Request().Context(), c.Param("pi"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, hours)
}

func (s *Server) getBudgetReport(c echo.Context) error {
	report, err := s.Budget.Report(c.Request().Context(), c.Param("pi"), c.QueryParam("team"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, budgetReportDTO(report))
}

func (s *Server) getRates(c echo.Context) error {
	rates, err := s.Budget.Rates(c.Request().Context(), c.Param("pi"))
	if err != nil {
		return jsonError(c, err)
	}
	out := make(map[string]teamRateDTO, len(rates))
	for name, r := range rates {
		out[name] = teamRateDTO{
			PlannedSP:      r.PlannedSP,
			PlannedCost:    r.PlannedCost,
			AvailableHours: r.AvailableHours,
			EffectiveRate:  r.EffectiveRate,
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getStoryCosts(c echo.Context) error {
	costs, err := s.Budget.StoryCosts(c.Request().Context(), c.Param("pi"))
	if err != nil {
		return jsonError(c, err)
	}
	out := make([]storyCostDTO, 0, len(costs))
	for _, sc := range costs {
		out = append(out, storyCostDTO{
			Key:         sc.Story.Key,
			Name:        sc.Story.Name,
			Team:        sc.Story.Team,
			Sprint:      sc.Story.Sprint,
			Status:      sc.Story.Status,
			EpicKey:     sc.Story.EpicKey,
			StoryPoints: sc.Story.StoryPoints,
			Hours:       sc.Hours,
			Cost:        sc.Cost,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getMetricsRollup(c echo.Context) error {
	sprint, err := sprintParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	r, err := s.Metrics.Rollup(c.Request().Context(), c.Param("pi"), sprint)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, rollupDTO(r))
}

func (s *Server) getMetricsDerived(c echo.Context) error {
	sprint, err := sprintParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	d, err := s.Metrics.Derived(c.Request().Context(), c.Param("pi"), c.Param("team"), sprint)
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, derivedDTO(d))
}

func (s *Server) getCalendar(c echo.Context) error {
	days, err := s.Calendar.List(c.Request().Context(), c.Param("pi"))
	if err != nil {
		return jsonError(c, err)
	}
	out := make([]calendarDayDTO, 0, len(days))
	for _, d := range days {
		out = append(out, calendarDayDTO{
			Date:    d.Date,
			Weekday: sprintcal.WeekdayShort(d.Date),
			Week:    sprintcal.ISOWeek(d.Date),
			Sprint:  d.Sprint,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getTeams(c echo.Context) error {
	teams, err := s.Teams.ListByPI(c.Request().Context(), c.Param("pi"))
	if err != nil {
		return jsonError(c, err)
	}
	out := make([]teamDTO, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamDTO{
			ID:              t.ID,
			Name:            t.Name,
			StoryPointValue: t.StoryPointValue,
			Budget:          t.Budget,
			HourlyRate:      t.HourlyRate,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (s *Server) getDevelopers(c echo.Context) error {
	devs, err := s.Developers.ListByPI(c.Request().Context(), c.Param("pi"))
	if err != nil {
		return jsonError(c, err)
	}
	out := make([]developerDTO, 0, len(devs))
	for _, d := range devs {
		out = append(out, developerDTO{
			Key:           d.Key,
			Name:          d.Name,
			Team:          d.Team,
			Stack:         d.Stack,
			SpecialCase:   d.SpecialCase,
			DailyHours:    d.DailyHours,
			WorkRatio:     d.WorkRatio,
			Load:          d.Load,
			DevelopRatio:  d.DevelopRatio,
			MaintainRatio: d.MaintainRatio,
			ManageRatio:   d.ManageRatio,
			Velocity:      d.Velocity,
			InternalCost:  d.InternalCost,
			SprintTeams:   d.SprintTeams,
		})
	}
	return c.JSON(http.StatusOK, out)
}
