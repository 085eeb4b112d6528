package web

import (
	"github.com/mvogel/piboard/internal/capacity"
	"github.com/mvogel/piboard/internal/costing"
	"github.com/mvogel/piboard/internal/metrics"
)

type teamDTO struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	StoryPointValue float64 `json:"storyPointValue"`
	Budget          float64 `json:"budget"`
	HourlyRate      float64 `json:"hourlyRate"`
}

type developerDTO struct {
	Key           string            `json:"key"`
	Name          string            `json:"name"`
	Team          string            `json:"team"`
	Stack         string            `json:"stack,omitempty"`
	SpecialCase   bool              `json:"specialCase,omitempty"`
	DailyHours    *float64          `json:"dailyHours"`
	WorkRatio     *float64          `json:"workRatio"`
	Load          *float64          `json:"load"`
	DevelopRatio  *float64          `json:"developRatio"`
	MaintainRatio *float64          `json:"maintainRatio"`
	ManageRatio   *float64          `json:"manageRatio"`
	Velocity      *float64          `json:"velocity"`
	InternalCost  *float64          `json:"internalCost"`
	SprintTeams   map[string]string `json:"sprintTeams,omitempty"`
}

type calendarDayDTO struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Week    int    `json:"week"`
	Sprint  string `json:"sprint"`
}

type capacityRowDTO struct {
	Key         string             `json:"key"`
	Name        string             `json:"name"`
	Team        string             `json:"team"`
	SpecialCase bool               `json:"specialCase,omitempty"`
	PerSprint   map[string]float64 `json:"perSprint"`
	Total       float64            `json:"total"`
	TotalNoIP   float64            `json:"totalWithoutIP"`
}

type capacitySummary struct {
	Bucket       string             `json:"bucket"`
	Sprints      []string           `json:"sprints"`
	Rows         []capacityRowDTO   `json:"rows"`
	SprintTotals map[string]float64 `json:"sprintTotals"`
	Total        float64            `json:"total"`
	TotalNoIP    float64            `json:"totalWithoutIP"`
}

func capacitySummaryDTO(sum *capacity.Summary) capacitySummary {
	out := capacitySummary{
		Bucket:       string(sum.Bucket),
		Sprints:      sum.Sprints,
		SprintTotals: sum.SprintTotals,
		Total:        sum.Total,
		TotalNoIP:    sum.TotalNoIP,
	}
	for _, r := range sum.Rows {
		out.Rows = append(out.Rows, capacityRowDTO{
			Key:         r.Dev.Key,
			Name:        r.Dev.Name,
			Team:        r.Dev.Team,
			SpecialCase: r.Dev.SpecialCase,
			PerSprint:   r.PerSprint,
			Total:       r.Total,
			TotalNoIP:   r.TotalNoIP,
		})
	}
	return out
}

type teamRateDTO struct {
	PlannedSP      float64 `json:"plannedSP"`
	PlannedCost    float64 `json:"plannedCost"`
	AvailableHours float64 `json:"availableHours"`
	EffectiveRate  float64 `json:"effectiveRate"`
}

type storyCostDTO struct {
	Key         string  `json:"key"`
	Name        string  `json:"name"`
	Team        string  `json:"team"`
	Sprint      string  `json:"sprint,omitempty"`
	Status      string  `json:"status"`
	EpicKey     string  `json:"epicKey,omitempty"`
	StoryPoints float64 `json:"storyPoints"`
	Hours       float64 `json:"hours"`
	Cost        float64 `json:"cost"`
}

type budgetRowDTO struct {
	Key      string  `json:"key"`
	Name     string  `json:"name"`
	Budget   float64 `json:"budget"`
	Planned  float64 `json:"planned"`
	Actual   float64 `json:"actual"`
	Variance float64 `json:"variance"`
	Progress int     `json:"progress"`
}

type topicRollupDTO struct {
	budgetRowDTO
	Features []budgetRowDTO `json:"features"`
}

type budgetReport struct {
	Topics []topicRollupDTO `json:"topics"`
	Total  budgetRowDTO     `json:"total"`
}

func budgetRow(r costing.BudgetRow) budgetRowDTO {
	return budgetRowDTO{
		Key:      r.Key,
		Name:     r.Name,
		Budget:   r.Budget,
		Planned:  r.Planned,
		Actual:   r.Actual,
		Variance: r.Variance,
		Progress: r.Progress,
	}
}

func budgetReportDTO(report *costing.BudgetReport) budgetReport {
	out := budgetReport{Total: budgetRow(report.Total)}
	for _, topic := range report.Topics {
		tr := topicRollupDTO{budgetRowDTO: budgetRow(topic.BudgetRow)}
		for _, f := range topic.Features {
			tr.Features = append(tr.Features, budgetRow(f))
		}
		out.Topics = append(out.Topics, tr)
	}
	return out
}

type derived struct {
	ReportedRatio   *float64 `json:"reportedRatio"`
	SPAcceptance    *float64 `json:"spAcceptance"`
	IssueAcceptance *float64 `json:"issueAcceptance"`
	Velocity        *float64 `json:"velocity"`
	PIProgress      float64  `json:"piProgress"`
}

func derivedDTO(d *metrics.Derived) derived {
	return derived{
		ReportedRatio:   d.ReportedRatio,
		SPAcceptance:    d.SPAcceptance,
		IssueAcceptance: d.IssueAcceptance,
		Velocity:        d.Velocity,
		PIProgress:      d.PIProgress,
	}
}

type rollup struct {
	ReportedRatio   *float64 `json:"reportedRatio"`
	SPAcceptance    *float64 `json:"spAcceptance"`
	IssueAcceptance *float64 `json:"issueAcceptance"`
	PIProgress      *float64 `json:"piProgress"`
	DefectRatio     float64  `json:"defectRatio"`
	CycleTimeBugs   float64  `json:"cycleTimeBugs"`
	CycleTimeCollab float64  `json:"cycleTimeCollabs"`
	BugsCreated     float64  `json:"bugsCreated"`
	BugsClosed      float64  `json:"bugsClosed"`
	BugsOpen        float64  `json:"bugsOpen"`
}

func rollupDTO(r *metrics.Rollup) rollup {
	return rollup{
		ReportedRatio:   r.ReportedRatio,
		SPAcceptance:    r.SPAcceptance,
		IssueAcceptance: r.IssueAcceptance,
		PIProgress:      r.PIProgress,
		DefectRatio:     r.DefectRatio,
		CycleTimeBugs:   r.CycleTimeBugs,
		CycleTimeCollab: r.CycleTimeCollab,
		BugsCreated:     r.BugsCreated,
		BugsClosed:      r.BugsClosed,
		BugsOpen:        r.BugsOpen,
	}
}
