// Package metrics derives sprint ratios from team metric sheets and
// rolls them up across teams. Derived values are *float64: nil means
// the ratio cannot be computed because an input was never entered.
// Following the sheet's long-standing convention an entered zero on the
// plan or actual side of an acceptance ratio also leaves it blank.
package metrics

import "github.com/mvogel/piboard/internal/domain"

// effort metrics whose plan/actual sums feed the reported ratio.
var effortMetrics = []string{
	domain.MetricDev, domain.MetricMaintain, domain.MetricManage, domain.MetricAbsence,
}

// Derived are one team's computed ratios for one sprint.
type Derived struct {
	ReportedRatio   *float64 // reported effort as % of planned effort
	SPAcceptance    *float64 // accepted SP as % of planned SP
	IssueAcceptance *float64
	Velocity        *float64 // SP per man-day of reported dev hours
	PIProgress      float64  // cumulative accepted SP as % of PI plan
}

// sumKind adds up the effort metrics of one kind, treating absent cells
// as zero.
func sumKind(sheet *domain.MetricSheet, sprint int, kind domain.MetricKind) float64 {
	var sum float64
	for _, m := range effortMetrics {
		if v, ok := sheet.Get(sprint, m, kind); ok {
			sum += v
		}
	}
	return sum
}

// ratio computes actual/plan*100, blank unless both cells are present
// and non-zero.
func ratio(sheet *domain.MetricSheet, sprint int, metric string) *float64 {
	plan, okP := sheet.Get(sprint, metric, domain.KindPlan)
	actual, okA := sheet.Get(sprint, metric, domain.KindActual)
	if !okP || !okA || plan == 0 || actual == 0 {
		return nil
	}
	v := actual / plan * 100
	return &v
}

// Derive computes one sprint's ratios. plannedSP is the team's total
// planned story SP for the whole PI; when it is zero PIProgress is 0,
// not blank.
func Derive(sheet *domain.MetricSheet, sprint int, plannedSP float64) Derived {
	d := Derived{
		SPAcceptance:    ratio(sheet, sprint, domain.MetricSP),
		IssueAcceptance: ratio(sheet, sprint, domain.MetricIssues),
	}

	if plan := sumKind(sheet, sprint, domain.KindPlan); plan > 0 {
		v := sumKind(sheet, sprint, domain.KindActual) / plan * 100
		d.ReportedRatio = &v
	}

	sp, okSP := sheet.Get(sprint, domain.MetricSP, domain.KindActual)
	devHours, okDev := sheet.Get(sprint, domain.MetricDev, domain.KindActual)
	if okSP && okDev && sp != 0 && devHours != 0 {
		v := sp / (devHours / domain.ManDayHours)
		d.Velocity = &v
	}

	if plannedSP > 0 {
		var done float64
		for i := 0; i <= sprint; i++ {
			if v, ok := sheet.Get(i, domain.MetricSP, domain.KindActual); ok {
				done += v
			}
		}
		d.PIProgress = done / plannedSP * 100
	}
	return d
}

// historicalTeamCount is the fixed divisor the defect and cycle-time
// rollups have always used, regardless of how many teams report.
const historicalTeamCount = 4

// TeamSheet pairs a team's sheet with its PI story point plan.
type TeamSheet struct {
	Sheet     *domain.MetricSheet
	PlannedSP float64
}

// Rollup is the cross-team view of one sprint.
type Rollup struct {
	ReportedRatio   *float64 // averages over teams with a defined value
	SPAcceptance    *float64
	IssueAcceptance *float64
	PIProgress      *float64
	DefectRatio     float64 // sums divided by historicalTeamCount
	CycleTimeBugs   float64
	CycleTimeCollab float64
	BugsCreated     float64 // plain sums
	BugsClosed      float64
	BugsOpen        float64
}

func average(vals []float64) *float64 {
	if len(vals) == 0 {
		return nil
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	avg := sum / float64(len(vals))
	return &avg
}

// RollupTeams aggregates one sprint across all team sheets. Averages
// skip teams whose ratio is blank; a team with no planned SP is skipped
// in the PI progress average as well.
func RollupTeams(teams []TeamSheet, sprint int) Rollup {
	var r Rollup
	var reported, spAcc, issueAcc, progress []float64
	for _, ts := range teams {
		d := Derive(ts.Sheet, sprint, ts.PlannedSP)
		if d.ReportedRatio != nil {
			reported = append(reported, *d.ReportedRatio)
		}
		if d.SPAcceptance != nil {
			spAcc = append(spAcc, *d.SPAcceptance)
		}
		if d.IssueAcceptance != nil {
			issueAcc = append(issueAcc, *d.IssueAcceptance)
		}
		if ts.PlannedSP > 0 {
			progress = append(progress, d.PIProgress)
		}

		if v, ok := ts.Sheet.Get(sprint, domain.MetricDefectRatio, domain.KindActual); ok {
			r.DefectRatio += v
		}
		if v, ok := ts.Sheet.Get(sprint, domain.MetricCycleTimeBugs, domain.KindActual); ok {
			r.CycleTimeBugs += v
		}
		if v, ok := ts.Sheet.Get(sprint, domain.MetricCycleTimeCollabs, domain.KindActual); ok {
			r.CycleTimeCollab += v
		}
		if v, ok := ts.Sheet.Get(sprint, domain.MetricBugsCreated, domain.KindActual); ok {
			r.BugsCreated += v
		}
		if v, ok := ts.Sheet.Get(sprint, domain.MetricBugsClosed, domain.KindActual); ok {
			r.BugsClosed += v
		}
		if v, ok := ts.Sheet.Get(sprint, domain.MetricBugsOpen, domain.KindActual); ok {
			r.BugsOpen += v
		}
	}
	r.ReportedRatio = average(reported)
	r.SPAcceptance = average(spAcc)
	r.IssueAcceptance = average(issueAcc)
	r.PIProgress = average(progress)
	r.DefectRatio /= historicalTeamCount
	r.CycleTimeBugs /= historicalTeamCount
	r.CycleTimeCollab /= historicalTeamCount
	return r
}
