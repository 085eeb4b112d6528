package formatter

import (
	"fmt"
	"strings"

	"github.com/mvogel/piboard/internal/domain"
	"github.com/mvogel/piboard/internal/metrics"
)

// FormatMetricSheet renders a team's raw sheet: a metric per row, a
// plan and actual column per sprint. Absent cells stay blank.
func FormatMetricSheet(sheet *domain.MetricSheet, sprints int) string {
	headers := []string{"Metric"}
	var rightCols []int
	for s := 1; s <= sprints; s++ {
		headers = append(headers, fmt.Sprintf("S%d plan", s), fmt.Sprintf("S%d act", s))
		rightCols = append(rightCols, len(headers)-2, len(headers)-1)
	}

	rows := make([][]string, 0, len(domain.SheetMetrics))
	for _, metric := range domain.SheetMetrics {
		row := []string{metric}
		for s := 1; s <= sprints; s++ {
			row = append(row, sheetCell(sheet, s, metric, domain.KindPlan))
			row = append(row, sheetCell(sheet, s, metric, domain.KindActual))
		}
		rows = append(rows, row)
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("Metrics · %s", sheet.Team)))
	b.WriteString("\n")
	b.WriteString(RenderTable(headers, rows, rightCols...))
	return b.String()
}

func sheetCell(sheet *domain.MetricSheet, sprint int, metric string, kind domain.MetricKind) string {
	v, ok := sheet.Get(sprint, metric, kind)
	if !ok {
		return ""
	}
	return Num(v)
}

// FormatDerived renders one team's computed sprint ratios.
func FormatDerived(team string, sprint int, d *metrics.Derived) string {
	rows := [][]string{
		{"Reported effort", Pct(d.ReportedRatio)},
		{"SP acceptance", Pct(d.SPAcceptance)},
		{"Issue acceptance", Pct(d.IssueAcceptance)},
		{"Velocity", velocityCell(d.Velocity)},
		{"PI progress", fmt.Sprintf("%.0f%%", d.PIProgress)},
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s · Sprint %d", team, sprint)))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"Ratio", "Value"}, rows, 1))
	return b.String()
}

func velocityCell(v *float64) string {
	if v == nil {
		return StyleDim.Render("–")
	}
	return fmt.Sprintf("%.2f SP/md", *v)
}

// FormatRollup renders the cross-team sprint rollup.
func FormatRollup(sprint int, r *metrics.Rollup) string {
	rows := [][]string{
		{"Reported effort", Pct(r.ReportedRatio)},
		{"SP acceptance", Pct(r.SPAcceptance)},
		{"Issue acceptance", Pct(r.IssueAcceptance)},
		{"PI progress", Pct(r.PIProgress)},
		{"Defect ratio", fmt.Sprintf("%.2f", r.DefectRatio)},
		{"Cycle time bugs", fmt.Sprintf("%.2f", r.CycleTimeBugs)},
		{"Cycle time collabs", fmt.Sprintf("%.2f", r.CycleTimeCollab)},
		{"Bugs created", Num(r.BugsCreated)},
		{"Bugs closed", Num(r.BugsClosed)},
		{"Bugs open", Num(r.BugsOpen)},
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("All Teams · Sprint %d", sprint)))
	b.WriteString("\n")
	b.WriteString(RenderTable([]string{"Metric", "Value"}, rows, 1))
	return b.String()
}
