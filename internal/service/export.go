package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/mvogel/piboard/internal/capacity"
	"github.com/mvogel/piboard/internal/domain"
)

// WriteCapacityCSV writes one capacity summary as CSV: a developer per
// row, a sprint per column, with and without-IP totals at the end.
func WriteCapacityCSV(w io.Writer, sum *capacity.Summary) error {
	cw := csv.NewWriter(w)

	header := append([]string{"Developer", "Team"}, sum.Sprints...)
	header = append(header, "Total", "Total w/o IP")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	fmtNum := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	for _, row := range sum.Rows {
		record := []string{row.Dev.Name, row.Dev.Team}
		for _, sprint := range sum.Sprints {
			record = append(record, fmtNum(row.PerSprint[sprint]))
		}
		record = append(record, fmtNum(row.Total), fmtNum(row.TotalNoIP))
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	totals := []string{"Total", ""}
	for _, sprint := range sum.Sprints {
		totals = append(totals, fmtNum(sum.SprintTotals[sprint]))
	}
	totals = append(totals, fmtNum(sum.Total), fmtNum(sum.TotalNoIP))
	if err := cw.Write(totals); err != nil {
		return fmt.Errorf("writing csv totals: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// WriteMetricSheetCSV writes one team's metric sheet: a metric per row,
// plan and actual columns per sprint. Unset cells stay empty.
func WriteMetricSheetCSV(w io.Writer, sheet *domain.MetricSheet, sprints int) error {
	cw := csv.NewWriter(w)

	header := []string{"Metric"}
	for s := 1; s <= sprints; s++ {
		label := "S" + strconv.Itoa(s)
		header = append(header, label+" plan", label+" actual")
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	cell := func(sprint int, metric string, kind domain.MetricKind) string {
		v, ok := sheet.Get(sprint, metric, kind)
		if !ok {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	// Cells are stored under 1-based sprint numbers, same as metrics set.
	for _, metric := range domain.SheetMetrics {
		record := []string{metric}
		for s := 1; s <= sprints; s++ {
			record = append(record, cell(s, metric, domain.KindPlan), cell(s, metric, domain.KindActual))
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
