package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvogel/piboard/internal/capacity"
	"github.com/mvogel/piboard/internal/costing"
	"github.com/mvogel/piboard/internal/domain"
)

func TestCHF(t *testing.T) {
	assert.Equal(t, "0", CHF(0))
	assert.Equal(t, "950", CHF(950))
	assert.Equal(t, "6'000", CHF(6000))
	assert.Equal(t, "1'234'568", CHF(1234567.6))
	assert.Equal(t, "-1'500", CHF(-1500))
}

func TestPct(t *testing.T) {
	v := 87.5
	assert.Contains(t, Pct(&v), "88%")
	assert.Contains(t, Pct(nil), "–")
}

func TestRenderTableRightAlign(t *testing.T) {
	out := RenderTable(
		[]string{"Name", "CHF"},
		[][]string{{"Neon", "120"}, {"Tungsten", "5"}},
		1,
	)
	lines := strings.Split(out, "\n")
	// right-aligned numeric column: both rows end at the same column
	assert.True(t, strings.HasSuffix(lines[2], "120"))
	assert.True(t, strings.HasSuffix(lines[3], "  5"))
}

func TestRenderProgressClamps(t *testing.T) {
	assert.Contains(t, RenderProgress(1.7, 8), "100%")
	assert.Contains(t, RenderProgress(-0.2, 8), "  0%")
}

func TestFormatCapacitySummary(t *testing.T) {
	sum := &capacity.Summary{
		Bucket:  capacity.BucketDevelop,
		Sprints: []string{"26.1-S1", "26.1-IP"},
		Rows: []capacity.DevRow{
			{
				Dev:       domain.Developer{Key: "BRO", Name: "BRO", Team: "Neon"},
				PerSprint: map[string]float64{"26.1-S1": 57.6, "26.1-IP": 28.8},
				Total:     86.4,
				TotalNoIP: 57.6,
			},
			{
				Dev:       domain.Developer{Key: "CIR", Name: "CIR", Team: "Admin", SpecialCase: true},
				PerSprint: map[string]float64{"26.1-S1": 40},
				Total:     40,
				TotalNoIP: 40,
			},
		},
		SprintTotals: map[string]float64{"26.1-S1": 57.6, "26.1-IP": 28.8},
		Total:        86.4,
		TotalNoIP:    57.6,
	}

	out := FormatCapacitySummary(sum)
	assert.Contains(t, out, "26.1-S1")
	assert.Contains(t, out, "57.6")
	assert.Contains(t, out, "BRO")
	// special-case marker and legend
	assert.Contains(t, out, "CIR")
	assert.Contains(t, out, "excluded from totals")
}

func TestFormatBudgetReport(t *testing.T) {
	report := &costing.BudgetReport{
		Topics: []costing.TopicRollup{
			{
				BudgetRow: costing.BudgetRow{Key: "platform", Name: "Platform", Budget: 5000, Planned: 2000, Actual: 500, Variance: 3000, Progress: 50},
				Features: []costing.BudgetRow{
					{Key: "PD-100", Name: "Search", Budget: 3000, Planned: 2000, Actual: 500, Variance: 1000, Progress: 50},
				},
			},
		},
		Total: costing.BudgetRow{Name: "Total", Budget: 5000, Planned: 2000, Actual: 500, Variance: 3000},
	}

	out := FormatBudgetReport(report)
	assert.Contains(t, out, "Platform")
	assert.Contains(t, out, "Search")
	assert.Contains(t, out, "5'000")
	assert.Contains(t, out, "50%")
}
