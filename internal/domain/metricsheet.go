package domain

// MetricKind distinguishes planned from actual metric values.
type MetricKind string

const (
	KindPlan   MetricKind = "plan"
	KindActual MetricKind = "actual"
)

// Metric names tracked on a team's sprint sheet.
const (
	MetricDev              = "dev"
	MetricMaintain         = "maintain"
	MetricManage           = "manage"
	MetricAbsence          = "absence"
	MetricSP               = "sp"
	MetricIssues           = "issues"
	MetricBugsCreated      = "bugsCreated"
	MetricBugsClosed       = "bugsClosed"
	MetricBugsOpen         = "bugsOpen"
	MetricDefectRatio      = "defectRatio"
	MetricCycleTimeBugs    = "cycleTimeBugs"
	MetricCycleTimeCollabs = "cycleTimeCollabs"
)

// SheetMetrics lists every metric in display order.
var SheetMetrics = []string{
	MetricDev, MetricMaintain, MetricManage, MetricAbsence,
	MetricSP, MetricIssues,
	MetricBugsCreated, MetricBugsClosed, MetricBugsOpen,
	MetricDefectRatio, MetricCycleTimeBugs, MetricCycleTimeCollabs,
}

// MetricKey addresses one cell of a sprint metric sheet.
type MetricKey struct {
	Sprint int // sprint number within the PI, counted from 1
	Metric string
	Kind   MetricKind
}

// MetricSheet holds one team's sprint metrics for a PI. An absent key
// means the value was never entered, which is not the same as zero: the
// ratio engine leaves derived ratios blank for absent inputs.
type MetricSheet struct {
	PI     string
	Team   string
	Values map[MetricKey]float64
}

// NewMetricSheet returns an empty sheet for a team and PI.
func NewMetricSheet(pi, team string) *MetricSheet {
	return &MetricSheet{PI: pi, Team: team, Values: map[MetricKey]float64{}}
}

// Get returns the cell value and whether it has been entered.
func (s *MetricSheet) Get(sprint int, metric string, kind MetricKind) (float64, bool) {
	v, ok := s.Values[MetricKey{Sprint: sprint, Metric: metric, Kind: kind}]
	return v, ok
}

// Set records one cell.
func (s *MetricSheet) Set(sprint int, metric string, kind MetricKind, v float64) {
	if s.Values == nil {
		s.Values = map[MetricKey]float64{}
	}
	s.Values[MetricKey{Sprint: sprint, Metric: metric, Kind: kind}] = v
}
