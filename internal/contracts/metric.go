package contracts

// Metric identifies a fundamentals metric tracked per quarter.
type Metric string

const (
	MetricPER       Metric = "per"
	MetricROEPct    Metric = "roe_pct"
	MetricMarginPct Metric = "net_margin_pct"
)

// MetricObservation is one (asset, period, metric) data point.
// PeriodIdx 0 is the most recent reporting period; increasing index is
// older. Missing values are explicit nulls, never zero.
type MetricObservation struct {
	Symbol    string `json:"symbol"`
	Name      string `json:"name"`
	PeriodIdx int    `json:"period_idx"`
	Metric    Metric `json:"metric"`
	Value     Value  `json:"value"`
}

// MetricPoint is one asset's value for a single metric.
type MetricPoint struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
}

// MetricSeries is an ordered metric series over an asset universe, the
// shape consumed by the ranker. Order is preserved so equal values can
// be tie-broken by stable input order.
type MetricSeries []MetricPoint

// Direction states which end of a metric is favorable.
type Direction int

const (
	// HigherIsBetter ranks larger values first (momentum, ROE, yield).
	HigherIsBetter Direction = iota
	// LowerIsBetter ranks smaller values first (PER, PEG).
	LowerIsBetter
)

// Valid reports whether the direction is a known constant.
func (d Direction) Valid() bool {
	return d == HigherIsBetter || d == LowerIsBetter
}

func (d Direction) String() string {
	switch d {
	case HigherIsBetter:
		return "higher_is_better"
	case LowerIsBetter:
		return "lower_is_better"
	default:
		return "invalid"
	}
}
