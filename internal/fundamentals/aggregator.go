package fundamentals

import (
	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// Window is a trailing reporting-period span expressed as the number of
// most recent quarters to include.
type Window struct {
	Label    string
	Quarters int
}

// DefaultWindows are the declared trailing windows: the labels describe
// the approximate calendar span the quarters cover.
var DefaultWindows = []Window{
	{Label: "3m", Quarters: 1},
	{Label: "6m", Quarters: 2},
	{Label: "9m", Quarters: 3},
	{Label: "12m", Quarters: 4},
}

// MaxQuarters is the deepest trailing window supported.
const MaxQuarters = 4

// Aggregator reduces per-quarter metric observations to one trailing
// value per asset and window.
type Aggregator struct {
	logger *logger.Logger
}

// NewAggregator creates a new aggregator
func NewAggregator(log *logger.Logger) *Aggregator {
	return &Aggregator{logger: log}
}

// Aggregate computes, per asset, the mean of all non-null values of one
// metric at period index < quarters. Assets with zero non-null values
// in the window are excluded from the output entirely, never reported
// as null or zero. Output order follows first appearance in obs.
func (a *Aggregator) Aggregate(obs []contracts.MetricObservation, metric contracts.Metric, quarters int) (contracts.MetricSeries, error) {
	if quarters < 1 || quarters > MaxQuarters {
		return nil, &contracts.ConfigError{Field: "quarters", Reason: "window must be between 1 and 4 quarters"}
	}

	type acc struct {
		name  string
		sum   float64
		count int
	}
	order := make([]string, 0)
	accs := make(map[string]*acc)

	for _, o := range obs {
		if o.Metric != metric || o.PeriodIdx >= quarters {
			continue
		}
		entry, seen := accs[o.Symbol]
		if !seen {
			entry = &acc{name: o.Name}
			accs[o.Symbol] = entry
			order = append(order, o.Symbol)
		}
		if o.Value.Valid {
			entry.sum += o.Value.Float
			entry.count++
		}
	}

	series := make(contracts.MetricSeries, 0, len(order))
	for _, symbol := range order {
		entry := accs[symbol]
		if entry.count == 0 {
			continue
		}
		series = append(series, contracts.MetricPoint{
			Symbol: symbol,
			Name:   entry.name,
			Value:  entry.sum / float64(entry.count),
		})
	}

	a.logger.WithFields(map[string]interface{}{
		"metric":   string(metric),
		"quarters": quarters,
		"assets":   len(series),
	}).Debug("Aggregated trailing window")

	return series, nil
}
