package ranker

import (
	"sort"
	"time"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// Ranker produces ordered top-N subsets of a metric series.
type Ranker struct {
	logger *logger.Logger
}

// New creates a new ranker
func New(log *logger.Logger) *Ranker {
	return &Ranker{logger: log}
}

// Change computes the percentage price change over a lookback window
// for every panel column: (latest - at window start) / at window start
// * 100, using the last valid observation at or before the boundary.
// Columns without both endpoints are omitted. An empty panel yields an
// empty series, never an error.
func (r *Ranker) Change(panel *contracts.PricePanel, windowDays int) (contracts.MetricSeries, error) {
	if windowDays <= 0 {
		return nil, &contracts.ConfigError{Field: "window_days", Reason: "must be positive"}
	}
	if panel == nil || panel.Rows() == 0 {
		return contracts.MetricSeries{}, nil
	}

	last, _ := panel.LastDate()
	cutoff := last.AddDate(0, 0, -windowDays)

	series := make(contracts.MetricSeries, 0, panel.Cols())
	for col, symbol := range panel.Symbols {
		current, ok := panel.LastValid(col)
		if !ok {
			continue
		}
		past, ok := panel.ValidAtOrBefore(col, cutoff)
		if !ok || past == 0 {
			continue
		}
		series = append(series, contracts.MetricPoint{
			Symbol: symbol,
			Value:  (current - past) / past * 100,
		})
	}

	r.logger.WithFields(map[string]interface{}{
		"window_days": windowDays,
		"symbols":     panel.Cols(),
		"with_change": len(series),
	}).Debug("Computed price change series")

	return series, nil
}

// Top sorts the series per direction and truncates to n. HigherIsBetter
// sorts descending (gainers/top), LowerIsBetter ascending
// (losers/bottom). The sort is stable: ties keep input order. Fewer
// than n valid entries returns all of them; empty input returns an
// empty table.
func (r *Ranker) Top(series contracts.MetricSeries, n int, dir contracts.Direction) (contracts.RankingTable, error) {
	if n < 0 {
		return nil, &contracts.ConfigError{Field: "n", Reason: "must be non-negative"}
	}
	if !dir.Valid() {
		return nil, &contracts.ConfigError{Field: "direction", Reason: "unknown direction"}
	}

	sorted := make(contracts.MetricSeries, len(series))
	copy(sorted, series)

	if dir == contracts.HigherIsBetter {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value > sorted[j].Value })
	} else {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Value < sorted[j].Value })
	}

	if n < len(sorted) {
		sorted = sorted[:n]
	}

	table := make(contracts.RankingTable, len(sorted))
	for i, p := range sorted {
		table[i] = contracts.RankingEntry{
			Rank:   i + 1,
			Symbol: p.Symbol,
			Name:   p.Name,
			Value:  p.Value,
		}
	}
	return table, nil
}

// Gainers ranks the largest positive changes first.
func (r *Ranker) Gainers(series contracts.MetricSeries, n int) (contracts.RankingTable, error) {
	return r.Top(series, n, contracts.HigherIsBetter)
}

// Losers ranks the largest declines first.
func (r *Ranker) Losers(series contracts.MetricSeries, n int) (contracts.RankingTable, error) {
	return r.Top(series, n, contracts.LowerIsBetter)
}

// WindowBoundary returns the cutoff date for a lookback window ending
// at the given date.
func WindowBoundary(end time.Time, windowDays int) time.Time {
	return end.AddDate(0, 0, -windowDays)
}
