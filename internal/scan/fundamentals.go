package scan

import (
	"context"
	"fmt"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/internal/fundamentals"
	"github.com/dmvaldez/finscope/internal/ranker"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// MetricRanking holds one metric's top and bottom ranking for a single
// trailing window. Top is the favorable end of the metric (low PER,
// high ROE, high margin); Bottom the opposite end.
type MetricRanking struct {
	Metric contracts.Metric       `json:"metric"`
	Window fundamentals.Window    `json:"window"`
	Top    contracts.RankingTable `json:"top"`
	Bottom contracts.RankingTable `json:"bottom"`
}

// metricDirections maps each ranked metric to its favorable direction.
var metricDirections = []struct {
	metric contracts.Metric
	dir    contracts.Direction
}{
	{contracts.MetricPER, contracts.LowerIsBetter},
	{contracts.MetricROEPct, contracts.HigherIsBetter},
	{contracts.MetricMarginPct, contracts.HigherIsBetter},
}

// FundamentalsScanner ranks PER, ROE and net margin over every trailing
// window. Observations are collected once per run and reused across
// metrics and windows.
type FundamentalsScanner struct {
	collector  *fundamentals.Collector
	aggregator *fundamentals.Aggregator
	ranker     *ranker.Ranker
	logger     *logger.Logger
}

// NewFundamentalsScanner creates a new fundamentals scanner.
func NewFundamentalsScanner(collector *fundamentals.Collector, aggregator *fundamentals.Aggregator, rk *ranker.Ranker, log *logger.Logger) *FundamentalsScanner {
	return &FundamentalsScanner{
		collector:  collector,
		aggregator: aggregator,
		ranker:     rk,
		logger:     log,
	}
}

// Scan collects fundamentals for the universe and builds top/bottom
// rankings for every metric and window combination. Results are ordered
// window-major, shortest window first.
func (s *FundamentalsScanner) Scan(ctx context.Context, symbols []string, progress contracts.ProgressFunc) ([]MetricRanking, error) {
	obs, err := s.collector.Collect(ctx, symbols, progress.Scaled(0, 0.85))
	if err != nil {
		return nil, fmt.Errorf("collect fundamentals: %w", err)
	}

	progress.Report(0.9, "Ranking metrics...")

	results := make([]MetricRanking, 0, len(fundamentals.DefaultWindows)*len(metricDirections))
	for _, window := range fundamentals.DefaultWindows {
		for _, md := range metricDirections {
			series, err := s.aggregator.Aggregate(obs, md.metric, window.Quarters)
			if err != nil {
				return nil, err
			}
			if md.metric == contracts.MetricPER {
				series = positiveOnly(series)
			}

			top, err := s.ranker.Top(series, TopN, md.dir)
			if err != nil {
				return nil, err
			}
			bottom, err := s.ranker.Top(series, TopN, opposite(md.dir))
			if err != nil {
				return nil, err
			}

			results = append(results, MetricRanking{
				Metric: md.metric,
				Window: window,
				Top:    top,
				Bottom: bottom,
			})
		}
	}

	progress.Report(1.0, "Done")

	s.logger.WithFields(map[string]interface{}{
		"universe": len(symbols),
		"tables":   len(results),
	}).Info("Fundamentals scan completed")

	return results, nil
}

// positiveOnly drops non-positive values; negative or zero PER is not a
// meaningful valuation.
func positiveOnly(series contracts.MetricSeries) contracts.MetricSeries {
	out := make(contracts.MetricSeries, 0, len(series))
	for _, p := range series {
		if p.Value > 0 {
			out = append(out, p)
		}
	}
	return out
}

func opposite(dir contracts.Direction) contracts.Direction {
	if dir == contracts.HigherIsBetter {
		return contracts.LowerIsBetter
	}
	return contracts.HigherIsBetter
}
