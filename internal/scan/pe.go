package scan

import (
	"context"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/internal/ranker"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// RatioResult holds low/high rankings of one snapshot valuation ratio.
// Column names which field fed the ranking ("trailing_pe", "forward_pe"
// or "peg").
type RatioResult struct {
	Column  string                 `json:"column"`
	Lowest  contracts.RankingTable `json:"lowest"`
	Highest contracts.RankingTable `json:"highest"`
}

// ValuationScanner ranks snapshot valuation ratios (P/E, PEG) across a
// universe. Only positive ratios are ranked.
type ValuationScanner struct {
	fundamentals contracts.FundamentalsProvider
	ranker       *ranker.Ranker
	logger       *logger.Logger
}

// NewValuationScanner creates a new valuation scanner.
func NewValuationScanner(funds contracts.FundamentalsProvider, rk *ranker.Ranker, log *logger.Logger) *ValuationScanner {
	return &ValuationScanner{fundamentals: funds, ranker: rk, logger: log}
}

// ScanPE ranks trailing P/E low/high over the universe. When no asset
// has a positive trailing P/E the scan falls back to the forward column
// before giving up with ErrInsufficientData.
func (s *ValuationScanner) ScanPE(ctx context.Context, symbols []string, progress contracts.ProgressFunc) (*RatioResult, error) {
	snapshots := s.collect(ctx, symbols, progress.Scaled(0, 0.9))

	series := ratioSeries(snapshots, func(snap *contracts.Snapshot) contracts.Value { return snap.TrailingPE })
	column := "trailing_pe"
	if len(series) == 0 {
		series = ratioSeries(snapshots, func(snap *contracts.Snapshot) contracts.Value { return snap.ForwardPE })
		column = "forward_pe"
		s.logger.Warn("No trailing P/E values, falling back to forward P/E")
	}

	return s.rankRatio(series, column, progress)
}

// collect fetches snapshots in input order, dropping failures.
func (s *ValuationScanner) collect(ctx context.Context, symbols []string, progress contracts.ProgressFunc) []*contracts.Snapshot {
	out := make([]*contracts.Snapshot, 0, len(symbols))
	for i, symbol := range symbols {
		snapshot, err := s.fundamentals.GetSnapshot(ctx, symbol)
		if err != nil || snapshot == nil {
			s.logger.WithField("symbol", symbol).Debug("Snapshot unavailable")
		} else {
			if snapshot.Symbol == "" {
				snapshot.Symbol = symbol
			}
			out = append(out, snapshot)
		}
		progress.Report(float64(i+1)/float64(len(symbols)), "Downloading snapshots...")
	}
	return out
}

func (s *ValuationScanner) rankRatio(series contracts.MetricSeries, column string, progress contracts.ProgressFunc) (*RatioResult, error) {
	if len(series) == 0 {
		return nil, contracts.ErrInsufficientData
	}

	lowest, err := s.ranker.Top(series, TopN, contracts.LowerIsBetter)
	if err != nil {
		return nil, err
	}
	highest, err := s.ranker.Top(series, TopN, contracts.HigherIsBetter)
	if err != nil {
		return nil, err
	}

	progress.Report(1.0, "Done")

	s.logger.WithFields(map[string]interface{}{
		"column": column,
		"ranked": len(series),
	}).Info("Valuation ratio scanned")

	return &RatioResult{Column: column, Lowest: lowest, Highest: highest}, nil
}

// ratioSeries extracts one positive-only ratio column from snapshots.
func ratioSeries(snapshots []*contracts.Snapshot, field func(*contracts.Snapshot) contracts.Value) contracts.MetricSeries {
	series := make(contracts.MetricSeries, 0, len(snapshots))
	for _, snap := range snapshots {
		v := field(snap)
		if v.Valid && v.Float > 0 {
			series = append(series, contracts.MetricPoint{Symbol: snap.Symbol, Name: snap.Name, Value: v.Float})
		}
	}
	return series
}
