package portfolio

import (
	"context"
	"fmt"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/internal/stats"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// DefaultLookbackDays is the price history window for an analysis run.
const DefaultLookbackDays = 365

// Analysis is a completed portfolio analysis: per-asset figures, the
// portfolio-level report and the pairwise correlation matrix. Symbols
// gives the column order of the correlation matrix.
type Analysis struct {
	Assets      []stats.AssetMetrics   `json:"assets"`
	Portfolio   *stats.PortfolioReport `json:"portfolio"`
	Correlation [][]float64            `json:"correlation"`
	Symbols     []string               `json:"symbols"`
}

/// Analyzer turns a weight vector into a full risk/return analysis:
// download prices, clean the panel, then run the statistics engine.
type Analyzer struct {
	prices contracts.PriceProvider
	engine *stats.Engine
	logger *logger.Logger
}

// NewAnalyzer creates a new portfolio analyzer.
func NewAnalyzer(prices contracts.PriceProvider, engine *stats.Engine, log *logger.Logger) *Analyzer {
	return &Analyzer{
		prices: prices,
		engine: engine,
		logger: log,
	}
}

// Analyze runs the full pipeline for the given holdings. Weights are
// validated up front; symbols without price data are dropped and the
// remainder renormalized. lookbackDays <= 0 falls back to the default
// one-year window.
func (a *Analyzer) Analyze(ctx context.Context, weights contracts.Weights, lookbackDays int, progress contracts.ProgressFunc) (*Analysis, error) {
	if _, err := weights.Normalize(); err != nil {
		return nil, err
	}
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}

	symbols := make([]string, 0, len(weights))
	for symbol := range weights {
		symbols = append(symbols, symbol)
	}

	progress.Report(0.1, "Downloading price history...")
	panel, err := a.prices.GetPrices(ctx, symbols, lookbackDays)
	if err != nil {
		return nil, fmt.Errorf("download prices: %w", err)
	}

	progress.Report(0.6, "Computing metrics...")
	returns, err := panel.Returns()
	if err != nil {
		return nil, err
	}

	assets, err := a.engine.AssetMetrics(returns)
	if err != nil {
		return nil, err
	}
	report, err := a.engine.Portfolio(returns, weights)
	if err != nil {
		return nil, err
	}
	correlation, err := a.engine.Correlation(returns)
	if err != nil {
		return nil, err
	}

	progress.Report(1.0, "Done")

	a.logger.WithFields(map[string]interface{}{
		"requested":    len(weights),
		"analyzed":     returns.Cols(),
		"observations": returns.Len(),
		"lookback":     lookbackDays,
	}).Info("Portfolio analysis completed")

	return &Analysis{
		Assets:      assets,
		Portfolio:   report,
		Correlation: correlation,
		Symbols:     returns.Symbols,
	}, nil
}
