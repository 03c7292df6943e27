package scan

import (
	"context"
	"fmt"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/internal/ranker"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// TopN is the ranking size every scanner reports.
const TopN = 10

// DefaultWindowDays are the lookback windows of the all-windows market
// scan, shortest first.
var DefaultWindowDays = []int{30, 90, 180, 365}

// WindowResult holds one window's losers and gainers.
type WindowResult struct {
	WindowDays int                    `json:"window_days"`
	Losers     contracts.RankingTable `json:"losers"`
	Gainers    contracts.RankingTable `json:"gainers"`
}

// MarketScanner ranks price moves over a market universe.
type MarketScanner struct {
	prices contracts.PriceProvider
	ranker *ranker.Ranker
	logger *logger.Logger
}

// NewMarketScanner creates a new market scanner.
func NewMarketScanner(prices contracts.PriceProvider, rk *ranker.Ranker, log *logger.Logger) *MarketScanner {
	return &MarketScanner{prices: prices, ranker: rk, logger: log}
}

// Scan downloads one window of history and ranks losers and gainers.
func (s *MarketScanner) Scan(ctx context.Context, symbols []string, windowDays int) (*WindowResult, error) {
	if windowDays <= 0 {
		return nil, &contracts.ConfigError{Field: "window_days", Reason: "must be positive"}
	}

	panel, err := s.prices.GetPrices(ctx, symbols, windowDays)
	if err != nil {
		return nil, fmt.Errorf("download prices: %w", err)
	}
	return s.rankWindow(panel, windowDays)
}

// ScanAll downloads the longest window once and derives every default
// window from the same panel.
func (s *MarketScanner) ScanAll(ctx context.Context, symbols []string, progress contracts.ProgressFunc) ([]WindowResult, error) {
	longest := DefaultWindowDays[len(DefaultWindowDays)-1]

	progress.Report(0.1, "Downloading price history...")
	panel, err := s.prices.GetPrices(ctx, symbols, longest)
	if err != nil {
		return nil, fmt.Errorf("download prices: %w", err)
	}

	results := make([]WindowResult, 0, len(DefaultWindowDays))
	for i, windowDays := range DefaultWindowDays {
		result, err := s.rankWindow(panel, windowDays)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
		progress.Report(0.1+0.9*float64(i+1)/float64(len(DefaultWindowDays)),
			fmt.Sprintf("Ranked %d-day window", windowDays))
	}
	return results, nil
}

func (s *MarketScanner) rankWindow(panel *contracts.PricePanel, windowDays int) (*WindowResult, error) {
	series, err := s.ranker.Change(panel, windowDays)
	if err != nil {
		return nil, err
	}
	losers, err := s.ranker.Losers(series, TopN)
	if err != nil {
		return nil, err
	}
	gainers, err := s.ranker.Gainers(series, TopN)
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"window_days": windowDays,
		"ranked":      len(series),
	}).Info("Market window scanned")

	return &WindowResult{
		WindowDays: windowDays,
		Losers:     losers,
		Gainers:    gainers,
	}, nil
}
