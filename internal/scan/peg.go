package scan

import (
	"context"

	"github.com/dmvaldez/finscope/internal/contracts"
)

// ScanPEG ranks snapshot PEG low/high over the universe, positive
// values only. No asset with a usable PEG fails with
// ErrInsufficientData.
func (s *ValuationScanner) ScanPEG(ctx context.Context, symbols []string, progress contracts.ProgressFunc) (*RatioResult, error) {
	snapshots := s.collect(ctx, symbols, progress.Scaled(0, 0.9))
	series := ratioSeries(snapshots, func(snap *contracts.Snapshot) contracts.Value { return snap.PEG })
	return s.rankRatio(series, "peg", progress)
}
