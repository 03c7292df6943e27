package scan

import (
	"context"
	"time"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/internal/ranker"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// DefaultDividendLookbackDays covers one year of payouts.
const DefaultDividendLookbackDays = 365

// DividendRow is one asset's payout history and snapshot yield.
type DividendRow struct {
	Symbol    string          `json:"symbol"`
	Name      string          `json:"name"`
	TotalPaid contracts.Value `json:"total_paid"`
	Payments  int             `json:"payments"`
	YieldPct  contracts.Value `json:"yield_pct"`
}

// DividendResult holds the collected rows plus yield rankings. Bottom
// payers covers dividend payers only; assets with no payout and no
// yield never appear anywhere.
type DividendResult struct {
	Rows         []DividendRow          `json:"rows"`
	TopPayers    contracts.RankingTable `json:"top_payers"`
	BottomPayers contracts.RankingTable `json:"bottom_payers"`
}

// DividendScanner ranks assets by dividend yield and sums their recent
// payouts.
type DividendScanner struct {
	dividends    contracts.DividendProvider
	fundamentals contracts.FundamentalsProvider
	ranker       *ranker.Ranker
	logger       *logger.Logger
}

// NewDividendScanner creates a new dividend scanner.
func NewDividendScanner(dividends contracts.DividendProvider, funds contracts.FundamentalsProvider, rk *ranker.Ranker, log *logger.Logger) *DividendScanner {
	return &DividendScanner{
		dividends:    dividends,
		fundamentals: funds,
		ranker:       rk,
		logger:       log,
	}
}

// Scan collects per-asset payout totals over the lookback window plus
// the snapshot yield, then ranks top and bottom payers by yield.
// lookbackDays <= 0 falls back to one year. Provider failures drop the
// symbol, never the run.
func (s *DividendScanner) Scan(ctx context.Context, symbols []string, lookbackDays int, progress contracts.ProgressFunc) (*DividendResult, error) {
	if lookbackDays <= 0 {
		lookbackDays = DefaultDividendLookbackDays
	}
	since := time.Now().AddDate(0, 0, -lookbackDays)

	rows := make([]DividendRow, 0, len(symbols))
	var failed int
	for i, symbol := range symbols {
		row, ok := s.collectSymbol(ctx, symbol, since)
		if ok {
			rows = append(rows, row)
		} else {
			failed++
		}
		progress.Report(0.9*float64(i+1)/float64(len(symbols)), "Collecting dividends...")
	}
	if failed > 0 {
		s.logger.WithFields(map[string]interface{}{
			"universe": len(symbols),
			"excluded": failed,
		}).Warn("Assets without dividend data excluded")
	}

	// Rank by yield among assets that have one.
	yields := make(contracts.MetricSeries, 0, len(rows))
	for _, row := range rows {
		if row.YieldPct.Valid {
			yields = append(yields, contracts.MetricPoint{Symbol: row.Symbol, Name: row.Name, Value: row.YieldPct.Float})
		}
	}

	top, err := s.ranker.Top(yields, TopN, contracts.HigherIsBetter)
	if err != nil {
		return nil, err
	}
	// Bottom payers exclude non-payers: a zero yield is not a low payer.
	payers := make(contracts.MetricSeries, 0, len(yields))
	for _, p := range yields {
		if p.Value > 0 {
			payers = append(payers, p)
		}
	}
	bottom, err := s.ranker.Top(payers, TopN, contracts.LowerIsBetter)
	if err != nil {
		return nil, err
	}

	progress.Report(1.0, "Done")

	s.logger.WithFields(map[string]interface{}{
		"universe": len(symbols),
		"rows":     len(rows),
		"payers":   len(payers),
	}).Info("Dividend scan completed")

	return &DividendResult{Rows: rows, TopPayers: top, BottomPayers: bottom}, nil
}

// collectSymbol returns the symbol's row, or ok=false when the asset
// has neither a payout in the window nor a snapshot yield.
func (s *DividendScanner) collectSymbol(ctx context.Context, symbol string, since time.Time) (DividendRow, bool) {
	row := DividendRow{Symbol: symbol, TotalPaid: contracts.Null(), YieldPct: contracts.Null()}

	payments, err := s.dividends.GetDividends(ctx, symbol, since)
	if err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Debug("Dividend history unavailable")
	} else if len(payments) > 0 {
		total := 0.0
		for _, p := range payments {
			total += p.Amount
		}
		row.TotalPaid = contracts.Some(total)
		row.Payments = len(payments)
	}

	snapshot, err := s.fundamentals.GetSnapshot(ctx, symbol)
	if err != nil {
		s.logger.WithError(err).WithField("symbol", symbol).Debug("Snapshot unavailable")
	} else if snapshot != nil {
		row.Name = snapshot.Name
		row.YieldPct = snapshot.DividendYield
	}

	if !row.TotalPaid.Valid && !row.YieldPct.Valid {
		return DividendRow{}, false
	}
	return row, true
}
