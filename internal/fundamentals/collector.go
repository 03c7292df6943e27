package fundamentals

import (
	"context"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// Collector materializes per-quarter metric observations for a set of
// assets from the fundamentals provider.
//
// Period index 0 carries the provider's authoritative snapshot figures
// (trailing PER, ROE, net margin) untouched. Older quarters are
// approximated from quarterly statements by annualizing a single
// quarter (value x 4). That extrapolation is a documented simplifying
// proxy with no volatility adjustment.
type Collector struct {
	provider contracts.FundamentalsProvider
	logger   *logger.Logger
}

// NewCollector creates a new collector
func NewCollector(provider contracts.FundamentalsProvider, log *logger.Logger) *Collector {
	return &Collector{provider: provider, logger: log}
}

// Collect fetches observations for all symbols. Symbols yielding no
// data at all are absent from the result, never placeholders. Progress
// is reported per symbol; a nil callback is fine.
func (c *Collector) Collect(ctx context.Context, symbols []string, progress contracts.ProgressFunc) ([]contracts.MetricObservation, error) {
	obs := make([]contracts.MetricObservation, 0, len(symbols)*3*MaxQuarters)
	missing := 0

	for i, symbol := range symbols {
		rows, err := c.collectSymbol(ctx, symbol)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			missing++
			c.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			}).Debug("No fundamentals for symbol")
		} else {
			obs = append(obs, rows...)
		}
		progress.Report(float64(i+1)/float64(len(symbols)), "")
	}

	if missing > 0 {
		c.logger.WithFields(map[string]interface{}{
			"requested": len(symbols),
			"missing":   missing,
		}).Warn("Assets dropped for missing fundamentals")
	}

	return obs, nil
}

// collectSymbol builds up to 4 quarters of PER / ROE% / net-margin%
// observations for one symbol.
func (c *Collector) collectSymbol(ctx context.Context, symbol string) ([]contracts.MetricObservation, error) {
	snapshot, err := c.provider.GetSnapshot(ctx, symbol)
	if err != nil {
		return nil, err
	}

	quarters, err := c.provider.GetQuarterlyFinancials(ctx, symbol)
	if err != nil {
		// Statements unavailable: fall back to the snapshot-only row.
		quarters = nil
	}

	if len(quarters) == 0 {
		return snapshotRow(symbol, snapshot), nil
	}

	obs := make([]contracts.MetricObservation, 0, len(quarters)*3)
	for _, q := range quarters {
		if q.PeriodIdx >= MaxQuarters {
			continue
		}

		var per, roe, margin contracts.Value
		if q.PeriodIdx == 0 {
			// Authoritative current-period figures take precedence over
			// the quarterly approximation.
			per = snapshot.TrailingPE
			roe = snapshot.ROE
			margin = snapshot.NetMargin
		} else {
			per = approxPER(snapshot.Price, q.EPS)
			roe = approxROE(q.NetIncome, q.Equity)
			margin = netMargin(q.NetIncome, q.Revenue)
		}

		obs = append(obs,
			contracts.MetricObservation{Symbol: symbol, Name: snapshot.Name, PeriodIdx: q.PeriodIdx, Metric: contracts.MetricPER, Value: per},
			contracts.MetricObservation{Symbol: symbol, Name: snapshot.Name, PeriodIdx: q.PeriodIdx, Metric: contracts.MetricROEPct, Value: roe},
			contracts.MetricObservation{Symbol: symbol, Name: snapshot.Name, PeriodIdx: q.PeriodIdx, Metric: contracts.MetricMarginPct, Value: margin},
		)
	}

	return obs, nil
}

func snapshotRow(symbol string, s *contracts.Snapshot) []contracts.MetricObservation {
	return []contracts.MetricObservation{
		{Symbol: symbol, Name: s.Name, PeriodIdx: 0, Metric: contracts.MetricPER, Value: s.TrailingPE},
		{Symbol: symbol, Name: s.Name, PeriodIdx: 0, Metric: contracts.MetricROEPct, Value: s.ROE},
		{Symbol: symbol, Name: s.Name, PeriodIdx: 0, Metric: contracts.MetricMarginPct, Value: s.NetMargin},
	}
}

// approxPER estimates trailing PER from one quarter: price / (EPS x 4).
func approxPER(price, eps contracts.Value) contracts.Value {
	if !price.Valid || !eps.Valid {
		return contracts.Null()
	}
	annualEPS := eps.Float * 4
	if annualEPS <= 0 {
		return contracts.Null()
	}
	return contracts.Some(price.Float / annualEPS)
}

// approxROE estimates annualized ROE%: net income x 4 / equity x 100.
func approxROE(netIncome, equity contracts.Value) contracts.Value {
	if !netIncome.Valid || !equity.Valid || equity.Float <= 0 {
		return contracts.Null()
	}
	return contracts.Some(netIncome.Float * 4 / equity.Float * 100)
}

// netMargin computes net margin%: net income / revenue x 100.
func netMargin(netIncome, revenue contracts.Value) contracts.Value {
	if !netIncome.Valid || !revenue.Valid || revenue.Float <= 0 {
		return contracts.Null()
	}
	return contracts.Some(netIncome.Float / revenue.Float * 100)
}
