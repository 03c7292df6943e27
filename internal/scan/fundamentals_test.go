package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/internal/fundamentals"
	"github.com/dmvaldez/finscope/internal/ranker"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// fakeFunds serves canned snapshots and quarterly records.
type fakeFunds struct {
	snapshots map[string]*contracts.Snapshot
	quarters  map[string][]contracts.QuarterRecord
}

func (f *fakeFunds) GetSnapshot(_ context.Context, symbol string) (*contracts.Snapshot, error) {
	s, ok := f.snapshots[symbol]
	if !ok {
		return nil, errors.New("no snapshot")
	}
	return s, nil
}

func (f *fakeFunds) GetQuarterlyFinancials(_ context.Context, symbol string) ([]contracts.QuarterRecord, error) {
	return f.quarters[symbol], nil
}

func newFundamentalsScanner(provider *fakeFunds) *FundamentalsScanner {
	log := logger.NewNop()
	return NewFundamentalsScanner(
		fundamentals.NewCollector(provider, log),
		fundamentals.NewAggregator(log),
		ranker.New(log),
		log,
	)
}

func TestFundamentalsScanner_AllMetricsAllWindows(t *testing.T) {
	provider := &fakeFunds{snapshots: map[string]*contracts.Snapshot{
		"CHEAP": {Symbol: "CHEAP", Name: "Cheap Co", TrailingPE: contracts.Some(5), ROE: contracts.Some(8), NetMargin: contracts.Some(4)},
		"DEAR":  {Symbol: "DEAR", Name: "Dear Co", TrailingPE: contracts.Some(40), ROE: contracts.Some(22), NetMargin: contracts.Some(18)},
	}}
	s := newFundamentalsScanner(provider)

	results, err := s.Scan(context.Background(), []string{"CHEAP", "DEAR"}, nil)
	require.NoError(t, err)

	// window-major: 4 windows x 3 metrics
	require.Len(t, results, len(fundamentals.DefaultWindows)*3)
	assert.Equal(t, "3m", results[0].Window.Label)
	assert.Equal(t, contracts.MetricPER, results[0].Metric)

	// Low PER tops the PER ranking, high ROE tops the ROE ranking.
	per := results[0]
	require.NotEmpty(t, per.Top)
	assert.Equal(t, "CHEAP", per.Top[0].Symbol)
	assert.Equal(t, "DEAR", per.Bottom[0].Symbol)

	roe := results[1]
	assert.Equal(t, contracts.MetricROEPct, roe.Metric)
	assert.Equal(t, "DEAR", roe.Top[0].Symbol)
	assert.Equal(t, "CHEAP", roe.Bottom[0].Symbol)
}

func TestFundamentalsScanner_NegativePERExcluded(t *testing.T) {
	provider := &fakeFunds{snapshots: map[string]*contracts.Snapshot{
		"LOSS": {Symbol: "LOSS", Name: "Lossmaker", TrailingPE: contracts.Some(-12), ROE: contracts.Some(-5), NetMargin: contracts.Some(-3)},
		"OK":   {Symbol: "OK", Name: "Profitable", TrailingPE: contracts.Some(15), ROE: contracts.Some(10), NetMargin: contracts.Some(6)},
	}}
	s := newFundamentalsScanner(provider)

	results, err := s.Scan(context.Background(), []string{"LOSS", "OK"}, nil)
	require.NoError(t, err)

	for _, r := range results {
		if r.Metric != contracts.MetricPER {
			continue
		}
		for _, e := range append(r.Top, r.Bottom...) {
			assert.NotEqual(t, "LOSS", e.Symbol, "negative PER must not be ranked")
		}
	}

	// The loss-maker still appears in ROE rankings.
	roe := results[1]
	require.Equal(t, contracts.MetricROEPct, roe.Metric)
	assert.Contains(t, roe.Bottom.Symbols(), "LOSS")
}

func TestFundamentalsScanner_ProgressReachesDone(t *testing.T) {
	provider := &fakeFunds{snapshots: map[string]*contracts.Snapshot{
		"A": {Symbol: "A", TrailingPE: contracts.Some(10)},
	}}
	s := newFundamentalsScanner(provider)

	var last float64
	_, err := s.Scan(context.Background(), []string{"A"}, func(f float64, _ string) {
		assert.GreaterOrEqual(t, f, last, "progress must be non-decreasing")
		last = f
	})
	require.NoError(t, err)
	assert.Equal(t, 1.0, last)
}
