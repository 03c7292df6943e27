package fundamentals

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/pkg/logger"
)

func obs(symbol string, idx int, metric contracts.Metric, v contracts.Value) contracts.MetricObservation {
	return contracts.MetricObservation{Symbol: symbol, PeriodIdx: idx, Metric: metric, Value: v}
}

// window=2 over [10 (idx0), null (idx1), 30 (idx2)] -> mean of idx<2
// non-null = 10.
func TestAggregator_WindowExcludesNullAndOutOfWindow(t *testing.T) {
	a := NewAggregator(logger.NewNop())
	in := []contracts.MetricObservation{
		obs("A", 0, contracts.MetricPER, contracts.Some(10)),
		obs("A", 1, contracts.MetricPER, contracts.Null()),
		obs("A", 2, contracts.MetricPER, contracts.Some(30)),
	}

	series, err := a.Aggregate(in, contracts.MetricPER, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(series) != 1 {
		t.Fatalf("len = %d, want 1", len(series))
	}
	if series[0].Value != 10 {
		t.Errorf("value = %v, want 10", series[0].Value)
	}
}

func TestAggregator_MeansOverWindow(t *testing.T) {
	a := NewAggregator(logger.NewNop())
	in := []contracts.MetricObservation{
		obs("A", 0, contracts.MetricROEPct, contracts.Some(12)),
		obs("A", 1, contracts.MetricROEPct, contracts.Some(8)),
		obs("A", 2, contracts.MetricROEPct, contracts.Some(4)),
		obs("A", 3, contracts.MetricROEPct, contracts.Some(16)),
	}

	series, err := a.Aggregate(in, contracts.MetricROEPct, 4)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if math.Abs(series[0].Value-10) > 1e-12 {
		t.Errorf("value = %v, want 10", series[0].Value)
	}
}

func TestAggregator_ExcludesAssetsWithNoValidValues(t *testing.T) {
	a := NewAggregator(logger.NewNop())
	in := []contracts.MetricObservation{
		obs("GOOD", 0, contracts.MetricPER, contracts.Some(15)),
		obs("BAD", 0, contracts.MetricPER, contracts.Null()),
		obs("BAD", 1, contracts.MetricPER, contracts.Null()),
	}

	series, err := a.Aggregate(in, contracts.MetricPER, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(series) != 1 || series[0].Symbol != "GOOD" {
		t.Errorf("series = %v, want only GOOD", series)
	}
}

func TestAggregator_IgnoresOtherMetrics(t *testing.T) {
	a := NewAggregator(logger.NewNop())
	in := []contracts.MetricObservation{
		obs("A", 0, contracts.MetricPER, contracts.Some(15)),
		obs("A", 0, contracts.MetricROEPct, contracts.Some(99)),
	}

	series, err := a.Aggregate(in, contracts.MetricPER, 1)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if series[0].Value != 15 {
		t.Errorf("value = %v, want 15 (ROE row must not leak in)", series[0].Value)
	}
}

func TestAggregator_InvalidWindow(t *testing.T) {
	a := NewAggregator(logger.NewNop())
	for _, quarters := range []int{0, -1, 5} {
		if _, err := a.Aggregate(nil, contracts.MetricPER, quarters); !contracts.IsConfigError(err) {
			t.Errorf("quarters=%d: err = %v, want ConfigError", quarters, err)
		}
	}
}

// fakeFundamentals is a canned FundamentalsProvider.
type fakeFundamentals struct {
	snapshots map[string]*contracts.Snapshot
	quarters  map[string][]contracts.QuarterRecord
}

func (f *fakeFundamentals) GetSnapshot(_ context.Context, symbol string) (*contracts.Snapshot, error) {
	s, ok := f.snapshots[symbol]
	if !ok {
		return nil, errors.New("no snapshot")
	}
	return s, nil
}

func (f *fakeFundamentals) GetQuarterlyFinancials(_ context.Context, symbol string) ([]contracts.QuarterRecord, error) {
	return f.quarters[symbol], nil
}

func TestCollector_SnapshotTakesPrecedenceAtIndexZero(t *testing.T) {
	provider := &fakeFundamentals{
		snapshots: map[string]*contracts.Snapshot{
			"A": {
				Symbol:     "A",
				Name:       "Asset A",
				Price:      contracts.Some(100),
				TrailingPE: contracts.Some(21.5),
				ROE:        contracts.Some(18),
				NetMargin:  contracts.Some(9),
			},
		},
		quarters: map[string][]contracts.QuarterRecord{
			"A": {
				// EPS would imply PER 100/(1*4)=25; the snapshot's 21.5 must win.
				{PeriodIdx: 0, EPS: contracts.Some(1), NetIncome: contracts.Some(50), Equity: contracts.Some(1000), Revenue: contracts.Some(500)},
				{PeriodIdx: 1, EPS: contracts.Some(2), NetIncome: contracts.Some(60), Equity: contracts.Some(1200), Revenue: contracts.Some(400)},
			},
		},
	}
	c := NewCollector(provider, logger.NewNop())

	obs, err := c.Collect(context.Background(), []string{"A"}, nil)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	byKey := map[string]contracts.Value{}
	for _, o := range obs {
		if o.Symbol == "A" {
			byKey[string(o.Metric)+string(rune('0'+o.PeriodIdx))] = o.Value
		}
	}

	if got := byKey["per0"]; !got.Valid || got.Float != 21.5 {
		t.Errorf("idx0 PER = %+v, want snapshot 21.5", got)
	}
	// idx1 PER approximated: 100 / (2*4) = 12.5
	if got := byKey["per1"]; !got.Valid || math.Abs(got.Float-12.5) > 1e-12 {
		t.Errorf("idx1 PER = %+v, want 12.5", got)
	}
	// idx1 ROE approximated: 60*4/1200*100 = 20
	if got := byKey["roe_pct1"]; !got.Valid || math.Abs(got.Float-20) > 1e-12 {
		t.Errorf("idx1 ROE = %+v, want 20", got)
	}
	// idx1 margin: 60/400*100 = 15
	if got := byKey["net_margin_pct1"]; !got.Valid || math.Abs(got.Float-15) > 1e-12 {
		t.Errorf("idx1 margin = %+v, want 15", got)
	}
}

func TestCollector_MissingSymbolAbsentEntirely(t *testing.T) {
	provider := &fakeFundamentals{
		snapshots: map[string]*contracts.Snapshot{
			"A": {Symbol: "A", Name: "Asset A", TrailingPE: contracts.Some(10)},
		},
	}
	c := NewCollector(provider, logger.NewNop())

	obs, err := c.Collect(context.Background(), []string{"A", "GHOST"}, nil)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	for _, o := range obs {
		if o.Symbol == "GHOST" {
			t.Fatalf("GHOST must be absent, got %+v", o)
		}
	}
}

func TestCollector_ProgressMonotonic(t *testing.T) {
	provider := &fakeFundamentals{
		snapshots: map[string]*contracts.Snapshot{
			"A": {Symbol: "A"}, "B": {Symbol: "B"}, "C": {Symbol: "C"},
		},
	}
	c := NewCollector(provider, logger.NewNop())

	var fractions []float64
	_, err := c.Collect(context.Background(), []string{"A", "B", "C"}, func(f float64, _ string) {
		fractions = append(fractions, f)
	})
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(fractions) != 3 {
		t.Fatalf("got %d progress reports, want 3", len(fractions))
	}
	for i := 1; i < len(fractions); i++ {
		if fractions[i] < fractions[i-1] {
			t.Errorf("progress not monotonic: %v", fractions)
		}
	}
	if fractions[len(fractions)-1] != 1.0 {
		t.Errorf("final fraction = %v, want 1.0", fractions[len(fractions)-1])
	}
}
