package ranker

import (
	"testing"
	"time"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/pkg/logger"
)

func series(pairs ...interface{}) contracts.MetricSeries {
	out := make(contracts.MetricSeries, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, contracts.MetricPoint{
			Symbol: pairs[i].(string),
			Value:  pairs[i+1].(float64),
		})
	}
	return out
}

func TestRanker_TopAndBottom(t *testing.T) {
	r := New(logger.NewNop())
	s := series("A", 5.0, "B", -3.0, "C", 12.0, "D", 0.5)

	gainers, err := r.Gainers(s, 2)
	if err != nil {
		t.Fatalf("Gainers failed: %v", err)
	}
	if len(gainers) != 2 || gainers[0].Symbol != "C" || gainers[1].Symbol != "A" {
		t.Errorf("gainers = %v", gainers)
	}
	if gainers[0].Rank != 1 || gainers[1].Rank != 2 {
		t.Errorf("ranks not dense from 1: %v", gainers)
	}

	losers, err := r.Losers(s, 2)
	if err != nil {
		t.Fatalf("Losers failed: %v", err)
	}
	if len(losers) != 2 || losers[0].Symbol != "B" || losers[1].Symbol != "D" {
		t.Errorf("losers = %v", losers)
	}
}

// Untruncated ascending and descending rankings of the same series are
// exact reverses of each other.
func TestRanker_AscDescReversal(t *testing.T) {
	r := New(logger.NewNop())
	s := series("A", 5.0, "B", -3.0, "C", 12.0, "D", 0.5, "E", 7.25)

	asc, err := r.Top(s, len(s), contracts.LowerIsBetter)
	if err != nil {
		t.Fatalf("Top asc failed: %v", err)
	}
	desc, err := r.Top(s, len(s), contracts.HigherIsBetter)
	if err != nil {
		t.Fatalf("Top desc failed: %v", err)
	}

	for i := range asc {
		mirror := desc[len(desc)-1-i]
		if asc[i].Symbol != mirror.Symbol {
			t.Errorf("position %d: asc %s, desc mirror %s", i, asc[i].Symbol, mirror.Symbol)
		}
	}
}

func TestRanker_StableTies(t *testing.T) {
	r := New(logger.NewNop())
	s := series("FIRST", 1.0, "SECOND", 1.0, "THIRD", 1.0)

	table, err := r.Top(s, 3, contracts.HigherIsBetter)
	if err != nil {
		t.Fatalf("Top failed: %v", err)
	}
	want := []string{"FIRST", "SECOND", "THIRD"}
	for i, w := range want {
		if table[i].Symbol != w {
			t.Errorf("tie order broken at %d: got %s, want %s", i, table[i].Symbol, w)
		}
	}
}

func TestRanker_ShortAndEmptyInput(t *testing.T) {
	r := New(logger.NewNop())

	table, err := r.Gainers(series("A", 1.0), 10)
	if err != nil {
		t.Fatalf("Gainers failed: %v", err)
	}
	if len(table) != 1 {
		t.Errorf("len = %d, want 1 (no padding)", len(table))
	}

	empty, err := r.Losers(contracts.MetricSeries{}, 10)
	if err != nil {
		t.Fatalf("empty input must not error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("empty input: len = %d, want 0", len(empty))
	}
}

func TestRanker_InvalidConfig(t *testing.T) {
	r := New(logger.NewNop())

	if _, err := r.Top(series("A", 1.0), -1, contracts.HigherIsBetter); !contracts.IsConfigError(err) {
		t.Errorf("negative n: err = %v, want ConfigError", err)
	}
	if _, err := r.Top(series("A", 1.0), 1, contracts.Direction(99)); !contracts.IsConfigError(err) {
		t.Errorf("bad direction: err = %v, want ConfigError", err)
	}
	if _, err := r.Change(&contracts.PricePanel{}, 0); !contracts.IsConfigError(err) {
		t.Errorf("zero window: err = %v, want ConfigError", err)
	}
}

func TestRanker_Change(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	dates := []time.Time{base, base.AddDate(0, 0, 15), base.AddDate(0, 0, 40)}
	p := contracts.NewPricePanel(dates, []string{"UP", "DOWN", "NEW"})
	// UP: 100 -> 120, DOWN: 50 -> 40, NEW has no observation at the boundary.
	p.Cells[0][0] = contracts.Some(100)
	p.Cells[2][0] = contracts.Some(120)
	p.Cells[0][1] = contracts.Some(50)
	p.Cells[2][1] = contracts.Some(40)
	p.Cells[2][2] = contracts.Some(10)

	r := New(logger.NewNop())
	s, err := r.Change(p, 30)
	if err != nil {
		t.Fatalf("Change failed: %v", err)
	}

	if len(s) != 2 {
		t.Fatalf("len = %d, want 2 (NEW omitted)", len(s))
	}
	if s[0].Symbol != "UP" || s[0].Value != 20 {
		t.Errorf("UP change = %+v, want 20", s[0])
	}
	if s[1].Symbol != "DOWN" || s[1].Value != -20 {
		t.Errorf("DOWN change = %+v, want -20", s[1])
	}
}

// Top-N losers and gainers do not overlap when N is small relative to
// the universe.
func TestRanker_LosersGainersDisjoint(t *testing.T) {
	r := New(logger.NewNop())
	s := series("A", 1.0, "B", 2.0, "C", 3.0, "D", 4.0, "E", 5.0, "F", 6.0)

	gainers, _ := r.Gainers(s, 2)
	losers, _ := r.Losers(s, 2)

	seen := map[string]bool{}
	for _, e := range gainers {
		seen[e.Symbol] = true
	}
	for _, e := range losers {
		if seen[e.Symbol] {
			t.Errorf("symbol %s in both rankings", e.Symbol)
		}
	}
}
