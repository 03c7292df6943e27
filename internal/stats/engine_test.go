package stats

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/pkg/logger"
)

func newSeries(symbols []string, rows [][]float64) *contracts.ReturnSeries {
	dates := make([]time.Time, len(rows))
	base := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := range dates {
		dates[i] = base.AddDate(0, 0, i)
	}
	return &contracts.ReturnSeries{Dates: dates, Symbols: symbols, Rows: rows}
}

// Two assets, 50/50 weights, known daily returns. Expected constants
// derived by hand from the annualization formulas.
func TestEngine_Portfolio_Fixture(t *testing.T) {
	rs := newSeries([]string{"A", "B"}, [][]float64{
		{0.01, 0.00},
		{-0.01, 0.01},
		{0.02, -0.01},
		{0.00, 0.01},
	})
	e := NewEngine(logger.NewNop())

	report, err := e.Portfolio(rs, contracts.Weights{"A": 0.5, "B": 0.5})
	if err != nil {
		t.Fatalf("Portfolio failed: %v", err)
	}

	// Portfolio daily returns: [0.005, 0, 0.005, 0.005]
	// mean = 0.00375 -> annual = 0.945
	// sample var = 6.25e-6 -> annual vol = sqrt(6.25e-6*252) = 0.039686...
	if math.Abs(report.AnnualReturn-0.945) > 1e-9 {
		t.Errorf("AnnualReturn = %v, want 0.945", report.AnnualReturn)
	}
	if math.Abs(report.AnnualVolatility-0.0397) > 5e-5 {
		t.Errorf("AnnualVolatility = %v, want 0.0397 (2dp)", report.AnnualVolatility)
	}
	if math.Abs(report.Sharpe-report.AnnualReturn/report.AnnualVolatility) > 1e-12 {
		t.Errorf("Sharpe = %v inconsistent with return/vol", report.Sharpe)
	}

	// Value series never falls below its running peak here.
	if report.MaxDrawdown != 0 {
		t.Errorf("MaxDrawdown = %v, want 0 for non-decreasing series", report.MaxDrawdown)
	}

	wantValues := []float64{100.5, 100.5, 101.0025, 101.50751250}
	for i, want := range wantValues {
		if math.Abs(report.Values[i]-want) > 1e-6 {
			t.Errorf("Values[%d] = %v, want %v", i, report.Values[i], want)
		}
	}
}

// Scaling the whole weight vector by a positive constant must not
// change portfolio metrics.
func TestEngine_Portfolio_RenormalizationInvariance(t *testing.T) {
	rs := newSeries([]string{"A", "B"}, [][]float64{
		{0.01, -0.02},
		{0.03, 0.01},
		{-0.01, 0.02},
	})
	e := NewEngine(logger.NewNop())

	r1, err := e.Portfolio(rs, contracts.Weights{"A": 10, "B": 30})
	if err != nil {
		t.Fatalf("Portfolio failed: %v", err)
	}
	r2, err := e.Portfolio(rs, contracts.Weights{"A": 1, "B": 3})
	if err != nil {
		t.Fatalf("Portfolio failed: %v", err)
	}

	if math.Abs(r1.AnnualReturn-r2.AnnualReturn) > 1e-12 {
		t.Errorf("returns differ: %v vs %v", r1.AnnualReturn, r2.AnnualReturn)
	}
	if math.Abs(r1.AnnualVolatility-r2.AnnualVolatility) > 1e-12 {
		t.Errorf("volatilities differ: %v vs %v", r1.AnnualVolatility, r2.AnnualVolatility)
	}
}

func TestEngine_Portfolio_DropsUnpricedAssets(t *testing.T) {
	rs := newSeries([]string{"A"}, [][]float64{{0.01}, {0.02}})
	e := NewEngine(logger.NewNop())

	report, err := e.Portfolio(rs, contracts.Weights{"A": 1, "GHOST": 1})
	if err != nil {
		t.Fatalf("Portfolio failed: %v", err)
	}
	if report.DroppedWeights != 1 {
		t.Errorf("DroppedWeights = %d, want 1", report.DroppedWeights)
	}
	if math.Abs(report.Weights["A"]-1.0) > 1e-12 {
		t.Errorf("weight A = %v, want 1 after renormalization", report.Weights["A"])
	}
}

func TestEngine_Portfolio_BadWeights(t *testing.T) {
	rs := newSeries([]string{"A"}, [][]float64{{0.01}})
	e := NewEngine(logger.NewNop())

	if _, err := e.Portfolio(rs, contracts.Weights{}); !contracts.IsConfigError(err) {
		t.Errorf("empty weights: err = %v, want ConfigError", err)
	}
	if _, err := e.Portfolio(rs, contracts.Weights{"A": 0}); !contracts.IsConfigError(err) {
		t.Errorf("zero-sum weights: err = %v, want ConfigError", err)
	}
}

func TestEngine_Portfolio_EmptySeries(t *testing.T) {
	e := NewEngine(logger.NewNop())
	rs := &contracts.ReturnSeries{}
	if _, err := e.Portfolio(rs, contracts.Weights{"A": 1}); !errors.Is(err, contracts.ErrInsufficientData) {
		t.Errorf("err = %v, want ErrInsufficientData", err)
	}
}

// Single-asset portfolio metrics match the asset's own metrics.
func TestEngine_Portfolio_SingleAssetDegenerate(t *testing.T) {
	rs := newSeries([]string{"A"}, [][]float64{{0.01}, {-0.02}, {0.015}})
	e := NewEngine(logger.NewNop())

	assets, err := e.AssetMetrics(rs)
	if err != nil {
		t.Fatalf("AssetMetrics failed: %v", err)
	}
	report, err := e.Portfolio(rs, contracts.Weights{"A": 7})
	if err != nil {
		t.Fatalf("Portfolio failed: %v", err)
	}

	if math.Abs(report.AnnualReturn-assets[0].AnnualReturn) > 1e-12 {
		t.Errorf("portfolio return %v != asset return %v", report.AnnualReturn, assets[0].AnnualReturn)
	}
	if math.Abs(report.AnnualVolatility-assets[0].AnnualVolatility) > 1e-12 {
		t.Errorf("portfolio vol %v != asset vol %v", report.AnnualVolatility, assets[0].AnnualVolatility)
	}
}

func TestEngine_AssetMetrics_ZeroVolatility(t *testing.T) {
	rs := newSeries([]string{"FLAT"}, [][]float64{{0.01}, {0.01}, {0.01}})
	e := NewEngine(logger.NewNop())

	assets, err := e.AssetMetrics(rs)
	if err != nil {
		t.Fatalf("AssetMetrics failed: %v", err)
	}
	if assets[0].AnnualVolatility != 0 {
		t.Errorf("volatility = %v, want 0", assets[0].AnnualVolatility)
	}
	if assets[0].Sharpe != 0 {
		t.Errorf("Sharpe = %v, want 0 when volatility is 0", assets[0].Sharpe)
	}
}

func TestEngine_Correlation_Properties(t *testing.T) {
	rs := newSeries([]string{"A", "B", "C"}, [][]float64{
		{0.01, -0.02, 0.005},
		{0.03, 0.01, -0.01},
		{-0.01, 0.02, 0.02},
		{0.02, -0.01, 0.00},
	})
	e := NewEngine(logger.NewNop())

	matrix, err := e.Correlation(rs)
	if err != nil {
		t.Fatalf("Correlation failed: %v", err)
	}

	for i := range matrix {
		if math.Abs(matrix[i][i]-1.0) > 1e-9 {
			t.Errorf("diagonal [%d][%d] = %v, want 1", i, i, matrix[i][i])
		}
		for j := range matrix {
			if math.Abs(matrix[i][j]-matrix[j][i]) > 1e-9 {
				t.Errorf("matrix not symmetric at [%d][%d]", i, j)
			}
			if matrix[i][j] < -1-1e-9 || matrix[i][j] > 1+1e-9 {
				t.Errorf("correlation [%d][%d] = %v out of [-1,1]", i, j, matrix[i][j])
			}
		}
	}
}

func TestEngine_Correlation_SingleAsset(t *testing.T) {
	rs := newSeries([]string{"A"}, [][]float64{{0.01}, {0.02}})
	e := NewEngine(logger.NewNop())

	matrix, err := e.Correlation(rs)
	if err != nil {
		t.Fatalf("Correlation failed: %v", err)
	}
	if len(matrix) != 1 || matrix[0][0] != 1.0 {
		t.Errorf("degenerate matrix = %v, want [[1]]", matrix)
	}
}

func TestMaxDrawdown(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"no drawdown", []float64{101, 102, 103}, 0},
		{"single dip", []float64{110, 99, 120}, (99.0 - 110.0) / 110.0},
		{"below base", []float64{90, 95}, -0.10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := maxDrawdown(tt.values)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("maxDrawdown = %v, want %v", got, tt.want)
			}
			if got > 0 {
				t.Error("drawdown must never be positive")
			}
		})
	}
}
