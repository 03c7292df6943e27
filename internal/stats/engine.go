package stats

import (
	"math"
	"time"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// TradingDaysPerYear is the annualization factor for daily returns.
const TradingDaysPerYear = 252

// Engine computes risk/return metrics from a ReturnSeries.
// All results are fractions, not percent; presentation scales them.
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates a new statistics engine
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// AssetMetrics holds annualized per-asset risk/return figures.
type AssetMetrics struct {
	Symbol           string  `json:"symbol"`
	AnnualReturn     float64 `json:"annual_return"`
	AnnualVolatility float64 `json:"annual_volatility"`
	Sharpe           float64 `json:"sharpe"`
}

// PortfolioReport holds portfolio-level metrics and the cumulative
// base-100 value series.
type PortfolioReport struct {
	AnnualReturn     float64          `json:"annual_return"`
	AnnualVolatility float64          `json:"annual_volatility"`
	Sharpe           float64          `json:"sharpe"`
	MaxDrawdown      float64          `json:"max_drawdown"` // 0 or negative
	Dates            []time.Time      `json:"dates"`
	Values           []float64        `json:"values"` // base 100
	Weights          contracts.Weights `json:"weights"`
	DroppedWeights   int              `json:"dropped_weights"` // weight entries with no price data
}

// AssetMetrics computes annualized return, volatility and Sharpe per
// asset. Zero volatility yields Sharpe 0, never a division error.
func (e *Engine) AssetMetrics(rs *contracts.ReturnSeries) ([]AssetMetrics, error) {
	if rs == nil || rs.Len() == 0 || rs.Cols() == 0 {
		return nil, contracts.ErrInsufficientData
	}

	out := make([]AssetMetrics, rs.Cols())
	for col, symbol := range rs.Symbols {
		returns := rs.Column(col)
		annualReturn := mean(returns) * TradingDaysPerYear
		annualVol := stdev(returns) * math.Sqrt(TradingDaysPerYear)

		out[col] = AssetMetrics{
			Symbol:           symbol,
			AnnualReturn:     annualReturn,
			AnnualVolatility: annualVol,
			Sharpe:           sharpe(annualReturn, annualVol),
		}
	}
	return out, nil
}

// Portfolio computes portfolio-level metrics for a weight vector.
// Weights are validated, restricted to assets present in the series and
// renormalized; a vector with no priced asset left fails with
// ErrInsufficientData.
func (e *Engine) Portfolio(rs *contracts.ReturnSeries, weights contracts.Weights) (*PortfolioReport, error) {
	if _, err := weights.Normalize(); err != nil {
		return nil, err
	}
	if rs == nil || rs.Len() == 0 || rs.Cols() == 0 {
		return nil, contracts.ErrInsufficientData
	}

	restricted := weights.Restrict(rs.Symbols)
	dropped := len(weights) - len(restricted)
	if dropped > 0 {
		e.logger.WithFields(map[string]interface{}{
			"requested": len(weights),
			"priced":    len(restricted),
			"dropped":   dropped,
		}).Warn("Weight entries without price data dropped")
	}

	normalized, err := restricted.Normalize()
	if err != nil {
		return nil, contracts.ErrInsufficientData
	}

	// Weight vector aligned to series columns.
	w := make([]float64, rs.Cols())
	for col, symbol := range rs.Symbols {
		w[col] = normalized[symbol]
	}

	// Portfolio daily returns.
	daily := make([]float64, rs.Len())
	for i, row := range rs.Rows {
		sum := 0.0
		for col, r := range row {
			sum += r * w[col]
		}
		daily[i] = sum
	}

	annualReturn := mean(daily) * TradingDaysPerYear
	annualVol := portfolioVolatility(rs, w)
	values := cumulativeValues(daily)

	report := &PortfolioReport{
		AnnualReturn:     annualReturn,
		AnnualVolatility: annualVol,
		Sharpe:           sharpe(annualReturn, annualVol),
		MaxDrawdown:      maxDrawdown(values),
		Dates:            rs.Dates,
		Values:           values,
		Weights:          normalized,
		DroppedWeights:   dropped,
	}

	e.logger.WithFields(map[string]interface{}{
		"assets":        len(normalized),
		"observations":  rs.Len(),
		"annual_return": report.AnnualReturn,
		"volatility":    report.AnnualVolatility,
		"max_drawdown":  report.MaxDrawdown,
	}).Debug("Portfolio metrics computed")

	return report, nil
}

// Correlation computes the Pearson correlation matrix of the return
// series columns: symmetric, unit diagonal. A zero-variance column
// correlates 0 with everything else.
func (e *Engine) Correlation(rs *contracts.ReturnSeries) ([][]float64, error) {
	if rs == nil || rs.Len() == 0 || rs.Cols() == 0 {
		return nil, contracts.ErrInsufficientData
	}

	n := rs.Cols()
	cols := make([][]float64, n)
	sd := make([]float64, n)
	for i := 0; i < n; i++ {
		cols[i] = rs.Column(i)
		sd[i] = stdev(cols[i])
	}

	matrix := make([][]float64, n)
	for i := range matrix {
		matrix[i] = make([]float64, n)
		matrix[i][i] = 1.0
	}

	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			corr := 0.0
			if sd[i] > 0 && sd[j] > 0 {
				corr = covariance(cols[i], cols[j]) / (sd[i] * sd[j])
			}
			matrix[i][j] = corr
			matrix[j][i] = corr
		}
	}
	return matrix, nil
}

// portfolioVolatility computes sqrt(w' Σ w) with Σ the annualized
// covariance matrix of daily returns.
func portfolioVolatility(rs *contracts.ReturnSeries, w []float64) float64 {
	n := rs.Cols()
	cols := make([][]float64, n)
	for i := 0; i < n; i++ {
		cols[i] = rs.Column(i)
	}

	variance := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			variance += w[i] * w[j] * covariance(cols[i], cols[j]) * TradingDaysPerYear
		}
	}
	if variance <= 0 {
		return 0
	}
	return math.Sqrt(variance)
}

// cumulativeValues builds the running product of (1+r), base 100.
func cumulativeValues(daily []float64) []float64 {
	values := make([]float64, len(daily))
	acc := 100.0
	for i, r := range daily {
		acc *= 1.0 + r
		values[i] = acc
	}
	return values
}

// maxDrawdown returns min((value - peak) / peak) over the series as a
// fraction, 0 or negative. The series starts from an implicit 100.
func maxDrawdown(values []float64) float64 {
	peak := 100.0
	maxDD := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
		dd := (v - peak) / peak
		if dd < maxDD {
			maxDD = dd
		}
	}
	return maxDD
}

func sharpe(annualReturn, annualVol float64) float64 {
	if annualVol == 0 {
		return 0
	}
	return annualReturn / annualVol
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdev is the sample standard deviation (n-1 denominator).
func stdev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	m := mean(xs)
	sum := 0.0
	for _, x := range xs {
		d := x - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(xs)-1))
}

// covariance is the sample covariance (n-1 denominator).
func covariance(xs, ys []float64) float64 {
	if len(xs) < 2 || len(xs) != len(ys) {
		return 0
	}
	mx, my := mean(xs), mean(ys)
	sum := 0.0
	for i := range xs {
		sum += (xs[i] - mx) * (ys[i] - my)
	}
	return sum / float64(len(xs)-1)
}
