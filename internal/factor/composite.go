package factor

import (
	"context"
	"math"
	"sort"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// Weights are the fixed factor weights of the composite score.
type Weights struct {
	Momentum  float64
	Valuation float64
	Quality   float64
	Dividends float64
}

// DefaultWeights returns the model's fixed weight vector.
func DefaultWeights() Weights {
	return Weights{
		Momentum:  0.40,
		Valuation: 0.20,
		Quality:   0.30,
		Dividends: 0.10,
	}
}

// Validate checks the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	for _, v := range []float64{w.Momentum, w.Valuation, w.Quality, w.Dividends} {
		if v < 0 {
			return &contracts.ConfigError{Field: "factor_weights", Reason: "weights must be non-negative"}
		}
	}
	sum := w.Momentum + w.Valuation + w.Quality + w.Dividends
	if math.Abs(sum-1.0) > 1e-9 {
		return &contracts.ConfigError{Field: "factor_weights", Reason: "weights must sum to 1.0"}
	}
	return nil
}

const (
	// neutralScore fills momentum/valuation/quality gaps: unknown is
	// treated as average, not penalized.
	neutralScore = 50.0
	// A missing dividend yield is a real, unfavorable signal.
	missingDividendScore = 0.0

	// momentum lookbacks in calendar days
	lookback6M  = 180
	lookback12M = 365
	// price history downloaded once, covering the 12-month lookback
	momentumLookbackDays = 400
	// minimum valid observations for a momentum series
	minMomentumObs = 60

	// PER outside (0, 1000] is treated as missing for valuation.
	maxUsablePER = 1000.0

	// TopN is the leaderboard size.
	TopN = 20
)

// ScoreRow is one asset's composite score with its factor breakdown
// and the raw values behind it.
type ScoreRow struct {
	Rank      int     `json:"rank"`
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name"`
	Composite float64 `json:"composite"`

	MomentumScore  float64 `json:"momentum_score"`
	ValuationScore float64 `json:"valuation_score"`
	QualityScore   float64 `json:"quality_score"`
	DividendScore  float64 `json:"dividend_score"`

	Mom6M         contracts.Value `json:"mom_6m"`
	Mom12M        contracts.Value `json:"mom_12m"`
	PER           contracts.Value `json:"per"`
	ROA           contracts.Value `json:"roa_pct"`
	ROE           contracts.Value `json:"roe_pct"`
	NetMargin     contracts.Value `json:"net_margin_pct"`
	DividendYield contracts.Value `json:"dividend_yield_pct"`
}

// Result is a completed scoring run: the top-N leaderboard plus the
// coverage figures that make the inner-join drop rate observable.
type Result struct {
	Rows              []ScoreRow `json:"rows"`
	UniverseSize      int        `json:"universe_size"`
	MomentumAssets    int        `json:"momentum_assets"`
	FundamentalAssets int        `json:"fundamental_assets"`
	ScoredAssets      int        `json:"scored_assets"`
	DroppedAssets     int        `json:"dropped_assets"`
}

// CoverageRate is the scored share of the requested universe.
func (r *Result) CoverageRate() float64 {
	if r.UniverseSize == 0 {
		return 0
	}
	return float64(r.ScoredAssets) / float64(r.UniverseSize)
}

// Scorer builds the weighted multi-factor composite ranking.
// Every run recomputes everything from scratch; nothing is cached here.
type Scorer struct {
	prices       contracts.PriceProvider
	fundamentals contracts.FundamentalsProvider
	weights      Weights
	logger       *logger.Logger
}

// NewScorer creates a new composite scorer. The weight vector is
// validated on first use.
func NewScorer(prices contracts.PriceProvider, fundamentals contracts.FundamentalsProvider, weights Weights, log *logger.Logger) *Scorer {
	return &Scorer{
		prices:       prices,
		fundamentals: fundamentals,
		weights:      weights,
		logger:       log,
	}
}

// momentumRow holds one asset's trailing price changes.
type momentumRow struct {
	mom6M  float64
	mom12M float64
	avg    float64
}

// Score runs the full model over the universe and returns the top-N
// leaderboard. Assets must appear in both the momentum dataset and the
// fundamentals dataset to be scored (inner join); either dataset being
// empty fails with ErrInsufficientUniverse and no partial output.
func (s *Scorer) Score(ctx context.Context, symbols []string, progress contracts.ProgressFunc) (*Result, error) {
	if err := s.weights.Validate(); err != nil {
		return nil, err
	}

	progress.Report(0.05, "Downloading price history (momentum)...")
	momentum, err := s.collectMomentum(ctx, symbols)
	if err != nil {
		return nil, err
	}

	progress.Report(0.35, "Downloading fundamentals...")
	snapshots := s.collectSnapshots(ctx, symbols, progress.Scaled(0.35, 0.90))

	progress.Report(0.92, "Computing scores...")

	if len(momentum) == 0 || len(snapshots) == 0 {
		return nil, contracts.ErrInsufficientUniverse
	}

	// Inner join: only assets present in both sources are scored.
	joined := make([]string, 0, len(symbols))
	for _, symbol := range symbols {
		if _, ok := momentum[symbol]; !ok {
			continue
		}
		if _, ok := snapshots[symbol]; !ok {
			continue
		}
		joined = append(joined, symbol)
	}
	if len(joined) == 0 {
		return nil, contracts.ErrInsufficientUniverse
	}

	dropped := len(symbols) - len(joined)
	if dropped > 0 {
		s.logger.WithFields(map[string]interface{}{
			"universe": len(symbols),
			"scored":   len(joined),
			"dropped":  dropped,
		}).Warn("Assets dropped by momentum/fundamentals inner join")
	}

	rows := s.scoreJoined(joined, momentum, snapshots)

	// Final leaderboard: descending composite, dense 1..N ranks.
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Composite > rows[j].Composite })
	if len(rows) > TopN {
		rows = rows[:TopN]
	}
	for i := range rows {
		rows[i].Rank = i + 1
	}

	progress.Report(1.0, "Done")

	result := &Result{
		Rows:              rows,
		UniverseSize:      len(symbols),
		MomentumAssets:    len(momentum),
		FundamentalAssets: len(snapshots),
		ScoredAssets:      len(joined),
		DroppedAssets:     dropped,
	}

	s.logger.WithFields(map[string]interface{}{
		"universe":      result.UniverseSize,
		"scored":        result.ScoredAssets,
		"coverage_rate": result.CoverageRate(),
	}).Info("Composite scoring completed")

	return result, nil
}

// collectMomentum downloads 13 months of prices once and derives the
// 6-month and 12-month trailing percentage change per symbol. Symbols
// lacking either lookback or enough observations are omitted.
func (s *Scorer) collectMomentum(ctx context.Context, symbols []string) (map[string]momentumRow, error) {
	panel, err := s.prices.GetPrices(ctx, symbols, momentumLookbackDays)
	if err != nil {
		return nil, err
	}

	out := make(map[string]momentumRow)
	if panel == nil || panel.Rows() == 0 {
		return out, nil
	}

	last, _ := panel.LastDate()
	cutoff6M := last.AddDate(0, 0, -lookback6M)
	cutoff12M := last.AddDate(0, 0, -lookback12M)

	for col, symbol := range panel.Symbols {
		valid := 0
		for row := 0; row < panel.Rows(); row++ {
			if panel.Cells[row][col].Valid {
				valid++
			}
		}
		if valid < minMomentumObs {
			continue
		}

		current, ok := panel.LastValid(col)
		if !ok {
			continue
		}
		past6M, ok6 := panel.ValidAtOrBefore(col, cutoff6M)
		past12M, ok12 := panel.ValidAtOrBefore(col, cutoff12M)
		if !ok6 || !ok12 || past6M == 0 || past12M == 0 {
			continue
		}

		mom6 := (current - past6M) / past6M * 100
		mom12 := (current - past12M) / past12M * 100
		out[symbol] = momentumRow{
			mom6M:  mom6,
			mom12M: mom12,
			avg:    (mom6 + mom12) / 2,
		}
	}
	return out, nil
}

// collectSnapshots fetches snapshot ratios per symbol. Failures drop
// the symbol, never the run.
func (s *Scorer) collectSnapshots(ctx context.Context, symbols []string, progress contracts.ProgressFunc) map[string]*contracts.Snapshot {
	out := make(map[string]*contracts.Snapshot, len(symbols))
	for i, symbol := range symbols {
		snapshot, err := s.fundamentals.GetSnapshot(ctx, symbol)
		if err == nil && snapshot != nil {
			out[symbol] = snapshot
		}
		progress.Report(float64(i+1)/float64(len(symbols)), "Analyzing fundamentals...")
	}
	return out
}

// scoreJoined computes factor and composite scores for the joined
// universe, in join order.
func (s *Scorer) scoreJoined(joined []string, momentum map[string]momentumRow, snapshots map[string]*contracts.Snapshot) []ScoreRow {
	n := len(joined)

	momSamples := make([]Sample, n)
	perSamples := make([]Sample, n)
	roaSamples := make([]Sample, n)
	roeSamples := make([]Sample, n)
	marginSamples := make([]Sample, n)
	yieldSamples := make([]Sample, n)

	for i, symbol := range joined {
		snap := snapshots[symbol]
		momSamples[i] = Sample{Symbol: symbol, Value: contracts.Some(momentum[symbol].avg)}
		perSamples[i] = Sample{Symbol: symbol, Value: usablePER(snap.TrailingPE)}
		roaSamples[i] = Sample{Symbol: symbol, Value: snap.ROA}
		roeSamples[i] = Sample{Symbol: symbol, Value: snap.ROE}
		marginSamples[i] = Sample{Symbol: symbol, Value: snap.NetMargin}
		yieldSamples[i] = Sample{Symbol: symbol, Value: snap.DividendYield}
	}

	// Directions are fixed per factor family; Rank only fails on an
	// invalid direction, which these constants are not.
	momScores, _ := Rank(momSamples, contracts.HigherIsBetter)
	perScores, _ := Rank(perSamples, contracts.LowerIsBetter)
	roaScores, _ := Rank(roaSamples, contracts.HigherIsBetter)
	roeScores, _ := Rank(roeSamples, contracts.HigherIsBetter)
	marginScores, _ := Rank(marginSamples, contracts.HigherIsBetter)
	yieldScores, _ := Rank(yieldSamples, contracts.HigherIsBetter)

	rows := make([]ScoreRow, n)
	for i, symbol := range joined {
		snap := snapshots[symbol]
		mom := momentum[symbol]

		momScore := scoreOr(momScores, symbol, neutralScore)
		valScore := scoreOr(perScores, symbol, neutralScore)
		qualScore := (scoreOr(roaScores, symbol, neutralScore) +
			scoreOr(roeScores, symbol, neutralScore) +
			scoreOr(marginScores, symbol, neutralScore)) / 3
		divScore := scoreOr(yieldScores, symbol, missingDividendScore)

		rows[i] = ScoreRow{
			Symbol:         symbol,
			Name:           snap.Name,
			MomentumScore:  momScore,
			ValuationScore: valScore,
			QualityScore:   qualScore,
			DividendScore:  divScore,
			Composite: momScore*s.weights.Momentum +
				valScore*s.weights.Valuation +
				qualScore*s.weights.Quality +
				divScore*s.weights.Dividends,
			Mom6M:         contracts.Some(mom.mom6M),
			Mom12M:        contracts.Some(mom.mom12M),
			PER:           snap.TrailingPE,
			ROA:           snap.ROA,
			ROE:           snap.ROE,
			NetMargin:     snap.NetMargin,
			DividendYield: snap.DividendYield,
		}
	}
	return rows
}

// usablePER nulls out non-positive or implausibly large PER values.
func usablePER(per contracts.Value) contracts.Value {
	if !per.Valid || per.Float <= 0 || per.Float > maxUsablePER {
		return contracts.Null()
	}
	return per
}

func scoreOr(scores map[string]float64, symbol string, fallback float64) float64 {
	if score, ok := scores[symbol]; ok {
		return score
	}
	return fallback
}
