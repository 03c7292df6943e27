package factor

import (
	"sort"

	"github.com/dmvaldez/finscope/internal/contracts"
)

// Sample is one asset's raw value for a factor, possibly null.
type Sample struct {
	Symbol string
	Value  contracts.Value
}

// Rank converts a metric series into percentile scores in [0,100].
//
// Non-null values are ranked with average ranks under ties (two tied
// values both receive the mean of the positions they would occupy),
// then rescaled as (rank-1)/(n-1)*100 over the n valid entries. With
// HigherIsBetter the highest value scores 100; with LowerIsBetter the
// mapping is inverted so the lowest value scores 100.
//
// Fewer than 2 valid values means there is no spread: every valid
// entry scores 0. Null inputs are left unscored (absent from the
// result); the caller owns any neutral-fallback policy.
func Rank(samples []Sample, dir contracts.Direction) (map[string]float64, error) {
	if !dir.Valid() {
		return nil, &contracts.ConfigError{Field: "direction", Reason: "unknown direction"}
	}

	type valued struct {
		symbol string
		value  float64
	}
	valid := make([]valued, 0, len(samples))
	for _, s := range samples {
		if s.Value.Valid {
			valid = append(valid, valued{symbol: s.Symbol, value: s.Value.Float})
		}
	}

	scores := make(map[string]float64, len(valid))
	n := len(valid)
	if n == 0 {
		return scores, nil
	}
	if n == 1 {
		scores[valid[0].symbol] = 0
		return scores, nil
	}

	// Sort so position 0 holds rank 1 (the worst value per direction).
	if dir == contracts.HigherIsBetter {
		sort.SliceStable(valid, func(i, j int) bool { return valid[i].value < valid[j].value })
	} else {
		sort.SliceStable(valid, func(i, j int) bool { return valid[i].value > valid[j].value })
	}

	// Average-rank ties: every member of a tie group gets the mean of
	// the rank positions the group spans.
	for i := 0; i < n; {
		j := i
		for j < n && valid[j].value == valid[i].value {
			j++
		}
		// positions i+1 .. j hold ranks i+1 .. j
		avgRank := float64(i+1+j) / 2.0
		score := (avgRank - 1) / float64(n-1) * 100
		for k := i; k < j; k++ {
			scores[valid[k].symbol] = score
		}
		i = j
	}

	return scores, nil
}
