package contracts

// Weights maps asset symbols to non-negative portfolio weights.
type Weights map[string]float64

// Normalize validates the weight vector and rescales it to sum to 1.
// Negative weights and empty or zero-sum vectors are caller errors,
// rejected before any computation.
func (w Weights) Normalize() (Weights, error) {
	if len(w) == 0 {
		return nil, &ConfigError{Field: "weights", Reason: "weight vector is empty"}
	}

	sum := 0.0
	for symbol, weight := range w {
		if weight < 0 {
			return nil, &ConfigError{Field: "weights", Reason: "negative weight for " + symbol}
		}
		sum += weight
	}
	if sum == 0 {
		return nil, &ConfigError{Field: "weights", Reason: "weight vector sums to zero"}
	}

	out := make(Weights, len(w))
	for symbol, weight := range w {
		out[symbol] = weight / sum
	}
	return out, nil
}

// Restrict keeps only the entries whose symbol appears in symbols.
// Assets absent from price data are silently dropped, not an error.
func (w Weights) Restrict(symbols []string) Weights {
	out := make(Weights, len(w))
	for _, s := range symbols {
		if weight, ok := w[s]; ok {
			out[s] = weight
		}
	}
	return out
}
