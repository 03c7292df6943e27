package contracts

// RankingEntry is one row of a ranking table. Rank 1 is best per the
// table's sort direction.
type RankingEntry struct {
	Rank   int     `json:"rank"`
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
}

// RankingTable is an ordered ranking with a dense 1..N rank sequence.
type RankingTable []RankingEntry

// Symbols returns the ranked symbols in order.
func (t RankingTable) Symbols() []string {
	out := make([]string, len(t))
	for i, e := range t {
		out[i] = e.Symbol
	}
	return out
}
