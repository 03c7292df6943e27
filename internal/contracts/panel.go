package contracts

import (
	"time"
)

// PricePanel is a time-indexed table of adjusted close prices.
// Rows are trading days (ascending, unique), columns are asset symbols,
// cells are nullable.
type PricePanel struct {
	Dates   []time.Time `json:"dates"`
	Symbols []string    `json:"symbols"`
	Cells   [][]Value   `json:"cells"` // Cells[row][col]
}

// NewPricePanel creates an empty panel for the given dates and symbols.
func NewPricePanel(dates []time.Time, symbols []string) *PricePanel {
	cells := make([][]Value, len(dates))
	for i := range cells {
		cells[i] = make([]Value, len(symbols))
	}
	return &PricePanel{Dates: dates, Symbols: symbols, Cells: cells}
}

// Rows returns the number of trading days in the panel
func (p *PricePanel) Rows() int {
	return len(p.Dates)
}

// Cols returns the number of asset columns in the panel
func (p *PricePanel) Cols() int {
	return len(p.Symbols)
}

// ColumnIndex returns the column position of a symbol
func (p *PricePanel) ColumnIndex(symbol string) (int, bool) {
	for i, s := range p.Symbols {
		if s == symbol {
			return i, true
		}
	}
	return -1, false
}

// DropEmptyColumns removes columns with no valid observation over the
// whole window. Returns a new panel; the count of dropped symbols is the
// second return value so callers can surface coverage.
func (p *PricePanel) DropEmptyColumns() (*PricePanel, int) {
	keep := make([]int, 0, len(p.Symbols))
	for col := range p.Symbols {
		for row := range p.Dates {
			if p.Cells[row][col].Valid {
				keep = append(keep, col)
				break
			}
		}
	}

	if len(keep) == len(p.Symbols) {
		return p, 0
	}

	out := &PricePanel{
		Dates:   p.Dates,
		Symbols: make([]string, len(keep)),
		Cells:   make([][]Value, len(p.Dates)),
	}
	for i, col := range keep {
		out.Symbols[i] = p.Symbols[col]
	}
	for row := range p.Dates {
		out.Cells[row] = make([]Value, len(keep))
		for i, col := range keep {
			out.Cells[row][i] = p.Cells[row][col]
		}
	}
	return out, len(p.Symbols) - len(keep)
}

// DropIncompleteRows removes rows with any missing value (complete-case
// policy applied before return computation).
func (p *PricePanel) DropIncompleteRows() *PricePanel {
	keep := make([]int, 0, len(p.Dates))
rows:
	for row := range p.Dates {
		for col := range p.Symbols {
			if !p.Cells[row][col].Valid {
				continue rows
			}
		}
		keep = append(keep, row)
	}

	if len(keep) == len(p.Dates) {
		return p
	}

	out := &PricePanel{
		Dates:   make([]time.Time, len(keep)),
		Symbols: p.Symbols,
		Cells:   make([][]Value, len(keep)),
	}
	for i, row := range keep {
		out.Dates[i] = p.Dates[row]
		out.Cells[i] = p.Cells[row]
	}
	return out
}

// Returns derives a simple period-over-period percentage-change series.
// Empty columns are dropped first, then incomplete rows. Fails with
// ErrInsufficientData when fewer than two complete rows remain.
func (p *PricePanel) Returns() (*ReturnSeries, error) {
	clean, _ := p.DropEmptyColumns()
	clean = clean.DropIncompleteRows()

	if clean.Cols() == 0 || clean.Rows() < 2 {
		return nil, ErrInsufficientData
	}

	rs := &ReturnSeries{
		Dates:   clean.Dates[1:],
		Symbols: clean.Symbols,
		Rows:    make([][]float64, clean.Rows()-1),
	}
	for row := 1; row < clean.Rows(); row++ {
		rets := make([]float64, clean.Cols())
		for col := range clean.Symbols {
			prev := clean.Cells[row-1][col].Float
			curr := clean.Cells[row][col].Float
			rets[col] = (curr - prev) / prev
		}
		rs.Rows[row-1] = rets
	}
	return rs, nil
}

// LastValid returns the most recent valid price in a column.
func (p *PricePanel) LastValid(col int) (float64, bool) {
	for row := len(p.Dates) - 1; row >= 0; row-- {
		if p.Cells[row][col].Valid {
			return p.Cells[row][col].Float, true
		}
	}
	return 0, false
}

// ValidAtOrBefore returns the last valid price in a column at or before
// the cutoff date. No interpolation.
func (p *PricePanel) ValidAtOrBefore(col int, cutoff time.Time) (float64, bool) {
	for row := len(p.Dates) - 1; row >= 0; row-- {
		if p.Dates[row].After(cutoff) {
			continue
		}
		if p.Cells[row][col].Valid {
			return p.Cells[row][col].Float, true
		}
	}
	return 0, false
}

// LastDate returns the most recent trading day in the panel.
func (p *PricePanel) LastDate() (time.Time, bool) {
	if len(p.Dates) == 0 {
		return time.Time{}, false
	}
	return p.Dates[len(p.Dates)-1], true
}

// ReturnSeries is a table of simple daily returns derived from a
// complete-case PricePanel: one row fewer, same columns, no nulls.
type ReturnSeries struct {
	Dates   []time.Time `json:"dates"`
	Symbols []string    `json:"symbols"`
	Rows    [][]float64 `json:"rows"`
}

// Len returns the number of return observations
func (r *ReturnSeries) Len() int {
	return len(r.Rows)
}

// Cols returns the number of asset columns
func (r *ReturnSeries) Cols() int {
	return len(r.Symbols)
}

// Column extracts the return series for one column position.
func (r *ReturnSeries) Column(col int) []float64 {
	out := make([]float64, len(r.Rows))
	for i, row := range r.Rows {
		out[i] = row[col]
	}
	return out
}

// ColumnIndex returns the column position of a symbol
func (r *ReturnSeries) ColumnIndex(symbol string) (int, bool) {
	for i, s := range r.Symbols {
		if s == symbol {
			return i, true
		}
	}
	return -1, false
}
