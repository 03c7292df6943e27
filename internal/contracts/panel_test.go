package contracts

import (
	"errors"
	"math"
	"testing"
	"time"
)

func day(n int) time.Time {
	return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

func TestPricePanel_DropEmptyColumns(t *testing.T) {
	p := NewPricePanel([]time.Time{day(0), day(1)}, []string{"AAPL", "DEAD", "MELI"})
	p.Cells[0][0] = Some(100)
	p.Cells[1][0] = Some(101)
	p.Cells[1][2] = Some(50)

	clean, dropped := p.DropEmptyColumns()
	if dropped != 1 {
		t.Errorf("dropped = %d, want 1", dropped)
	}
	if clean.Cols() != 2 {
		t.Fatalf("cols = %d, want 2", clean.Cols())
	}
	if clean.Symbols[0] != "AAPL" || clean.Symbols[1] != "MELI" {
		t.Errorf("symbols = %v", clean.Symbols)
	}
}

func TestPricePanel_DropIncompleteRows(t *testing.T) {
	p := NewPricePanel([]time.Time{day(0), day(1), day(2)}, []string{"A", "B"})
	p.Cells[0][0] = Some(1)
	p.Cells[0][1] = Some(2)
	p.Cells[1][0] = Some(1.1) // B missing on day 1
	p.Cells[2][0] = Some(1.2)
	p.Cells[2][1] = Some(2.2)

	clean := p.DropIncompleteRows()
	if clean.Rows() != 2 {
		t.Fatalf("rows = %d, want 2", clean.Rows())
	}
	if !clean.Dates[1].Equal(day(2)) {
		t.Errorf("second kept row = %v, want %v", clean.Dates[1], day(2))
	}
}

func TestPricePanel_Returns(t *testing.T) {
	p := NewPricePanel([]time.Time{day(0), day(1), day(2)}, []string{"A"})
	p.Cells[0][0] = Some(100)
	p.Cells[1][0] = Some(110)
	p.Cells[2][0] = Some(99)

	rs, err := p.Returns()
	if err != nil {
		t.Fatalf("Returns failed: %v", err)
	}
	if rs.Len() != 2 {
		t.Fatalf("len = %d, want 2", rs.Len())
	}
	if math.Abs(rs.Rows[0][0]-0.10) > 1e-12 {
		t.Errorf("first return = %v, want 0.10", rs.Rows[0][0])
	}
	if math.Abs(rs.Rows[1][0]-(-0.10)) > 1e-12 {
		t.Errorf("second return = %v, want -0.10", rs.Rows[1][0])
	}
}

func TestPricePanel_Returns_Insufficient(t *testing.T) {
	p := NewPricePanel([]time.Time{day(0)}, []string{"A"})
	p.Cells[0][0] = Some(100)

	_, err := p.Returns()
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("err = %v, want ErrInsufficientData", err)
	}
}

func TestPricePanel_ValidAtOrBefore(t *testing.T) {
	p := NewPricePanel([]time.Time{day(0), day(5), day(10)}, []string{"A"})
	p.Cells[0][0] = Some(10)
	p.Cells[2][0] = Some(30) // day(5) is null

	// Cutoff between observations: skip the null, land on day(0).
	got, ok := p.ValidAtOrBefore(0, day(7))
	if !ok || got != 10 {
		t.Errorf("got %v ok=%v, want 10", got, ok)
	}

	// Cutoff before any observation.
	if _, ok := p.ValidAtOrBefore(0, day(-1)); ok {
		t.Error("expected no value before the first date")
	}
}

func TestWeights_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		wantErr bool
	}{
		{"valid", Weights{"A": 10, "B": 30}, false},
		{"empty", Weights{}, true},
		{"zero sum", Weights{"A": 0, "B": 0}, true},
		{"negative", Weights{"A": -1, "B": 2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.weights.Normalize()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !IsConfigError(err) {
					t.Errorf("expected ConfigError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize failed: %v", err)
			}
			sum := 0.0
			for _, w := range got {
				sum += w
			}
			if math.Abs(sum-1.0) > 1e-12 {
				t.Errorf("normalized sum = %v, want 1", sum)
			}
		})
	}
}

func TestProgressFunc_NilSafe(t *testing.T) {
	var f ProgressFunc
	f.Report(0.5, "no-op") // must not panic
	f.Scaled(0, 1).Report(0.5, "still no-op")
}

func TestProgressFunc_Scaled(t *testing.T) {
	var got []float64
	var f ProgressFunc = func(fraction float64, _ string) {
		got = append(got, fraction)
	}

	sub := f.Scaled(0.35, 0.90)
	sub.Report(0.0, "")
	sub.Report(0.5, "")
	sub.Report(1.0, "")

	want := []float64{0.35, 0.625, 0.90}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("fraction[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
