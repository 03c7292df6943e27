package scan

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/internal/ranker"
	"github.com/dmvaldez/finscope/pkg/logger"
)

func newValuationScanner(f *fakeFunds) *ValuationScanner {
	log := logger.NewNop()
	return NewValuationScanner(f, ranker.New(log), log)
}

func TestValuationScanner_PELowHigh(t *testing.T) {
	funds := &fakeFunds{snapshots: map[string]*contracts.Snapshot{
		"CHEAP": {Symbol: "CHEAP", Name: "Cheap", TrailingPE: contracts.Some(6)},
		"FAIR":  {Symbol: "FAIR", Name: "Fair", TrailingPE: contracts.Some(18)},
		"DEAR":  {Symbol: "DEAR", Name: "Dear", TrailingPE: contracts.Some(55)},
		"LOSS":  {Symbol: "LOSS", Name: "Loss", TrailingPE: contracts.Some(-4)},
	}}
	s := newValuationScanner(funds)

	result, err := s.ScanPE(context.Background(), []string{"CHEAP", "FAIR", "DEAR", "LOSS"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "trailing_pe", result.Column)
	require.Len(t, result.Lowest, 3, "negative P/E must be excluded")
	assert.Equal(t, "CHEAP", result.Lowest[0].Symbol)
	assert.Equal(t, "DEAR", result.Highest[0].Symbol)
	assert.NotContains(t, result.Lowest.Symbols(), "LOSS")
}

func TestValuationScanner_PEFallsBackToForward(t *testing.T) {
	funds := &fakeFunds{snapshots: map[string]*contracts.Snapshot{
		"A": {Symbol: "A", Name: "A", TrailingPE: contracts.Null(), ForwardPE: contracts.Some(12)},
		"B": {Symbol: "B", Name: "B", TrailingPE: contracts.Some(-3), ForwardPE: contracts.Some(20)},
	}}
	s := newValuationScanner(funds)

	result, err := s.ScanPE(context.Background(), []string{"A", "B"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "forward_pe", result.Column)
	require.Len(t, result.Lowest, 2)
	assert.Equal(t, "A", result.Lowest[0].Symbol)
}

func TestValuationScanner_PEG(t *testing.T) {
	funds := &fakeFunds{snapshots: map[string]*contracts.Snapshot{
		"GROW": {Symbol: "GROW", Name: "Grower", PEG: contracts.Some(0.8)},
		"SLOW": {Symbol: "SLOW", Name: "Slow", PEG: contracts.Some(3.2)},
		"BAD":  {Symbol: "BAD", Name: "Bad", PEG: contracts.Some(-1)},
	}}
	s := newValuationScanner(funds)

	result, err := s.ScanPEG(context.Background(), []string{"GROW", "SLOW", "BAD"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "peg", result.Column)
	require.Len(t, result.Lowest, 2)
	assert.Equal(t, "GROW", result.Lowest[0].Symbol)
	assert.Equal(t, "SLOW", result.Highest[0].Symbol)
}

func TestValuationScanner_NoUsableValues(t *testing.T) {
	funds := &fakeFunds{snapshots: map[string]*contracts.Snapshot{
		"A": {Symbol: "A", PEG: contracts.Null()},
	}}
	s := newValuationScanner(funds)

	_, err := s.ScanPEG(context.Background(), []string{"A"}, nil)
	assert.ErrorIs(t, err, contracts.ErrInsufficientData)

	_, err = s.ScanPE(context.Background(), []string{"A"}, nil)
	assert.ErrorIs(t, err, contracts.ErrInsufficientData)
}

func TestValuationScanner_SkipsFailedSnapshots(t *testing.T) {
	funds := &fakeFunds{snapshots: map[string]*contracts.Snapshot{
		"OK": {Symbol: "OK", Name: "OK", TrailingPE: contracts.Some(9)},
	}}
	s := newValuationScanner(funds)

	result, err := s.ScanPE(context.Background(), []string{"OK", "BROKEN"}, nil)
	require.NoError(t, err)
	require.Len(t, result.Lowest, 1)
	assert.Equal(t, "OK", result.Lowest[0].Symbol)
}

// errFunds always fails; the scanner must surface no snapshots rather
// than an error.
type errFunds struct{}

func (errFunds) GetSnapshot(context.Context, string) (*contracts.Snapshot, error) {
	return nil, errors.New("down")
}

func (errFunds) GetQuarterlyFinancials(context.Context, string) ([]contracts.QuarterRecord, error) {
	return nil, errors.New("down")
}

func TestValuationScanner_AllSnapshotsFail(t *testing.T) {
	log := logger.NewNop()
	s := NewValuationScanner(errFunds{}, ranker.New(log), log)
	_, err := s.ScanPE(context.Background(), []string{"A", "B"}, nil)
	assert.ErrorIs(t, err, contracts.ErrInsufficientData)
}
