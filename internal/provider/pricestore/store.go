package pricestore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// Store persists daily bars in Postgres and serves price panels from
// them. It fronts a remote provider: panel reads come from the store,
// Refresh pulls from upstream and upserts.
type Store struct {
	pool     *pgxpool.Pool
	upstream contracts.PriceProvider
	logger   *logger.Logger
}

// New creates a new price store backed by the given pool.
func New(pool *pgxpool.Pool, upstream contracts.PriceProvider, log *logger.Logger) *Store {
	return &Store{pool: pool, upstream: upstream, logger: log}
}

// Schema is the DDL the store expects.
const Schema = `
CREATE TABLE IF NOT EXISTS daily_bars (
	symbol     TEXT             NOT NULL,
	bar_date   DATE             NOT NULL,
	adj_close  DOUBLE PRECISION NOT NULL,
	updated_at TIMESTAMPTZ      NOT NULL DEFAULT now(),
	PRIMARY KEY (symbol, bar_date)
);
CREATE INDEX IF NOT EXISTS daily_bars_date_idx ON daily_bars (bar_date);
`

// EnsureSchema creates the daily_bars table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("create daily_bars schema: %w", err)
	}
	return nil
}

// GetPrices serves a panel from stored bars. Symbols with no stored
// bars in the window are omitted, matching the remote provider's
// contract.
func (s *Store) GetPrices(ctx context.Context, symbols []string, lookbackDays int) (*contracts.PricePanel, error) {
	if lookbackDays <= 0 {
		return nil, &contracts.ConfigError{Field: "lookback_days", Reason: "must be positive"}
	}
	cutoff := time.Now().AddDate(0, 0, -lookbackDays)

	query := `
		SELECT symbol, bar_date, adj_close
		FROM daily_bars
		WHERE symbol = ANY($1) AND bar_date >= $2
		ORDER BY bar_date, symbol
	`
	rows, err := s.pool.Query(ctx, query, symbols, cutoff)
	if err != nil {
		return nil, fmt.Errorf("query daily bars: %w", err)
	}
	defer rows.Close()

	type bar struct {
		symbol string
		date   time.Time
		close  float64
	}
	var bars []bar
	for rows.Next() {
		var b bar
		if err := rows.Scan(&b.symbol, &b.date, &b.close); err != nil {
			return nil, fmt.Errorf("scan daily bar: %w", err)
		}
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily bars: %w", err)
	}

	// Ordered distinct dates and the stored symbol set.
	var dates []time.Time
	stored := make(map[string]bool)
	byKey := make(map[string]float64, len(bars))
	for _, b := range bars {
		if len(dates) == 0 || !dates[len(dates)-1].Equal(b.date) {
			dates = append(dates, b.date)
		}
		stored[b.symbol] = true
		byKey[b.symbol+"|"+b.date.Format("2006-01-02")] = b.close
	}

	present := make([]string, 0, len(stored))
	for _, symbol := range symbols {
		if stored[symbol] {
			present = append(present, symbol)
		}
	}

	panel := contracts.NewPricePanel(dates, present)
	for col, symbol := range present {
		for row, date := range dates {
			if close, ok := byKey[symbol+"|"+date.Format("2006-01-02")]; ok {
				panel.Cells[row][col] = contracts.Some(close)
			}
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"requested": len(symbols),
		"stored":    len(present),
		"dates":     len(dates),
	}).Debug("Price panel served from store")

	return panel, nil
}

// Refresh pulls the window from upstream and upserts every bar.
// Returns the number of bars written.
func (s *Store) Refresh(ctx context.Context, symbols []string, lookbackDays int) (int, error) {
	panel, err := s.upstream.GetPrices(ctx, symbols, lookbackDays)
	if err != nil {
		return 0, fmt.Errorf("refresh from upstream: %w", err)
	}

	batch := &pgx.Batch{}
	for col, symbol := range panel.Symbols {
		for row, date := range panel.Dates {
			cell := panel.Cells[row][col]
			if !cell.Valid {
				continue
			}
			batch.Queue(`
				INSERT INTO daily_bars (symbol, bar_date, adj_close, updated_at)
				VALUES ($1, $2, $3, now())
				ON CONFLICT (symbol, bar_date)
				DO UPDATE SET adj_close = EXCLUDED.adj_close, updated_at = now()
			`, symbol, date, cell.Float)
		}
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return i, fmt.Errorf("upsert daily bar: %w", err)
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"symbols": panel.Cols(),
		"bars":    batch.Len(),
	}).Info("Price store refreshed")

	return batch.Len(), nil
}

// LastDate returns the most recent stored bar date for a symbol.
func (s *Store) LastDate(ctx context.Context, symbol string) (time.Time, bool, error) {
	var date *time.Time
	err := s.pool.QueryRow(ctx,
		`SELECT max(bar_date) FROM daily_bars WHERE symbol = $1`, symbol).Scan(&date)
	if err != nil {
		if err == pgx.ErrNoRows {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, fmt.Errorf("query last bar date: %w", err)
	}
	if date == nil {
		return time.Time{}, false, nil
	}
	return *date, true, nil
}
