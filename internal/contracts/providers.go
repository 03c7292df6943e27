package contracts

import (
	"context"
	"time"
)

// PriceProvider returns adjusted close price history. Symbols with no
// data are omitted from the panel rather than failing the whole call.
type PriceProvider interface {
	GetPrices(ctx context.Context, symbols []string, lookbackDays int) (*PricePanel, error)
}

// DividendPayment is one cash dividend.
type DividendPayment struct {
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// DividendProvider returns the dividend history for one symbol since a
// given date, ordered by date ascending.
type DividendProvider interface {
	GetDividends(ctx context.Context, symbol string, since time.Time) ([]DividendPayment, error)
}

// QuarterRecord holds one quarter of reported financials.
// PeriodIdx 0 is the most recent quarter.
type QuarterRecord struct {
	PeriodIdx int       `json:"period_idx"`
	EndDate   time.Time `json:"end_date"`
	Revenue   Value     `json:"revenue"`
	NetIncome Value     `json:"net_income"`
	Equity    Value     `json:"equity"`
	EPS       Value     `json:"eps"`
}

// Snapshot holds the current snapshot ratios for one symbol. Ratio
// percentages (ROA, ROE, NetMargin, DividendYield) are in percent.
type Snapshot struct {
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Sector        string `json:"sector"`
	Price         Value  `json:"price"`
	TrailingPE    Value  `json:"trailing_pe"`
	ForwardPE     Value  `json:"forward_pe"`
	PEG           Value  `json:"peg"`
	ROA           Value  `json:"roa_pct"`
	ROE           Value  `json:"roe_pct"`
	NetMargin     Value  `json:"net_margin_pct"`
	DividendYield Value  `json:"dividend_yield_pct"`
}

// FundamentalsProvider returns quarterly statements and snapshot ratios.
type FundamentalsProvider interface {
	// GetQuarterlyFinancials returns up to 4 period-indexed records,
	// most recent first. An empty slice means no data, not an error.
	GetQuarterlyFinancials(ctx context.Context, symbol string) ([]QuarterRecord, error)
	// GetSnapshot returns current snapshot ratios for a symbol.
	GetSnapshot(ctx context.Context, symbol string) (*Snapshot, error)
}
