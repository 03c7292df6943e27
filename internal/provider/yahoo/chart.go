package yahoo

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dmvaldez/finscope/internal/contracts"
)

// chartResponse is the v8 chart API envelope.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol string `json:"symbol"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
			Events *struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// symbolSeries is one symbol's daily closes keyed by UTC date.
type symbolSeries map[time.Time]float64

// GetPrices downloads adjusted daily closes for the universe and
// assembles them into one panel over the union of trading dates.
// Symbols that fail or return no data are omitted, never zero-filled.
func (c *Client) GetPrices(ctx context.Context, symbols []string, lookbackDays int) (*contracts.PricePanel, error) {
	if lookbackDays <= 0 {
		return nil, &contracts.ConfigError{Field: "lookback_days", Reason: "must be positive"}
	}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make(map[string]symbolSeries, len(symbols))
		sem     = make(chan struct{}, c.maxConcurrent)
	)
	for _, symbol := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			series, err := c.fetchDailyCloses(ctx, symbol, lookbackDays)
			if err != nil {
				c.logger.WithError(err).WithField("symbol", symbol).Debug("Price history unavailable")
				return
			}
			if len(series) == 0 {
				return
			}
			mu.Lock()
			results[symbol] = series
			mu.Unlock()
		}(symbol)
	}
	wg.Wait()

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	panel := assemblePanel(symbols, results)

	c.logger.WithFields(map[string]interface{}{
		"requested": len(symbols),
		"priced":    panel.Cols(),
		"dates":     panel.Rows(),
		"lookback":  lookbackDays,
	}).Info("Price panel downloaded")

	return panel, nil
}

// fetchDailyCloses calls the chart API for one symbol. Adjusted close
// is preferred; raw close is the fallback when Yahoo omits it.
func (c *Client) fetchDailyCloses(ctx context.Context, symbol string, lookbackDays int) (symbolSeries, error) {
	now := time.Now()
	url := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d",
		c.baseURL, symbol, now.AddDate(0, 0, -lookbackDays).Unix(), now.Unix())

	var decoded chartResponse
	if err := c.httpClient.GetJSON(ctx, url, &decoded); err != nil {
		return nil, err
	}
	if decoded.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", symbol, decoded.Chart.Error.Description)
	}
	if len(decoded.Chart.Result) == 0 {
		return nil, nil
	}

	result := decoded.Chart.Result[0]
	var closes []*float64
	if len(result.Indicators.Adjclose) > 0 && len(result.Indicators.Adjclose[0].Adjclose) > 0 {
		closes = result.Indicators.Adjclose[0].Adjclose
	} else if len(result.Indicators.Quote) > 0 {
		closes = result.Indicators.Quote[0].Close
	}

	series := make(symbolSeries, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		series[dateOf(ts)] = *closes[i]
	}
	return series, nil
}

// assemblePanel builds a panel over the union of dates, preserving the
// requested symbol order for symbols that returned data.
func assemblePanel(requested []string, results map[string]symbolSeries) *contracts.PricePanel {
	dateSet := make(map[time.Time]struct{})
	for _, series := range results {
		for date := range series {
			dateSet[date] = struct{}{}
		}
	}
	dates := make([]time.Time, 0, len(dateSet))
	for date := range dateSet {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	symbols := make([]string, 0, len(results))
	for _, symbol := range requested {
		if _, ok := results[symbol]; ok {
			symbols = append(symbols, symbol)
		}
	}

	panel := contracts.NewPricePanel(dates, symbols)
	for col, symbol := range symbols {
		series := results[symbol]
		for row, date := range dates {
			if price, ok := series[date]; ok {
				panel.Cells[row][col] = contracts.Some(price)
			}
		}
	}
	return panel
}

// dateOf truncates a Unix timestamp to its UTC calendar date, so every
// symbol's bar for the same trading day lands on one panel row.
func dateOf(ts int64) time.Time {
	t := time.Unix(ts, 0).UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
