package yahoo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/pkg/redis"
)

// GetDividends returns cash dividends paid since the given date,
// oldest first. The chart API carries payouts as events alongside the
// price bars.
func (c *Client) GetDividends(ctx context.Context, symbol string, since time.Time) ([]contracts.DividendPayment, error) {
	cacheKey := fmt.Sprintf("dividends:%s:%s", symbol, since.Format("2006-01-02"))
	if c.cache != nil {
		var cached []contracts.DividendPayment
		if hit, _ := c.cache.Get(ctx, cacheKey, &cached); hit {
			return cached, nil
		}
	}

	url := fmt.Sprintf("%s/v8/finance/chart/%s?period1=%d&period2=%d&interval=1d&events=div",
		c.baseURL, symbol, since.Unix(), time.Now().Unix())

	var decoded chartResponse
	if err := c.httpClient.GetJSON(ctx, url, &decoded); err != nil {
		return nil, err
	}
	if decoded.Chart.Error != nil {
		return nil, fmt.Errorf("chart API error for %s: %s", symbol, decoded.Chart.Error.Description)
	}
	if len(decoded.Chart.Result) == 0 || decoded.Chart.Result[0].Events == nil {
		return nil, nil
	}

	events := decoded.Chart.Result[0].Events.Dividends
	payments := make([]contracts.DividendPayment, 0, len(events))
	for _, event := range events {
		date := time.Unix(event.Date, 0).UTC()
		if date.Before(since) {
			continue
		}
		payments = append(payments, contracts.DividendPayment{
			Date:   date,
			Amount: event.Amount,
		})
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].Date.Before(payments[j].Date) })

	c.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"payments": len(payments),
	}).Debug("Dividend history downloaded")

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, payments, redis.TTLStatement); err != nil {
			c.logger.WithError(err).WithField("symbol", symbol).Debug("Dividend cache write failed")
		}
	}
	return payments, nil
}
