package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/pkg/redis"
)

// timeseries types requested for quarterly statements.
const (
	tsRevenue   = "quarterlyTotalRevenue"
	tsNetIncome = "quarterlyNetIncome"
	tsEquity    = "quarterlyStockholdersEquity"
	tsEPS       = "quarterlyDilutedEPS"
)

// tsEnvelope is the fundamentals-timeseries envelope. Each result
// carries its series under a key named after the requested type, so
// the payload is decoded in two passes.
type tsEnvelope struct {
	Timeseries struct {
		Result []json.RawMessage `json:"result"`
		Error  *apiError         `json:"error"`
	} `json:"timeseries"`
}

type tsMeta struct {
	Meta struct {
		Type []string `json:"type"`
	} `json:"meta"`
}

type tsPoint struct {
	AsOfDate      string    `json:"asOfDate"`
	ReportedValue *rawValue `json:"reportedValue"`
}

// GetQuarterlyFinancials returns up to 4 quarters of reported revenue,
// net income, equity and diluted EPS, most recent first. Quarters with
// a partial statement carry nulls for the missing figures.
func (c *Client) GetQuarterlyFinancials(ctx context.Context, symbol string) ([]contracts.QuarterRecord, error) {
	cacheKey := "quarters:" + symbol
	if c.cache != nil {
		var cached []contracts.QuarterRecord
		if hit, _ := c.cache.Get(ctx, cacheKey, &cached); hit {
			return cached, nil
		}
	}

	now := time.Now()
	types := strings.Join([]string{tsRevenue, tsNetIncome, tsEquity, tsEPS}, ",")
	url := fmt.Sprintf("%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?type=%s&period1=%d&period2=%d",
		c.baseURL, symbol, types, now.AddDate(-2, 0, 0).Unix(), now.Unix())

	var decoded tsEnvelope
	if err := c.httpClient.GetJSON(ctx, url, &decoded); err != nil {
		return nil, err
	}
	if decoded.Timeseries.Error != nil {
		return nil, fmt.Errorf("timeseries error for %s: %s", symbol, decoded.Timeseries.Error.Description)
	}

	// byDate[asOfDate][type] = reported value
	byDate := make(map[string]map[string]float64)
	for _, raw := range decoded.Timeseries.Result {
		var meta tsMeta
		if err := json.Unmarshal(raw, &meta); err != nil || len(meta.Meta.Type) == 0 {
			continue
		}
		seriesType := meta.Meta.Type[0]

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		payload, ok := fields[seriesType]
		if !ok {
			continue
		}
		var points []*tsPoint
		if err := json.Unmarshal(payload, &points); err != nil {
			continue
		}
		for _, p := range points {
			if p == nil || !p.ReportedValue.valid() {
				continue
			}
			if byDate[p.AsOfDate] == nil {
				byDate[p.AsOfDate] = make(map[string]float64)
			}
			byDate[p.AsOfDate][seriesType] = p.ReportedValue.value()
		}
	}

	records := buildQuarterRecords(byDate)

	c.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"quarters": len(records),
	}).Debug("Quarterly financials downloaded")

	if c.cache != nil && len(records) > 0 {
		if err := c.cache.Set(ctx, cacheKey, records, redis.TTLStatement); err != nil {
			c.logger.WithError(err).WithField("symbol", symbol).Debug("Statement cache write failed")
		}
	}
	return records, nil
}

// buildQuarterRecords indexes the newest 4 report dates as period 0..3.
func buildQuarterRecords(byDate map[string]map[string]float64) []contracts.QuarterRecord {
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	if len(dates) > 4 {
		dates = dates[:4]
	}

	records := make([]contracts.QuarterRecord, 0, len(dates))
	for idx, date := range dates {
		endDate, _ := time.Parse("2006-01-02", date)
		values := byDate[date]
		records = append(records, contracts.QuarterRecord{
			PeriodIdx: idx,
			EndDate:   endDate,
			Revenue:   fieldValue(values, tsRevenue),
			NetIncome: fieldValue(values, tsNetIncome),
			Equity:    fieldValue(values, tsEquity),
			EPS:       fieldValue(values, tsEPS),
		})
	}
	return records
}

func fieldValue(values map[string]float64, key string) contracts.Value {
	if v, ok := values[key]; ok {
		return contracts.Some(v)
	}
	return contracts.Null()
}
