package yahoo

import (
	"context"
	"fmt"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/pkg/redis"
)

// quoteSummaryResponse is the v10 quoteSummary envelope, limited to the
// modules the snapshot needs.
type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				LongName  string `json:"longName"`
				ShortName string `json:"shortName"`
			} `json:"price"`
			SummaryProfile *struct {
				Sector string `json:"sector"`
			} `json:"summaryProfile"`
			SummaryDetail *struct {
				TrailingPE    *rawValue `json:"trailingPE"`
				ForwardPE     *rawValue `json:"forwardPE"`
				DividendYield *rawValue `json:"dividendYield"`
				PreviousClose *rawValue `json:"previousClose"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics *struct {
				PegRatio *rawValue `json:"pegRatio"`
			} `json:"defaultKeyStatistics"`
			FinancialData *struct {
				ReturnOnAssets *rawValue `json:"returnOnAssets"`
				ReturnOnEquity *rawValue `json:"returnOnEquity"`
				ProfitMargins  *rawValue `json:"profitMargins"`
				CurrentPrice   *rawValue `json:"currentPrice"`
			} `json:"financialData"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"quoteSummary"`
}

// GetSnapshot returns the current snapshot ratios for one symbol.
// Yahoo reports ratio fields as fractions; the snapshot carries them in
// percent. When the quote modules lack a name or sector the website
// profile page fills the gap.
func (c *Client) GetSnapshot(ctx context.Context, symbol string) (*contracts.Snapshot, error) {
	cacheKey := "snapshot:" + symbol
	if c.cache != nil {
		var cached contracts.Snapshot
		if hit, _ := c.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, nil
		}
	}

	url := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?modules=price,summaryProfile,summaryDetail,defaultKeyStatistics,financialData",
		c.baseURL, symbol)

	var decoded quoteSummaryResponse
	if err := c.httpClient.GetJSON(ctx, url, &decoded); err != nil {
		return nil, err
	}
	if decoded.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("quoteSummary error for %s: %s", symbol, decoded.QuoteSummary.Error.Description)
	}
	if len(decoded.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("no quoteSummary data for %s", symbol)
	}

	result := decoded.QuoteSummary.Result[0]
	snapshot := &contracts.Snapshot{Symbol: symbol}

	if result.Price != nil {
		snapshot.Name = result.Price.LongName
		if snapshot.Name == "" {
			snapshot.Name = result.Price.ShortName
		}
	}
	if result.SummaryProfile != nil {
		snapshot.Sector = result.SummaryProfile.Sector
	}
	if d := result.SummaryDetail; d != nil {
		snapshot.TrailingPE = asValue(d.TrailingPE)
		snapshot.ForwardPE = asValue(d.ForwardPE)
		snapshot.DividendYield = asPercent(d.DividendYield)
	}
	if k := result.DefaultKeyStatistics; k != nil {
		snapshot.PEG = asValue(k.PegRatio)
	}
	if f := result.FinancialData; f != nil {
		snapshot.ROA = asPercent(f.ReturnOnAssets)
		snapshot.ROE = asPercent(f.ReturnOnEquity)
		snapshot.NetMargin = asPercent(f.ProfitMargins)
		snapshot.Price = asValue(f.CurrentPrice)
	}
	if !snapshot.Price.Valid && result.SummaryDetail != nil {
		snapshot.Price = asValue(result.SummaryDetail.PreviousClose)
	}

	if snapshot.Name == "" || snapshot.Sector == "" {
		c.fillFromProfile(ctx, snapshot)
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, cacheKey, snapshot, redis.TTLSnapshot); err != nil {
			c.logger.WithError(err).WithField("symbol", symbol).Debug("Snapshot cache write failed")
		}
	}
	return snapshot, nil
}

func asValue(v *rawValue) contracts.Value {
	if !v.valid() {
		return contracts.Null()
	}
	return contracts.Some(v.value())
}

// asPercent converts Yahoo's fractional ratios to percent.
func asPercent(v *rawValue) contracts.Value {
	if !v.valid() {
		return contracts.Null()
	}
	return contracts.Some(v.value() * 100)
}
