package commands

import (
	"fmt"

	"github.com/dmvaldez/finscope/internal/factor"
	"github.com/dmvaldez/finscope/internal/fundamentals"
	"github.com/dmvaldez/finscope/internal/portfolio"
	"github.com/dmvaldez/finscope/internal/provider/yahoo"
	"github.com/dmvaldez/finscope/internal/ranker"
	"github.com/dmvaldez/finscope/internal/scan"
	"github.com/dmvaldez/finscope/internal/stats"
	"github.com/dmvaldez/finscope/internal/universe"
	"github.com/dmvaldez/finscope/pkg/config"
	"github.com/dmvaldez/finscope/pkg/httputil"
	"github.com/dmvaldez/finscope/pkg/logger"
	"github.com/dmvaldez/finscope/pkg/redis"
)

// runtime bundles the wired services every command runs against.
type runtime struct {
	cfg     *config.Config
	log     *logger.Logger
	cache   *redis.Client
	catalog *universe.Catalog

	provider     *yahoo.Client
	market       *scan.MarketScanner
	fundamentals *scan.FundamentalsScanner
	dividends    *scan.DividendScanner
	valuation    *scan.ValuationScanner
	analyzer     *portfolio.Analyzer
	scorer       *factor.Scorer
}

// newRuntime loads config and wires the provider, catalog and scanners.
// The Redis cache is optional; everything else is required.
func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	cache, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	catalog, err := universe.Load(cfg.UniverseFile)
	if err != nil {
		return nil, fmt.Errorf("load universe catalog: %w", err)
	}

	httpClient := httputil.New(log, cfg.MarketData.Timeout).
		WithRateLimit(cfg.MarketData.RequestsPerSec)

	opts := []yahoo.Option{
		yahoo.WithMaxConcurrent(cfg.MarketData.MaxConcurrent),
	}
	if cfg.MarketData.BaseURL != "" {
		opts = append(opts, yahoo.WithBaseURL(cfg.MarketData.BaseURL))
	}
	if cache.Enabled() {
		opts = append(opts, yahoo.WithCache(redis.NewCache(cache, "yahoo")))
	}
	provider := yahoo.NewClient(httpClient, log, opts...)

	rk := ranker.New(log)
	engine := stats.NewEngine(log)
	collector := fundamentals.NewCollector(provider, log)
	aggregator := fundamentals.NewAggregator(log)

	return &runtime{
		cfg:          cfg,
		log:          log,
		cache:        cache,
		catalog:      catalog,
		provider:     provider,
		market:       scan.NewMarketScanner(provider, rk, log),
		fundamentals: scan.NewFundamentalsScanner(collector, aggregator, rk, log),
		dividends:    scan.NewDividendScanner(provider, provider, rk, log),
		valuation:    scan.NewValuationScanner(provider, rk, log),
		analyzer:     portfolio.NewAnalyzer(provider, engine, log),
		scorer:       factor.NewScorer(provider, provider, factor.DefaultWeights(), log),
	}, nil
}

// Close releases held connections.
func (rt *runtime) Close() {
	if rt.cache != nil {
		rt.cache.Close()
	}
}

// universeSymbols resolves the --market flag into a feature symbol list.
func (rt *runtime) universeSymbols(feature universe.Feature) ([]string, error) {
	return rt.catalog.Symbols(universe.Market(marketFlag), feature)
}
