package scheduler

import (
	"context"
	"fmt"

	"github.com/dmvaldez/finscope/internal/contracts"
	"github.com/dmvaldez/finscope/internal/provider/pricestore"
	"github.com/dmvaldez/finscope/internal/universe"
	"github.com/dmvaldez/finscope/pkg/logger"
)

// PriceRefreshJob keeps the local price store current for the full
// market universe.
type PriceRefreshJob struct {
	store    *pricestore.Store
	catalog  *universe.Catalog
	market   universe.Market
	schedule string
	lookback int
	logger   *logger.Logger
}

// NewPriceRefreshJob creates a price refresh job. The lookback covers
// the longest scan window plus the momentum history.
func NewPriceRefreshJob(store *pricestore.Store, catalog *universe.Catalog, market universe.Market, schedule string, log *logger.Logger) *PriceRefreshJob {
	return &PriceRefreshJob{
		store:    store,
		catalog:  catalog,
		market:   market,
		schedule: schedule,
		lookback: 400,
		logger:   log,
	}
}

func (j *PriceRefreshJob) Name() string {
	return fmt.Sprintf("price-refresh-%s", j.market)
}

func (j *PriceRefreshJob) Schedule() string { return j.schedule }

func (j *PriceRefreshJob) Run(ctx context.Context) error {
	symbols, err := j.catalog.Symbols(j.market, universe.FeatureMarket)
	if err != nil {
		return err
	}
	bars, err := j.store.Refresh(ctx, symbols, j.lookback)
	if err != nil {
		return err
	}
	j.logger.WithFields(map[string]interface{}{
		"market": string(j.market),
		"bars":   bars,
	}).Info("Price store refresh finished")
	return nil
}

// SnapshotWarmJob pre-fetches snapshot ratios for the multifactor
// subset so interactive runs hit a warm cache.
type SnapshotWarmJob struct {
	fundamentals contracts.FundamentalsProvider
	catalog      *universe.Catalog
	market       universe.Market
	schedule     string
	logger       *logger.Logger
}

// NewSnapshotWarmJob creates a snapshot warm-up job.
func NewSnapshotWarmJob(funds contracts.FundamentalsProvider, catalog *universe.Catalog, market universe.Market, schedule string, log *logger.Logger) *SnapshotWarmJob {
	return &SnapshotWarmJob{
		fundamentals: funds,
		catalog:      catalog,
		market:       market,
		schedule:     schedule,
		logger:       log,
	}
}

func (j *SnapshotWarmJob) Name() string {
	return fmt.Sprintf("snapshot-warm-%s", j.market)
}

func (j *SnapshotWarmJob) Schedule() string { return j.schedule }

func (j *SnapshotWarmJob) Run(ctx context.Context) error {
	symbols, err := j.catalog.Symbols(j.market, universe.FeatureMultifactor)
	if err != nil {
		return err
	}

	var warmed, failed int
	for _, symbol := range symbols {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if _, err := j.fundamentals.GetSnapshot(ctx, symbol); err != nil {
			failed++
		} else {
			warmed++
		}
	}

	j.logger.WithFields(map[string]interface{}{
		"market": string(j.market),
		"warmed": warmed,
		"failed": failed,
	}).Info("Snapshot warm-up finished")
	return nil
}
