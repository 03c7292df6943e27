package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmvaldez/finscope/internal/api"
	"github.com/dmvaldez/finscope/internal/api/handlers"
	"github.com/dmvaldez/finscope/internal/provider/pricestore"
	"github.com/dmvaldez/finscope/internal/scheduler"
	"github.com/dmvaldez/finscope/internal/universe"
	"github.com/dmvaldez/finscope/pkg/database"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Starts the REST API server with scan, portfolio and multifactor
endpoints plus WebSocket progress streams.

Endpoints:
  GET  /health
  GET  /api/scan/{market,fundamentals,dividends,pe,peg}
  POST /api/portfolio/analyze
  GET  /api/multifactor
  WS   /api/ws/multifactor
  WS   /api/ws/scan/fundamentals

When the database is enabled a local price store is maintained, and
SCAN_CRON schedules background price refresh and cache warm-up.

Example:
  go run ./cmd/finscope api
  go run ./cmd/finscope api --port 8098`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg, log := rt.cfg, rt.log
	if apiPort != "" {
		cfg.Port = apiPort
	}

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// Optional local price store and background jobs.
	var sched *scheduler.Scheduler
	if cfg.Database.Enabled {
		db, err := database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()

		store := pricestore.New(db.Pool, rt.provider, log)
		if err := store.EnsureSchema(cmd.Context()); err != nil {
			return fmt.Errorf("ensure price store schema: %w", err)
		}
		log.Info("Connected to database")

		if cfg.ScanCronSpec != "" {
			sched = scheduler.New(log)
			jobs := []scheduler.Job{
				scheduler.NewPriceRefreshJob(store, rt.catalog, universe.MarketNYSE, cfg.ScanCronSpec, log),
				scheduler.NewPriceRefreshJob(store, rt.catalog, universe.MarketBYMA, cfg.ScanCronSpec, log),
				scheduler.NewSnapshotWarmJob(rt.provider, rt.catalog, universe.MarketNYSE, cfg.ScanCronSpec, log),
			}
			for _, job := range jobs {
				if err := sched.AddJob(job); err != nil {
					return fmt.Errorf("schedule job: %w", err)
				}
			}
			sched.Start()
			defer sched.Stop()
		}
	}

	handler := handlers.New(
		rt.catalog,
		rt.market,
		rt.fundamentals,
		rt.dividends,
		rt.valuation,
		rt.analyzer,
		rt.scorer,
		log,
	)
	router := api.NewRouter(handler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
