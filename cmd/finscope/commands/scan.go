package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmvaldez/finscope/internal/scan"
	"github.com/dmvaldez/finscope/internal/universe"
)

// scanCmd represents the market scan command
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Rank price performance over return windows",
	Long: `Scans the market universe and ranks the top gainers and losers
by percentage price change.

Without --window every default window (30, 90, 180, 365 days) is
scanned from a single price download.

Example:
  go run ./cmd/finscope scan
  go run ./cmd/finscope scan --market byma --window 90`,
	RunE: runMarketScan,
}

var scanWindowDays int

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().IntVar(&scanWindowDays, "window", 0, "single lookback window in days (0 = all defaults)")
}

func runMarketScan(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	symbols, err := rt.universeSymbols(universe.FeatureMarket)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Market scan · %s · %d symbols", marketFlag, len(symbols)))

	var results []scan.WindowResult
	if scanWindowDays > 0 {
		result, err := rt.market.Scan(cmd.Context(), symbols, scanWindowDays)
		if err != nil {
			return err
		}
		results = []scan.WindowResult{*result}
	} else {
		results, err = rt.market.ScanAll(cmd.Context(), symbols, progressPrinter("Market"))
		if err != nil {
			return err
		}
	}

	for _, result := range results {
		fmt.Printf("\nWindow: %d days\n", result.WindowDays)
		PrintSeparator()
		printRankingTable("Top losers", "Change %", result.Losers)
		printRankingTable("Top gainers", "Change %", result.Gainers)
	}

	return nil
}
