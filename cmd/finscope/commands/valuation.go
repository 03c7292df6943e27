package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmvaldez/finscope/internal/scan"
	"github.com/dmvaldez/finscope/internal/universe"
)

// peCmd represents the price/earnings scan command
var peCmd = &cobra.Command{
	Use:   "pe",
	Short: "Rank the universe by trailing P/E",
	Long: `Ranks the valuation universe by trailing price/earnings ratio,
falling back to forward P/E when no trailing values exist. Only
positive ratios are ranked.

Example:
  go run ./cmd/finscope pe
  go run ./cmd/finscope pe --market byma`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRatioScan(cmd, universe.FeaturePE, func(rt *runtime, symbols []string) (*scan.RatioResult, error) {
			return rt.valuation.ScanPE(cmd.Context(), symbols, progressPrinter("PE"))
		})
	},
}

// pegCmd represents the PEG scan command
var pegCmd = &cobra.Command{
	Use:   "peg",
	Short: "Rank the universe by PEG ratio",
	Long: `Ranks the valuation universe by PEG ratio. Only positive ratios
are ranked.

Example:
  go run ./cmd/finscope peg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRatioScan(cmd, universe.FeaturePEG, func(rt *runtime, symbols []string) (*scan.RatioResult, error) {
			return rt.valuation.ScanPEG(cmd.Context(), symbols, progressPrinter("PEG"))
		})
	},
}

func init() {
	rootCmd.AddCommand(peCmd)
	rootCmd.AddCommand(pegCmd)
}

func runRatioScan(cmd *cobra.Command, feature universe.Feature, run func(*runtime, []string) (*scan.RatioResult, error)) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	symbols, err := rt.universeSymbols(feature)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Valuation scan · %s · %d symbols", marketFlag, len(symbols)))

	result, err := run(rt, symbols)
	if err != nil {
		return err
	}

	fmt.Printf("\nRatio: %s\n", result.Column)
	printRankingTable("Lowest", result.Column, result.Lowest)
	printRankingTable("Highest", result.Column, result.Highest)

	return nil
}
