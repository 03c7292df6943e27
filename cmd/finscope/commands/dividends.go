package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmvaldez/finscope/internal/universe"
)

// dividendsCmd represents the dividend scan command
var dividendsCmd = &cobra.Command{
	Use:   "dividends",
	Short: "Rank dividend payers by yield and payout",
	Long: `Collects per-asset dividend payouts over the lookback window plus
the snapshot yield, then ranks top and bottom payers by yield.
Assets without payouts or yield are excluded.

Example:
  go run ./cmd/finscope dividends
  go run ./cmd/finscope dividends --lookback 180`,
	RunE: runDividendScan,
}

var dividendLookbackDays int

func init() {
	rootCmd.AddCommand(dividendsCmd)

	dividendsCmd.Flags().IntVar(&dividendLookbackDays, "lookback", 0, "payout lookback in days (0 = one year)")
}

func runDividendScan(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	symbols, err := rt.universeSymbols(universe.FeatureDividends)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Dividend scan · %s · %d symbols", marketFlag, len(symbols)))

	result, err := rt.dividends.Scan(cmd.Context(), symbols, dividendLookbackDays, progressPrinter("Dividends"))
	if err != nil {
		return err
	}

	fmt.Printf("\nPayout history · %d payers\n", len(result.Rows))
	widths := []int{10, 28, 12, 10, 10}
	PrintTableHeader([]string{"Symbol", "Name", "Total paid", "Payments", "Yield %"}, widths)
	for _, row := range result.Rows {
		PrintTableRow([]string{
			row.Symbol,
			truncate(row.Name, 28),
			fmtValue(row.TotalPaid),
			fmt.Sprintf("%d", row.Payments),
			fmtValue(row.YieldPct),
		}, widths)
	}

	printRankingTable("Top payers by yield", "Yield %", result.TopPayers)
	printRankingTable("Bottom payers by yield", "Yield %", result.BottomPayers)

	return nil
}
