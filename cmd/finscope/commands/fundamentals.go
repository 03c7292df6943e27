package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmvaldez/finscope/internal/universe"
)

// fundamentalsCmd represents the fundamentals scan command
var fundamentalsCmd = &cobra.Command{
	Use:   "fundamentals",
	Short: "Rank PER, ROE and net margin over trailing windows",
	Long: `Downloads quarterly statements for the fundamentals universe and
ranks PER, ROE and net margin over every trailing window (1 to 4
quarters). Statements are fetched once and reused across windows.

Example:
  go run ./cmd/finscope fundamentals
  go run ./cmd/finscope fundamentals --market byma`,
	RunE: runFundamentalsScan,
}

func init() {
	rootCmd.AddCommand(fundamentalsCmd)
}

func runFundamentalsScan(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	symbols, err := rt.universeSymbols(universe.FeatureFundamentals)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Fundamentals scan · %s · %d symbols", marketFlag, len(symbols)))

	rankings, err := rt.fundamentals.Scan(cmd.Context(), symbols, progressPrinter("Fundamentals"))
	if err != nil {
		return err
	}

	for _, ranking := range rankings {
		fmt.Printf("\nMetric: %s · window %s (%d quarters)\n", ranking.Metric, ranking.Window.Label, ranking.Window.Quarters)
		PrintSeparator()
		printRankingTable("Best", string(ranking.Metric), ranking.Top)
		printRankingTable("Worst", string(ranking.Metric), ranking.Bottom)
	}

	return nil
}
