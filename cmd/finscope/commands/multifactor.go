package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmvaldez/finscope/internal/universe"
)

// multifactorCmd represents the composite ranking command
var multifactorCmd = &cobra.Command{
	Use:   "multifactor",
	Short: "Build the weighted multi-factor composite ranking",
	Long: `Scores the multifactor universe on momentum, valuation, quality
and dividend factors, combines them with fixed weights and prints
the top of the composite ranking.

Example:
  go run ./cmd/finscope multifactor
  go run ./cmd/finscope multifactor --market byma`,
	RunE: runMultifactor,
}

func init() {
	rootCmd.AddCommand(multifactorCmd)
}

func runMultifactor(cmd *cobra.Command, args []string) error {
	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	symbols, err := rt.universeSymbols(universe.FeatureMultifactor)
	if err != nil {
		return err
	}

	PrintHeader(fmt.Sprintf("Multifactor ranking · %s · %d symbols", marketFlag, len(symbols)))

	result, err := rt.scorer.Score(cmd.Context(), symbols, progressPrinter("Multifactor"))
	if err != nil {
		return err
	}

	fmt.Println()
	widths := []int{4, 10, 22, 10, 8, 8, 8, 8}
	PrintTableHeader([]string{"#", "Symbol", "Name", "Composite", "Mom", "Val", "Qual", "Div"}, widths)
	for _, row := range result.Rows {
		PrintTableRow([]string{
			fmt.Sprintf("%d", row.Rank),
			row.Symbol,
			truncate(row.Name, 22),
			fmt.Sprintf("%.2f", row.Composite),
			fmt.Sprintf("%.1f", row.MomentumScore),
			fmt.Sprintf("%.1f", row.ValuationScore),
			fmt.Sprintf("%.1f", row.QualityScore),
			fmt.Sprintf("%.1f", row.DividendScore),
		}, widths)
	}

	fmt.Println()
	PrintSeparator()
	fmt.Printf("Universe %d · momentum %d · fundamentals %d · scored %d · dropped %d\n",
		result.UniverseSize, result.MomentumAssets, result.FundamentalAssets,
		result.ScoredAssets, result.DroppedAssets)
	fmt.Printf("Coverage: %.0f%%\n", result.CoverageRate()*100)

	return nil
}
