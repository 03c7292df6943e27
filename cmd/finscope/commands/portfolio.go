package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmvaldez/finscope/internal/contracts"
)

// portfolioCmd represents the portfolio analysis command
var portfolioCmd = &cobra.Command{
	Use:   "portfolio SYMBOL=WEIGHT [SYMBOL=WEIGHT...]",
	Short: "Analyze a weighted portfolio's risk and return",
	Long: `Downloads price history for the given holdings and computes
annualized return, volatility, Sharpe, max drawdown, the base-100
cumulative value series and the pairwise correlation matrix.

Weights are normalized to sum to 1.

Example:
  go run ./cmd/finscope portfolio AAPL=0.5 MSFT=0.3 KO=0.2
  go run ./cmd/finscope portfolio --lookback 730 SPY=1`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPortfolioAnalysis,
}

var portfolioLookbackDays int

func init() {
	rootCmd.AddCommand(portfolioCmd)

	portfolioCmd.Flags().IntVar(&portfolioLookbackDays, "lookback", 0, "price lookback in days (0 = one year)")
}

// parseHoldings turns SYMBOL=WEIGHT arguments into a weight vector.
func parseHoldings(args []string) (contracts.Weights, error) {
	weights := make(contracts.Weights, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("invalid holding %q, expected SYMBOL=WEIGHT", arg)
		}
		weight, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight in %q: %w", arg, err)
		}
		weights[strings.ToUpper(parts[0])] = weight
	}
	return weights, nil
}

func runPortfolioAnalysis(cmd *cobra.Command, args []string) error {
	weights, err := parseHoldings(args)
	if err != nil {
		return err
	}

	rt, err := newRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	PrintHeader(fmt.Sprintf("Portfolio analysis · %d holdings", len(weights)))

	analysis, err := rt.analyzer.Analyze(cmd.Context(), weights, portfolioLookbackDays, progressPrinter("Portfolio"))
	if err != nil {
		return err
	}

	fmt.Println("\nPer-asset metrics")
	widths := []int{10, 12, 12, 10}
	PrintTableHeader([]string{"Symbol", "Return %", "Vol %", "Sharpe"}, widths)
	for _, asset := range analysis.Assets {
		PrintTableRow([]string{
			asset.Symbol,
			fmt.Sprintf("%.2f", asset.AnnualReturn*100),
			fmt.Sprintf("%.2f", asset.AnnualVolatility*100),
			fmt.Sprintf("%.2f", asset.Sharpe),
		}, widths)
	}

	report := analysis.Portfolio
	fmt.Println("\nPortfolio")
	PrintSeparator()
	fmt.Printf("  Annual return     : %8.2f%%\n", report.AnnualReturn*100)
	fmt.Printf("  Annual volatility : %8.2f%%\n", report.AnnualVolatility*100)
	fmt.Printf("  Sharpe            : %8.2f\n", report.Sharpe)
	fmt.Printf("  Max drawdown      : %8.2f%%\n", report.MaxDrawdown*100)
	if report.DroppedWeights > 0 {
		fmt.Printf("  Dropped holdings  : %8d (no price data)\n", report.DroppedWeights)
	}

	fmt.Println("\nCorrelation")
	corrWidths := make([]int, len(analysis.Symbols)+1)
	header := make([]string, len(analysis.Symbols)+1)
	corrWidths[0] = 8
	header[0] = ""
	for i, symbol := range analysis.Symbols {
		corrWidths[i+1] = 8
		header[i+1] = symbol
	}
	PrintTableHeader(header, corrWidths)
	for i, symbol := range analysis.Symbols {
		row := make([]string, len(analysis.Symbols)+1)
		row[0] = symbol
		for j := range analysis.Symbols {
			row[j+1] = fmt.Sprintf("%.2f", analysis.Correlation[i][j])
		}
		PrintTableRow(row, corrWidths)
	}

	return nil
}
