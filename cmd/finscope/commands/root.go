package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	marketFlag string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "finscope",
	Short: "Market scanners and portfolio analytics",
	Long: `finscope Unified CLI

Cross-sectional market scanners, fundamentals rankings and
portfolio risk/return analysis over NYSE and BYMA universes.

Usage:
  go run ./cmd/finscope [command]

Examples:
  go run ./cmd/finscope scan --market nyse
  go run ./cmd/finscope multifactor
  go run ./cmd/finscope portfolio AAPL=0.5 MSFT=0.3 KO=0.2
  go run ./cmd/finscope api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&marketFlag, "market", "nyse", "market universe (nyse|byma)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
