package commands

import (
	"fmt"

	"github.com/dmvaldez/finscope/internal/contracts"
)

// ═══════════════════════════════════════════════════════════
// Common formatting utilities shared by every command
// ═══════════════════════════════════════════════════════════

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println("───────────────────────────────────────────────────────────")
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println("═══════════════════════════════════════════════════════════")
}

// PrintHeader prints a section header between double separators
func PrintHeader(title string) {
	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  %s\n", title)
	PrintDoubleSeparator()
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Printf("✅ %s\n", message)
}

// PrintError prints an error message
func PrintError(message string) {
	fmt.Printf("❌ %s\n", message)
}

// PrintTableHeader prints a table header with a separator line
func PrintTableHeader(columns []string, widths []int) {
	for i, col := range columns {
		fmt.Printf("%-*s", widths[i], col)
		if i < len(columns)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()

	totalWidth := 0
	for i, width := range widths {
		totalWidth += width
		if i < len(widths)-1 {
			totalWidth += 2
		}
	}
	for i := 0; i < totalWidth; i++ {
		fmt.Print("─")
	}
	fmt.Println()
}

// PrintTableRow prints a table row
func PrintTableRow(values []string, widths []int) {
	for i, val := range values {
		fmt.Printf("%-*s", widths[i], val)
		if i < len(values)-1 {
			fmt.Print("  ")
		}
	}
	fmt.Println()
}

// printRankingTable prints an ordered ranking with one value column.
func printRankingTable(title, valueHeader string, table contracts.RankingTable) {
	fmt.Printf("\n%s\n", title)
	widths := []int{4, 10, 28, 12}
	PrintTableHeader([]string{"#", "Symbol", "Name", valueHeader}, widths)
	for _, e := range table {
		PrintTableRow([]string{
			fmt.Sprintf("%d", e.Rank),
			e.Symbol,
			truncate(e.Name, 28),
			fmt.Sprintf("%.2f", e.Value),
		}, widths)
	}
	if len(table) == 0 {
		fmt.Println("  (no entries)")
	}
}

// fmtValue renders a nullable metric, "-" when absent.
func fmtValue(v contracts.Value) string {
	if !v.Valid {
		return "-"
	}
	return fmt.Sprintf("%.2f", v.Float)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}

// progressPrinter renders progress callbacks as console lines.
// Example: [Multifactor]  35% Downloading fundamentals
func progressPrinter(tag string) contracts.ProgressFunc {
	return func(fraction float64, message string) {
		fmt.Printf("[%s] %3.0f%% %s\n", tag, fraction*100, message)
	}
}
