package main

import (
	"os"

	"github.com/dmvaldez/finscope/cmd/finscope/commands"
)

// main is the entry point for the finscope CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
