package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gridoku",
	Short: "Generate, solve, and rate number-placement puzzles",
	Long: `gridoku is a deterministic puzzle engine for 4x4, 6x6, and 9x9
boards. It generates puzzles with a guaranteed unique solution, rates
their true logical difficulty by simulating human techniques, and can
serve the engine over a JSON API.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
