package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "pnr",
	Short: "OpenTracePNR - FPGA technology mapping backend",
	Long: `OpenTracePNR runs the backend passes of the place-and-route flow
over a technology-independent netlist.

Examples:
  pnr pack-io design.json --device xc7a35t.dev --constraints board.pcf`,
	Version: "0.1.0",
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
