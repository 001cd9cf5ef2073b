// Package cmd provides the CLI commands for the valuation platform.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"valuation-platform/internal/hpi"
)

var (
	snapshotPath string
	indexTable   *hpi.Table
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "valuation",
	Short: "Estimate residential property values from house price indices",
	Long: `valuation estimates the current value of a residential property by
scaling its last sale price with the regional house price index.

The built-in index snapshot covers London, the South East, and the UK
average; pass --snapshot to value against your own index file.

Examples:
  valuation valuate --postcode "SW3 5HL" --price 4500000 --sold-date 2005-06-17 --region-label "London"
  valuation valuate --postcode "M1 3GW" --price 250000 --series
  valuation properties --postcode "SW3 5HL"`,
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initIndexTable)

	rootCmd.PersistentFlags().StringVar(&snapshotPath, "snapshot", "", "index snapshot file (default is the built-in snapshot)")

	// Add subcommands
	rootCmd.AddCommand(valuateCmd)
	rootCmd.AddCommand(propertiesCmd)
	rootCmd.AddCommand(versionCmd)
}

func initIndexTable() {
	if snapshotPath == "" {
		indexTable = hpi.Default()
		return
	}

	table, err := hpi.LoadFile(snapshotPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading snapshot: %v\n", err)
		os.Exit(1)
	}
	indexTable = table
}

// versionCmd prints version information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("valuation version 1.0.0")
	},
}
