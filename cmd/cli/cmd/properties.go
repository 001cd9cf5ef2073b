// Package cmd - properties command
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"valuation-platform/internal/clients"
)

var propertiesPostcode string

// propertiesCmd represents the properties command
var propertiesCmd = &cobra.Command{
	Use:   "properties",
	Short: "List the built-in sample properties",
	Long: `List the sample property records bundled with the platform.

These are the records the API serves when the configured property source
is unreachable. Filter with --postcode to see a single postcode.`,
	RunE: runProperties,
}

func init() {
	propertiesCmd.Flags().StringVar(&propertiesPostcode, "postcode", "", "only show properties for this postcode")
}

func runProperties(cmd *cobra.Command, args []string) error {
	filter := strings.ToUpper(strings.TrimSpace(propertiesPostcode))

	records := clients.FallbackProperties()
	shown := 0

	fmt.Printf("%-10s %-9s %-30s %-11s %12s %s\n", "ID", "Postcode", "Address", "Type", "Last Price", "Last Sold")
	fmt.Println(strings.Repeat("-", 88))

	for _, record := range records {
		if filter != "" && record.Postcode != filter {
			continue
		}

		lastSold := "-"
		if record.LastSoldDate != nil {
			lastSold = record.LastSoldDate.Format("2006-01-02")
		}
		lastPrice := "-"
		if record.HasSale() {
			lastPrice = fmt.Sprintf("£%d", record.LastSoldPrice)
		}

		fmt.Printf("%-10s %-9s %-30s %-11s %12s %s\n",
			record.ID, record.Postcode, record.Address, record.PropertyType, lastPrice, lastSold)
		shown++
	}

	if shown == 0 {
		fmt.Printf("\nNo properties found for postcode %q\n", filter)
		return nil
	}

	fmt.Printf("\n%d properties\n", shown)
	return nil
}
