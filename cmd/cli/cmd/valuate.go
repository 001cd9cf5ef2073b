// Package cmd - valuate command
package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"valuation-platform/internal/models"
	"valuation-platform/internal/region"
	"valuation-platform/internal/valuation"
)

var (
	valuatePostcode string
	valuatePrice    int64
	valuateSoldDate string
	regionLabel     string
	includeSeries   bool
	boundPct        float64
)

// valuateCmd represents the valuate command
var valuateCmd = &cobra.Command{
	Use:   "valuate",
	Short: "Estimate the current value of a property",
	Long: `Estimate the current value of a property from its last sale price.

The sale price is scaled by the growth of the regional house price index
between the sale year and the current index year. The region comes from
the --region-label flag the way the postcode lookup service would report
it; without one the UK average index applies.

Examples:
  valuation valuate --postcode "SW3 5HL" --price 4500000 --sold-date 2005-06-17 --region-label "London"
  valuation valuate --postcode "GU1 4AE" --price 562000 --sold-date 2019-03-29 --region-label "South East" --series`,
	RunE: runValuate,
}

func init() {
	valuateCmd.Flags().StringVar(&valuatePostcode, "postcode", "", "property postcode (required)")
	valuateCmd.Flags().Int64Var(&valuatePrice, "price", 0, "last sale price in pounds (required)")
	valuateCmd.Flags().StringVar(&valuateSoldDate, "sold-date", "", "sale date as YYYY-MM-DD")
	valuateCmd.Flags().StringVar(&regionLabel, "region-label", "", "region label, e.g. \"London\" or \"South East\"")
	valuateCmd.Flags().BoolVar(&includeSeries, "series", false, "print the year-by-year value series")
	valuateCmd.Flags().Float64Var(&boundPct, "bound-pct", 0, "estimate range width as a fraction (default 0.05)")
	valuateCmd.MarkFlagRequired("postcode")
	valuateCmd.MarkFlagRequired("price")
}

func runValuate(cmd *cobra.Command, args []string) error {
	record := models.PropertyRecord{
		Postcode:      strings.ToUpper(strings.TrimSpace(valuatePostcode)),
		LastSoldPrice: valuatePrice,
	}

	if valuateSoldDate != "" {
		soldDate, err := time.Parse("2006-01-02", valuateSoldDate)
		if err != nil {
			return fmt.Errorf("invalid sold-date %q, expected YYYY-MM-DD", valuateSoldDate)
		}
		record.LastSoldDate = &soldDate
	}

	key := region.Classify(regionLabel)
	engine := valuation.New(indexTable, valuation.Config{BoundPct: boundPct})

	var result models.ValuationResult
	if includeSeries {
		result = engine.ValuateWithSeries(record, key)
	} else {
		result = engine.Valuate(record, key)
	}

	fmt.Println("Property Valuation")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Printf("Postcode:        %s\n", record.Postcode)
	if regionLabel != "" {
		fmt.Printf("Region:          %s (%s)\n", key, regionLabel)
	} else {
		fmt.Printf("Region:          %s\n", key)
	}

	if !result.Available {
		fmt.Println("\nNo valuation available: the property has no recorded sale price.")
		return nil
	}

	fmt.Printf("Sold:            %d for £%d\n", result.SoldYear, valuatePrice)
	fmt.Printf("Growth Factor:   %s\n", result.GrowthFactor.StringFixed(4))
	fmt.Printf("Estimated Value: £%d\n", result.EstimatedValue)
	fmt.Printf("Range:           £%d - £%d\n", result.LowerBound, result.UpperBound)

	if includeSeries && len(result.Series) > 0 {
		fmt.Println("\nValue Series")
		fmt.Println(strings.Repeat("-", 40))
		fmt.Printf("%-6s %10s %14s\n", "Year", "Index", "Value")
		for _, point := range result.Series {
			fmt.Printf("%-6d %10s %14d\n", point.Year, point.Index.StringFixed(1), point.Value)
		}
	}

	return nil
}
