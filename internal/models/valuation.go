package models

import (
	"github.com/shopspring/decimal"

	"valuation-platform/internal/region"
)

// ValuationPoint is a single year of a property's value series: the
// index level for that year and the scaled value it implies.
type ValuationPoint struct {
	Year  int             `json:"year"`
	Index decimal.Decimal `json:"index"`
	Value int64           `json:"value"`
}

// ValuationResult is the outcome of valuing one property. When no prior
// sale price is known, Available is false and the monetary fields are
// zero; the growth factor is still reported. Results are derived values,
// recomputed on every call and never stored.
type ValuationResult struct {
	EstimatedValue int64            `json:"estimated_value"`
	LowerBound     int64            `json:"lower_bound"`
	UpperBound     int64            `json:"upper_bound"`
	GrowthFactor   decimal.Decimal  `json:"growth_factor"`
	Available      bool             `json:"available"`
	SoldYear       int              `json:"sold_year"`
	CurrentYear    int              `json:"current_year"`
	Region         region.RegionKey `json:"region"`
	Series         []ValuationPoint `json:"series,omitempty"`
}
