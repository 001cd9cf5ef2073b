// Package valuation implements the index-scaling valuation model: a
// property's last sale price scaled by the region-level house-price
// growth between its sale year and the current reference year.
package valuation

import (
	"github.com/shopspring/decimal"

	"valuation-platform/internal/hpi"
	"valuation-platform/internal/models"
	"valuation-platform/internal/region"
)

var one = decimal.NewFromInt(1)

// Config adjusts the engine's reference years and bound width. Zero
// fields take their values from the table; BoundPct defaults to 0.05.
type Config struct {
	BaseYear    int
	CurrentYear int
	BoundPct    float64
}

// Engine computes valuations against a fixed index table. It performs
// no I/O and keeps no state between calls; a single Engine is safe for
// unguarded concurrent use.
type Engine struct {
	table       *hpi.Table
	baseYear    int
	currentYear int
	boundPct    decimal.Decimal
}

// New creates an Engine over the given index table.
func New(table *hpi.Table, cfg Config) *Engine {
	baseYear := cfg.BaseYear
	if baseYear == 0 {
		baseYear = table.BaseYear
	}
	currentYear := cfg.CurrentYear
	if currentYear == 0 {
		currentYear = table.CurrentYear
	}
	boundPct := cfg.BoundPct
	if boundPct == 0 {
		boundPct = 0.05
	}

	return &Engine{
		table:       table,
		baseYear:    baseYear,
		currentYear: currentYear,
		boundPct:    decimal.NewFromFloat(boundPct),
	}
}

// Valuate estimates the current value of a property in the given
// region. It never fails: a record without a usable sale price yields
// an unavailable result with zero monetary fields, and unknown regions
// or out-of-range years are absorbed by the table's fallback policy.
// A record without a sale date is scaled from the base year.
func (e *Engine) Valuate(p models.PropertyRecord, key region.RegionKey) models.ValuationResult {
	soldYear := e.baseYear
	if p.LastSoldDate != nil {
		soldYear = p.LastSoldDate.Year()
	}

	indexOld := e.table.IndexFor(key, soldYear)
	indexNew := e.table.IndexFor(key, e.currentYear)
	growth := indexNew.Div(indexOld)

	result := models.ValuationResult{
		GrowthFactor: growth,
		SoldYear:     soldYear,
		CurrentYear:  e.currentYear,
		Region:       key,
	}

	if !p.HasSale() {
		return result
	}

	estimate := roundToInt(decimal.NewFromInt(p.LastSoldPrice).Mul(growth))
	bounded := decimal.NewFromInt(estimate)

	result.Available = true
	result.EstimatedValue = estimate
	result.LowerBound = roundToInt(bounded.Mul(one.Sub(e.boundPct)))
	result.UpperBound = roundToInt(bounded.Mul(one.Add(e.boundPct)))
	return result
}

// ValuateWithSeries computes the valuation together with the
// year-by-year value series from the sale year to the end of the
// table's range. The series requires both a sale price and an actual
// sale date; otherwise it is omitted. It is regenerated in full on
// every call, ordered ascending by year.
func (e *Engine) ValuateWithSeries(p models.PropertyRecord, key region.RegionKey) models.ValuationResult {
	result := e.Valuate(p, key)
	if !p.HasSale() || p.LastSoldDate == nil {
		return result
	}

	indexOld := e.table.IndexFor(key, result.SoldYear)
	price := decimal.NewFromInt(p.LastSoldPrice)

	var series []models.ValuationPoint
	for _, year := range e.table.Years() {
		if year < result.SoldYear {
			continue
		}
		index := e.table.IndexFor(key, year)
		series = append(series, models.ValuationPoint{
			Year:  year,
			Index: index,
			Value: roundToInt(price.Mul(index).Div(indexOld)),
		})
	}
	result.Series = series
	return result
}

// roundToInt rounds half away from zero to a whole amount.
func roundToInt(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
