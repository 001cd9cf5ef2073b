// Package hpi holds the house-price-index table: a static, versioned
// mapping from region key to a year-indexed series of index values,
// normalized so that the base year equals 100.
package hpi

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"valuation-platform/internal/region"
)

// baseIndex is the normalized base-year level. It doubles as the lookup
// fallback for years absent from a region's series.
var baseIndex = decimal.NewFromInt(100)

// Table is an immutable snapshot of the house-price index. CurrentYear
// is the valuation reference year and comes from the snapshot data,
// never from the wall clock.
type Table struct {
	Version     string
	BaseYear    int
	CurrentYear int
	Index       map[region.RegionKey]map[int]decimal.Decimal
}

// IndexFor returns the index value for a region and year. A region
// absent from the table is substituted with the UK average series; a
// year absent from the resolved series yields the base-year constant
// 100. The function is total: it never fails.
func (t *Table) IndexFor(key region.RegionKey, year int) decimal.Decimal {
	series, ok := t.Index[key]
	if !ok {
		series = t.Index[region.UKAverage]
	}
	if value, ok := series[year]; ok {
		return value
	}
	return baseIndex
}

// Years returns the table's full year range in ascending order: the
// union of all years covered by any region's series.
func (t *Table) Years() []int {
	seen := make(map[int]bool)
	for _, series := range t.Index {
		for year := range series {
			seen[year] = true
		}
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// Validate checks the structural invariants of a snapshot. It is called
// once at load time; a table that passes is safe for unguarded
// concurrent reads.
func (t *Table) Validate() error {
	if t.Version == "" {
		return fmt.Errorf("snapshot version must not be empty")
	}
	if t.CurrentYear < t.BaseYear {
		return fmt.Errorf("current year %d precedes base year %d", t.CurrentYear, t.BaseYear)
	}
	if _, ok := t.Index[region.UKAverage]; !ok {
		return fmt.Errorf("snapshot missing required region %s", region.UKAverage)
	}

	for key, series := range t.Index {
		base, ok := series[t.BaseYear]
		if !ok {
			return fmt.Errorf("region %s missing base year %d", key, t.BaseYear)
		}
		if !base.Equal(baseIndex) {
			return fmt.Errorf("region %s base year index is %s, want 100", key, base)
		}
		if _, ok := series[t.CurrentYear]; !ok {
			return fmt.Errorf("region %s missing current year %d", key, t.CurrentYear)
		}
		for year, value := range series {
			if value.Sign() <= 0 {
				return fmt.Errorf("region %s year %d has non-positive index %s", key, year, value)
			}
		}
	}

	return nil
}
