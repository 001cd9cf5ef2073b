// Package region maps raw region labels from external lookup services
// onto the closed set of region keys used by the house-price index.
package region

import "strings"

// RegionKey identifies a house-price-index region.
type RegionKey string

const (
	London    RegionKey = "LONDON"
	SouthEast RegionKey = "SOUTH_EAST"
	UKAverage RegionKey = "UK_AVERAGE"
)

func (k RegionKey) String() string {
	return string(k)
}

// Classify maps a raw region label onto a RegionKey. Matching is by
// case-sensitive substring; the London rule is tested first, so a label
// naming both regions resolves to London. Empty and unrecognized labels
// resolve to UKAverage, the universal fallback key.
func Classify(rawLabel string) RegionKey {
	switch {
	case strings.Contains(rawLabel, "London"):
		return London
	case strings.Contains(rawLabel, "South East"):
		return SouthEast
	default:
		return UKAverage
	}
}
