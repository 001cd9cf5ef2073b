package clients

import (
	"time"

	"valuation-platform/internal/models"
)

// FallbackProperties returns the static property list served when the
// configured primary source is unreachable. The list is small and
// mixes priced, unpriced and undated records so every valuation path
// stays demonstrable offline.
func FallbackProperties() []models.PropertyRecord {
	return []models.PropertyRecord{
		{
			ID:            "PROP-1001",
			Address:       "12 Cheyne Walk",
			Postcode:      "SW3 5HL",
			PropertyType:  "house",
			FloorAreaSqm:  areaPtr(184.5),
			EnergyRating:  "D",
			LastSoldDate:  soldOn(2005, 6, 17),
			LastSoldPrice: 4500000,
		},
		{
			ID:            "PROP-1002",
			Address:       "Flat 8, 24 Borough High Street",
			Postcode:      "SE1 9SG",
			PropertyType:  "flat",
			FloorAreaSqm:  areaPtr(61.0),
			EnergyRating:  "C",
			LastSoldDate:  soldOn(2016, 11, 4),
			LastSoldPrice: 485000,
		},
		{
			ID:            "PROP-2001",
			Address:       "3 Mill Lane",
			Postcode:      "GU1 4AE",
			PropertyType:  "house",
			FloorAreaSqm:  areaPtr(112.3),
			EnergyRating:  "B",
			LastSoldDate:  soldOn(2019, 3, 29),
			LastSoldPrice: 562000,
		},
		{
			ID:            "PROP-2002",
			Address:       "41 Orchard Close",
			Postcode:      "RG21 7QL",
			PropertyType:  "bungalow",
			FloorAreaSqm:  areaPtr(88.0),
			EnergyRating:  "E",
			LastSoldPrice: 310000,
		},
		{
			ID:           "PROP-3001",
			Address:      "7 Whitworth Street",
			Postcode:     "M1 3GW",
			PropertyType: "flat",
			FloorAreaSqm: areaPtr(54.7),
			EnergyRating: "C",
		},
		{
			ID:            "PROP-3002",
			Address:       "15 Ropewalk Terrace",
			Postcode:      "NE1 2QF",
			PropertyType:  "maisonette",
			FloorAreaSqm:  areaPtr(73.2),
			EnergyRating:  "D",
			LastSoldDate:  soldOn(2011, 8, 12),
			LastSoldPrice: 146500,
		},
	}
}

func areaPtr(v float64) *float64 {
	return &v
}

func soldOn(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}
