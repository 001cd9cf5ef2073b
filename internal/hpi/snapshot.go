package hpi

import (
	"github.com/shopspring/decimal"

	"valuation-platform/internal/region"
)

// Default returns the built-in index snapshot, used when no snapshot
// file is configured. Values are rebased so that 2015 = 100.
func Default() *Table {
	return &Table{
		Version:     "2024.1",
		BaseYear:    2015,
		CurrentYear: 2024,
		Index: map[region.RegionKey]map[int]decimal.Decimal{
			region.London: seriesFrom(map[int]string{
				1995: "18.7", 1996: "20.1", 1997: "22.9", 1998: "25.6",
				1999: "29.4", 2000: "34.4", 2001: "37.8", 2002: "43.7",
				2003: "47.9", 2004: "51.2", 2005: "53.1", 2006: "57.6",
				2007: "64.2", 2008: "61.5", 2009: "58.9", 2010: "65.3",
				2011: "68.1", 2012: "72.4", 2013: "78.6", 2014: "91.2",
				2015: "100.0", 2016: "108.3", 2017: "111.9", 2018: "111.4",
				2019: "110.2", 2020: "113.6", 2021: "118.9", 2022: "126.7",
				2023: "124.8", 2024: "130.5",
			}),
			region.SouthEast: seriesFrom(map[int]string{
				1995: "22.4", 1996: "23.8", 1997: "26.3", 1998: "29.2",
				1999: "33.5", 2000: "38.9", 2001: "43.2", 2002: "50.8",
				2003: "56.4", 2004: "60.7", 2005: "63.0", 2006: "66.8",
				2007: "71.9", 2008: "68.3", 2009: "64.7", 2010: "69.5",
				2011: "70.2", 2012: "72.1", 2013: "78.9", 2014: "91.0",
				2015: "100.0", 2016: "109.6", 2017: "114.8", 2018: "117.2",
				2019: "117.5", 2020: "121.3", 2021: "131.2", 2022: "142.8",
				2023: "139.6", 2024: "141.9",
			}),
			region.UKAverage: seriesFrom(map[int]string{
				1995: "28.3", 1996: "29.6", 1997: "32.1", 1998: "35.4",
				1999: "39.3", 2000: "44.5", 2001: "48.6", 2002: "56.7",
				2003: "65.3", 2004: "72.9", 2005: "76.8", 2006: "81.2",
				2007: "86.5", 2008: "83.1", 2009: "78.4", 2010: "81.3",
				2011: "80.6", 2012: "81.5", 2013: "84.2", 2014: "91.1",
				2015: "100.0", 2016: "107.0", 2017: "111.6", 2018: "114.9",
				2019: "115.8", 2020: "119.4", 2021: "130.1", 2022: "143.7",
				2023: "141.2", 2024: "144.6",
			}),
		},
	}
}

func seriesFrom(values map[int]string) map[int]decimal.Decimal {
	series := make(map[int]decimal.Decimal, len(values))
	for year, value := range values {
		series[year] = decimal.RequireFromString(value)
	}
	return series
}
