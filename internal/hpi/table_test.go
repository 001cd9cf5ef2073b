package hpi

import (
	"testing"

	"github.com/shopspring/decimal"

	"valuation-platform/internal/region"
)

func d(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

// testTable omits SOUTH_EAST and the year 2005 so that both fallback
// paths are reachable.
func testTable() *Table {
	return &Table{
		Version:     "test.1",
		BaseYear:    2015,
		CurrentYear: 2024,
		Index: map[region.RegionKey]map[int]decimal.Decimal{
			region.London: {
				2015: d("100"),
				2020: d("113.6"),
				2024: d("130.5"),
			},
			region.UKAverage: {
				2015: d("100"),
				2020: d("119.4"),
				2024: d("144.6"),
			},
		},
	}
}

// TestTable_IndexFor tests direct lookup and both fallback policies
func TestTable_IndexFor(t *testing.T) {
	table := testTable()

	tests := []struct {
		name string
		key  region.RegionKey
		year int
		want string
	}{
		{
			name: "direct hit",
			key:  region.London,
			year: 2024,
			want: "130.5",
		},
		{
			name: "year missing from series yields base constant",
			key:  region.London,
			year: 2005,
			want: "100",
		},
		{
			name: "year before the table range yields base constant",
			key:  region.London,
			year: 1874,
			want: "100",
		},
		{
			name: "year after the table range yields base constant",
			key:  region.London,
			year: 2150,
			want: "100",
		},
		{
			name: "missing region substitutes the uk average series",
			key:  region.SouthEast,
			year: 2020,
			want: "119.4",
		},
		{
			name: "missing region and missing year",
			key:  region.SouthEast,
			year: 2007,
			want: "100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.IndexFor(tt.key, tt.year)
			if !got.Equal(d(tt.want)) {
				t.Errorf("IndexFor(%v, %d) = %v, want %v", tt.key, tt.year, got, tt.want)
			}
		})
	}
}

// TestTable_Years tests that the year range is the ascending union
// across all region series
func TestTable_Years(t *testing.T) {
	table := testTable()
	table.Index[region.London][2019] = d("110.2")

	years := table.Years()
	want := []int{2015, 2019, 2020, 2024}

	if len(years) != len(want) {
		t.Fatalf("Years() returned %d years, want %d", len(years), len(want))
	}
	for i, year := range want {
		if years[i] != year {
			t.Errorf("Years()[%d] = %d, want %d", i, years[i], year)
		}
	}
}

// TestTable_Validate tests snapshot invariant enforcement
func TestTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Table)
		wantErr bool
	}{
		{
			name:    "valid table",
			mutate:  func(*Table) {},
			wantErr: false,
		},
		{
			name: "empty version",
			mutate: func(tb *Table) {
				tb.Version = ""
			},
			wantErr: true,
		},
		{
			name: "current year precedes base year",
			mutate: func(tb *Table) {
				tb.CurrentYear = 2010
			},
			wantErr: true,
		},
		{
			name: "missing uk average region",
			mutate: func(tb *Table) {
				delete(tb.Index, region.UKAverage)
			},
			wantErr: true,
		},
		{
			name: "region missing base year",
			mutate: func(tb *Table) {
				delete(tb.Index[region.London], 2015)
			},
			wantErr: true,
		},
		{
			name: "base year index not 100",
			mutate: func(tb *Table) {
				tb.Index[region.London][2015] = d("99.9")
			},
			wantErr: true,
		},
		{
			name: "region missing current year",
			mutate: func(tb *Table) {
				delete(tb.Index[region.London], 2024)
			},
			wantErr: true,
		},
		{
			name: "non-positive index value",
			mutate: func(tb *Table) {
				tb.Index[region.London][2020] = d("0")
			},
			wantErr: true,
		},
		{
			name: "negative index value",
			mutate: func(tb *Table) {
				tb.Index[region.London][2020] = d("-5")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := testTable()
			tt.mutate(table)

			err := table.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestDefault tests the built-in snapshot
func TestDefault(t *testing.T) {
	table := Default()

	if err := table.Validate(); err != nil {
		t.Fatalf("Default() snapshot failed validation: %v", err)
	}

	if table.Version != "2024.1" {
		t.Errorf("Version = %v, want 2024.1", table.Version)
	}
	if table.BaseYear != 2015 || table.CurrentYear != 2024 {
		t.Errorf("years = %d/%d, want 2015/2024", table.BaseYear, table.CurrentYear)
	}

	if got := table.IndexFor(region.London, 2024); !got.Equal(d("130.5")) {
		t.Errorf("London 2024 index = %v, want 130.5", got)
	}

	for key := range table.Index {
		if got := table.IndexFor(key, 2015); !got.Equal(d("100")) {
			t.Errorf("%v base year index = %v, want 100", key, got)
		}
	}

	years := table.Years()
	if len(years) != 30 {
		t.Errorf("Years() length = %d, want 30", len(years))
	}
	if years[0] != 1995 || years[len(years)-1] != 2024 {
		t.Errorf("Years() range = %d..%d, want 1995..2024", years[0], years[len(years)-1])
	}
}
