package hpi

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"valuation-platform/internal/region"
)

// snapshotFile mirrors the YAML form of an index snapshot:
//
//	version: "2024.1"
//	base_year: 2015
//	current_year: 2024
//	regions:
//	  LONDON:
//	    2015: 100.0
//	    2024: 130.5
type snapshotFile struct {
	Version     string                     `yaml:"version"`
	BaseYear    int                        `yaml:"base_year"`
	CurrentYear int                        `yaml:"current_year"`
	Regions     map[string]map[int]float64 `yaml:"regions"`
}

// LoadFile reads an index snapshot from a YAML file and validates it.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	table, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("snapshot file %s: %w", path, err)
	}
	return table, nil
}

// Parse decodes and validates a YAML snapshot.
func Parse(data []byte) (*Table, error) {
	var file snapshotFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}

	table := &Table{
		Version:     file.Version,
		BaseYear:    file.BaseYear,
		CurrentYear: file.CurrentYear,
		Index:       make(map[region.RegionKey]map[int]decimal.Decimal, len(file.Regions)),
	}
	for name, years := range file.Regions {
		series := make(map[int]decimal.Decimal, len(years))
		for year, value := range years {
			series[year] = decimal.NewFromFloat(value)
		}
		table.Index[region.RegionKey(strings.ToUpper(name))] = series
	}

	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}
	return table, nil
}
