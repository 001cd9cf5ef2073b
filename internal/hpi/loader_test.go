package hpi

import (
	"os"
	"path/filepath"
	"testing"

	"valuation-platform/internal/region"
)

const validSnapshot = `
version: "2024.1"
base_year: 2015
current_year: 2024
regions:
  LONDON:
    2015: 100.0
    2020: 113.6
    2024: 130.5
  UK_AVERAGE:
    2015: 100.0
    2020: 119.4
    2024: 144.6
`

// TestLoadFile tests reading a snapshot from disk
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hpi.yaml")
	if err := os.WriteFile(path, []byte(validSnapshot), 0o644); err != nil {
		t.Fatalf("failed to write snapshot fixture: %v", err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}

	if table.Version != "2024.1" {
		t.Errorf("Version = %v, want 2024.1", table.Version)
	}
	if got := table.IndexFor(region.London, 2024); !got.Equal(d("130.5")) {
		t.Errorf("London 2024 index = %v, want 130.5", got)
	}
	if got := table.IndexFor(region.UKAverage, 2020); !got.Equal(d("119.4")) {
		t.Errorf("UK average 2020 index = %v, want 119.4", got)
	}
}

// TestLoadFile_MissingFile tests the error path for an absent snapshot
func TestLoadFile_MissingFile(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile() should fail for a missing file")
	}
}

// TestParse tests decoding and validation failures
func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{
			name:    "valid snapshot",
			input:   validSnapshot,
			wantErr: false,
		},
		{
			name:    "malformed yaml",
			input:   "regions: [what",
			wantErr: true,
		},
		{
			name: "missing uk average",
			input: `
version: "2024.1"
base_year: 2015
current_year: 2024
regions:
  LONDON:
    2015: 100.0
    2024: 130.5
`,
			wantErr: true,
		},
		{
			name: "base year index not 100",
			input: `
version: "2024.1"
base_year: 2015
current_year: 2024
regions:
  UK_AVERAGE:
    2015: 98.2
    2024: 144.6
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input))
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestParse_NormalizesRegionCase tests lower-case region names in the file
func TestParse_NormalizesRegionCase(t *testing.T) {
	input := `
version: "2024.1"
base_year: 2015
current_year: 2024
regions:
  uk_average:
    2015: 100.0
    2024: 144.6
`
	table, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, ok := table.Index[region.UKAverage]; !ok {
		t.Error("lower-case region name should normalize to UK_AVERAGE")
	}
}
