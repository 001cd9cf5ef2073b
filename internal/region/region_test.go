package region

import "testing"

// TestClassify tests label-to-key resolution including rule ordering
func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  RegionKey
	}{
		{
			name:  "plain london label",
			label: "London",
			want:  London,
		},
		{
			name:  "london embedded in a longer label",
			label: "Greater London Authority",
			want:  London,
		},
		{
			name:  "south east label",
			label: "South East",
			want:  SouthEast,
		},
		{
			name:  "south east embedded in a longer label",
			label: "South East England",
			want:  SouthEast,
		},
		{
			name:  "label naming both regions resolves to london first",
			label: "London and the South East",
			want:  London,
		},
		{
			name:  "empty label falls back to uk average",
			label: "",
			want:  UKAverage,
		},
		{
			name:  "unrecognized label falls back to uk average",
			label: "Yorkshire and The Humber",
			want:  UKAverage,
		},
		{
			name:  "matching is case sensitive",
			label: "south east",
			want:  UKAverage,
		},
		{
			name:  "lowercase london does not match",
			label: "london",
			want:  UKAverage,
		},
		{
			name:  "whitespace only",
			label: "   ",
			want:  UKAverage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.label); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.label, got, tt.want)
			}
		})
	}
}

// TestClassify_Totality checks that every input resolves to a known key
func TestClassify_Totality(t *testing.T) {
	known := map[RegionKey]bool{London: true, SouthEast: true, UKAverage: true}

	inputs := []string{"", "London", "South East", "gibberish \x00\xff", "北ロンドン", "LONDON"}
	for _, label := range inputs {
		if got := Classify(label); !known[got] {
			t.Errorf("Classify(%q) = %v, not a known region key", label, got)
		}
	}
}
