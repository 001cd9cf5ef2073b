package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// TestPropertyAPIClient_ByPostcode tests record fetch and decoding
func TestPropertyAPIClient_ByPostcode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("postcode"); got != "SW3 5HL" {
			t.Errorf("postcode query = %q, want SW3 5HL", got)
		}
		if got := r.Header.Get("X-Api-Key"); got != "secret-key" {
			t.Errorf("X-Api-Key = %q, want secret-key", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"count": 2,
			"properties": [
				{
					"id": "PROP-1001",
					"address": "12 Cheyne Walk",
					"postcode": "SW3 5HL",
					"property_type": "house",
					"last_sold_date": "2005-06-17T00:00:00Z",
					"last_sold_price": 4500000
				},
				{
					"id": "PROP-1002",
					"address": "14 Cheyne Walk",
					"postcode": "SW3 5HL",
					"property_type": "house",
					"last_sold_price": 0
				}
			]
		}`))
	}))
	defer server.Close()

	client := NewPropertyAPIClient(server.URL, "secret-key", time.Second, testLogger(), testMetrics)

	records, err := client.ByPostcode(context.Background(), "SW3 5HL")
	if err != nil {
		t.Fatalf("ByPostcode() error = %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(records))
	}
	if records[0].ID != "PROP-1001" {
		t.Errorf("records[0].ID = %v, want PROP-1001", records[0].ID)
	}
	if records[0].LastSoldPrice != 4500000 {
		t.Errorf("records[0].LastSoldPrice = %d, want 4500000", records[0].LastSoldPrice)
	}
	if records[0].LastSoldDate == nil || records[0].LastSoldDate.Year() != 2005 {
		t.Errorf("records[0].LastSoldDate = %v, want year 2005", records[0].LastSoldDate)
	}
	if records[1].HasSale() {
		t.Error("records[1] should have no sale")
	}
}

// TestPropertyAPIClient_ByPostcode_Empty tests the valid no-records answer
func TestPropertyAPIClient_ByPostcode_Empty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"count":0,"properties":[]}`))
	}))
	defer server.Close()

	client := NewPropertyAPIClient(server.URL, "", time.Second, testLogger(), testMetrics)

	records, err := client.ByPostcode(context.Background(), "ZZ99 9ZZ")
	if err != nil {
		t.Fatalf("ByPostcode() error = %v, empty list is not an error", err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

// TestPropertyAPIClient_ByPostcode_Errors tests failure modes
func TestPropertyAPIClient_ByPostcode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"count": 1, "properties": [{`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewPropertyAPIClient(server.URL, "", time.Second, testLogger(), testMetrics)
			if _, err := client.ByPostcode(context.Background(), "SW3 5HL"); err == nil {
				t.Error("ByPostcode() should fail")
			}
		})
	}
}

// TestFallbackProperties tests the static list's documented shape
func TestFallbackProperties(t *testing.T) {
	records := FallbackProperties()
	if len(records) == 0 {
		t.Fatal("fallback list must not be empty")
	}

	seen := make(map[string]bool)
	var priced, unpriced, undatedWithPrice bool
	for _, rec := range records {
		if seen[rec.ID] {
			t.Errorf("duplicate fallback id %s", rec.ID)
		}
		seen[rec.ID] = true

		if rec.Postcode == "" {
			t.Errorf("fallback record %s has no postcode", rec.ID)
		}

		switch {
		case rec.HasSale() && rec.LastSoldDate != nil:
			priced = true
		case rec.HasSale() && rec.LastSoldDate == nil:
			undatedWithPrice = true
		case !rec.HasSale():
			unpriced = true
		}
	}

	if !priced || !unpriced || !undatedWithPrice {
		t.Error("fallback list should cover priced, unpriced and undated records")
	}
}
