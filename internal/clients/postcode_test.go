package clients

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"valuation-platform/pkg/logging"
	"valuation-platform/pkg/metrics"
)

// One collector per test binary; prometheus registration is global.
var testMetrics = metrics.NewCollector("clients_test")

func testLogger() *logging.StructuredLogger {
	logger := logging.NewStructuredLogger("clients-test", "0.0.0", logging.ErrorLevel)
	logger.SetOutput(io.Discard)
	return logger
}

// TestPostcodeClient_RegionLabel tests the happy path
func TestPostcodeClient_RegionLabel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/postcodes/SW3 5HL" {
			t.Errorf("path = %q, want /postcodes/SW3 5HL", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":200,"result":{"region":"London","admin_district":"Kensington and Chelsea"}}`))
	}))
	defer server.Close()

	client := NewPostcodeClient(server.URL, time.Second, testLogger(), testMetrics)

	label, err := client.RegionLabel(context.Background(), "SW3 5HL")
	if err != nil {
		t.Fatalf("RegionLabel() error = %v", err)
	}
	if label != "London" {
		t.Errorf("label = %q, want London", label)
	}
}

// TestPostcodeClient_RegionLabel_Errors tests degraded paths
func TestPostcodeClient_RegionLabel_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "not found status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				http.Error(w, `{"status":404,"error":"Postcode not found"}`, http.StatusNotFound)
			},
		},
		{
			name: "server error status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"status":200,"result":`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewPostcodeClient(server.URL, time.Second, testLogger(), testMetrics)
			if _, err := client.RegionLabel(context.Background(), "ZZ99 9ZZ"); err == nil {
				t.Error("RegionLabel() should fail")
			}
		})
	}
}

// TestPostcodeClient_RegionLabel_Unreachable tests a dead endpoint
func TestPostcodeClient_RegionLabel_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewPostcodeClient(server.URL, time.Second, testLogger(), testMetrics)
	if _, err := client.RegionLabel(context.Background(), "SW3 5HL"); err == nil {
		t.Error("RegionLabel() should fail for an unreachable service")
	}
}

// TestPostcodeClient_RegionLabel_Timeout tests the client-side deadline
func TestPostcodeClient_RegionLabel_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"status":200,"result":{"region":"London"}}`))
	}))
	defer server.Close()

	client := NewPostcodeClient(server.URL, 20*time.Millisecond, testLogger(), testMetrics)
	if _, err := client.RegionLabel(context.Background(), "SW3 5HL"); err == nil {
		t.Error("RegionLabel() should fail after the timeout")
	}
}
