package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"valuation-platform/internal/models"
	"valuation-platform/pkg/logging"
	"valuation-platform/pkg/metrics"
)

// PropertyAPIClient fetches property records from the external property
// extract API. It is one of the two primary sources the property
// service can be configured with.
type PropertyAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logging.StructuredLogger
	metrics    *metrics.Collector
}

// NewPropertyAPIClient creates a property extract API client
func NewPropertyAPIClient(baseURL, apiKey string, timeout time.Duration, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *PropertyAPIClient {
	return &PropertyAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    metricsCollector,
	}
}

type propertyAPIResponse struct {
	Count      int                     `json:"count"`
	Properties []models.PropertyRecord `json:"properties"`
}

// ByPostcode returns the property records known for a postcode. An
// empty slice is a valid answer; errors mean the source was
// unreachable or misbehaving and the caller should fall back.
func (c *PropertyAPIClient) ByPostcode(ctx context.Context, postcode string) ([]models.PropertyRecord, error) {
	endpoint := fmt.Sprintf("%s/properties?postcode=%s", c.baseURL, url.QueryEscape(postcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build property request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordPropertyLookupError("request_error")
		c.logger.Warn(ctx, "[PROPERTY_API_ERROR] Property extract request failed", logging.Fields{
			"postcode": postcode,
			"error":    err.Error(),
		})
		return nil, fmt.Errorf("property extract request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordPropertyLookupError("status_error")
		c.logger.Warn(ctx, "[PROPERTY_API_ERROR] Property extract returned non-OK status", logging.Fields{
			"postcode": postcode,
			"status":   resp.StatusCode,
		})
		return nil, fmt.Errorf("property extract returned status %d", resp.StatusCode)
	}

	var body propertyAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.metrics.RecordPropertyLookupError("decode_error")
		return nil, fmt.Errorf("failed to decode property response: %w", err)
	}

	c.logger.Debug(ctx, "[PROPERTY_API] Property records fetched", logging.Fields{
		"postcode": postcode,
		"count":    len(body.Properties),
	})

	return body.Properties, nil
}
