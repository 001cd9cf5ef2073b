// Package clients holds the HTTP collaborators of the valuation
// engine: the postcode-to-region lookup and the property extract API.
// Both make single-shot, timeout-bounded calls; callers degrade their
// failures instead of propagating them to the engine.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"valuation-platform/pkg/logging"
	"valuation-platform/pkg/metrics"
)

// PostcodeClient resolves a postcode to the raw region label reported
// by a postcodes.io-style lookup service.
type PostcodeClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *logging.StructuredLogger
	metrics    *metrics.Collector
}

// NewPostcodeClient creates a postcode lookup client
func NewPostcodeClient(baseURL string, timeout time.Duration, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *PostcodeClient {
	return &PostcodeClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
		metrics:    metricsCollector,
	}
}

type postcodeResponse struct {
	Status int `json:"status"`
	Result struct {
		Region string `json:"region"`
	} `json:"result"`
}

// RegionLabel returns the raw region label for a postcode. Any error
// is counted and reported to the caller, who treats it as an absent
// label rather than a failure.
func (c *PostcodeClient) RegionLabel(ctx context.Context, postcode string) (string, error) {
	endpoint := fmt.Sprintf("%s/postcodes/%s", c.baseURL, url.PathEscape(postcode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build postcode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RegionLookupErrorsTotal.Inc()
		c.logger.Warn(ctx, "[POSTCODE_LOOKUP_ERROR] Region lookup request failed", logging.Fields{
			"postcode": postcode,
			"error":    err.Error(),
		})
		return "", fmt.Errorf("postcode lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.metrics.RegionLookupErrorsTotal.Inc()
		c.logger.Warn(ctx, "[POSTCODE_LOOKUP_ERROR] Region lookup returned non-OK status", logging.Fields{
			"postcode": postcode,
			"status":   resp.StatusCode,
		})
		return "", fmt.Errorf("postcode lookup returned status %d", resp.StatusCode)
	}

	var body postcodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.metrics.RegionLookupErrorsTotal.Inc()
		return "", fmt.Errorf("failed to decode postcode response: %w", err)
	}

	c.logger.Debug(ctx, "[POSTCODE_LOOKUP] Region label resolved", logging.Fields{
		"postcode": postcode,
		"label":    body.Result.Region,
	})

	return body.Result.Region, nil
}
