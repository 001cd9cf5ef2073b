package services

import (
	"context"

	"valuation-platform/internal/clients"
	"valuation-platform/internal/models"
	"valuation-platform/internal/region"
	"valuation-platform/internal/valuation"
	"valuation-platform/pkg/logging"
	"valuation-platform/pkg/metrics"
)

// ValuationRequest selects the property to value: either an inline
// record or the id of a record known to the property source. The
// postcode drives region resolution in both cases.
type ValuationRequest struct {
	Postcode      string                 `json:"postcode"`
	PropertyID    string                 `json:"property_id,omitempty"`
	Property      *models.PropertyRecord `json:"property,omitempty"`
	IncludeSeries bool                   `json:"-"`
}

// ValuationOutcome pairs the engine result with the resolved region
// and the record it was computed for.
type ValuationOutcome struct {
	Postcode    string                 `json:"postcode"`
	RegionLabel string                 `json:"region_label,omitempty"`
	Region      region.RegionKey       `json:"region"`
	Source      string                 `json:"source,omitempty"`
	Property    *models.PropertyRecord `json:"property"`
	Valuation   models.ValuationResult `json:"valuation"`
}

// ValuationService resolves a region for the request's postcode,
// obtains the selected property record and runs the valuation engine.
type ValuationService struct {
	engine     *valuation.Engine
	postcodes  *clients.PostcodeClient
	properties *PropertyService
	logger     *logging.StructuredLogger
	metrics    *metrics.Collector
}

// NewValuationService creates a new valuation service
func NewValuationService(engine *valuation.Engine, postcodes *clients.PostcodeClient, properties *PropertyService, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *ValuationService {
	return &ValuationService{
		engine:     engine,
		postcodes:  postcodes,
		properties: properties,
		logger:     logger,
		metrics:    metricsCollector,
	}
}

// ResolveRegion maps a postcode to its region key via the lookup
// service. Lookup failures degrade to an absent label, which the
// classifier resolves to the UK average; they never fail the caller.
func (s *ValuationService) ResolveRegion(ctx context.Context, postcode string) (string, region.RegionKey) {
	label, err := s.postcodes.RegionLabel(ctx, postcode)
	if err != nil {
		label = ""
	}

	key := region.Classify(label)
	s.metrics.RecordRegionLookup(key.String())

	return label, key
}

// ValuateProperty runs the full valuation flow for a request
func (s *ValuationService) ValuateProperty(ctx context.Context, req ValuationRequest) (*ValuationOutcome, error) {
	if req.Postcode == "" {
		return nil, &models.ValidationError{
			Field:   "postcode",
			Message: "postcode is required",
		}
	}
	if req.Property == nil && req.PropertyID == "" {
		return nil, &models.ValidationError{
			Field:   "property",
			Message: "either property or property_id is required",
		}
	}

	label, key := s.ResolveRegion(ctx, req.Postcode)

	record := req.Property
	source := ""
	if record == nil {
		found, lookupSource, err := s.properties.FindByID(ctx, req.PropertyID, req.Postcode)
		if err != nil {
			return nil, err
		}
		record = found
		source = lookupSource
	}
	if record.Postcode == "" {
		record.Postcode = req.Postcode
	}

	timer := s.metrics.NewTimer(s.metrics.ValuationDuration)
	var result models.ValuationResult
	if req.IncludeSeries {
		result = s.engine.ValuateWithSeries(*record, key)
		s.metrics.SeriesPoints.Observe(float64(len(result.Series)))
	} else {
		result = s.engine.Valuate(*record, key)
	}
	timer.ObserveDuration()

	s.metrics.RecordValuation(key.String(), result.Available)

	s.logger.Info(ctx, "[VALUATION_COMPLETE] Valuation computed", logging.Fields{
		"postcode":        req.Postcode,
		"region":          key.String(),
		"region_label":    label,
		"property_id":     record.ID,
		"available":       result.Available,
		"estimated_value": result.EstimatedValue,
		"sold_year":       result.SoldYear,
		"series_points":   len(result.Series),
	})

	return &ValuationOutcome{
		Postcode:    req.Postcode,
		RegionLabel: label,
		Region:      key,
		Source:      source,
		Property:    record,
		Valuation:   result,
	}, nil
}
