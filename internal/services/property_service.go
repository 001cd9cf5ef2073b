package services

import (
	"context"
	"errors"
	"strings"

	"valuation-platform/internal/clients"
	"valuation-platform/internal/models"
	"valuation-platform/internal/repository"
	"valuation-platform/pkg/logging"
	"valuation-platform/pkg/metrics"
)

// Property lookup sources.
const (
	SourceAPI      = "api"
	SourceDatabase = "database"
	SourceFallback = "fallback"
)

// PropertyLookup is the outcome of a postcode lookup: the records
// found plus the source that actually served them.
type PropertyLookup struct {
	Postcode   string
	Source     string
	Properties []models.PropertyRecord
}

// PropertyService resolves property records from the configured
// primary source, serving the static fallback list when the primary is
// unreachable. An empty list from a reachable source is a valid
// "no properties found" answer, not an error.
type PropertyService struct {
	source  string
	api     *clients.PropertyAPIClient
	repo    repository.PropertyRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewPropertyService creates a new property service. source selects the
// primary backend, "api" or "database".
func NewPropertyService(source string, api *clients.PropertyAPIClient, repo repository.PropertyRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *PropertyService {
	return &PropertyService{
		source:  source,
		api:     api,
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// FindByPostcode returns the property records for a postcode from the
// primary source, or the static fallback list when the primary is
// unreachable. It fails only when the request context is done.
func (s *PropertyService) FindByPostcode(ctx context.Context, postcode string) (*PropertyLookup, error) {
	normalized := strings.ToUpper(strings.TrimSpace(postcode))

	records, err := s.fromPrimary(ctx, normalized)
	if err == nil {
		s.metrics.RecordPropertyLookup(s.source)
		if len(records) == 0 {
			s.logger.Info(ctx, "[PROPERTY_EMPTY] No properties found for postcode", logging.Fields{
				"postcode": normalized,
				"source":   s.source,
			})
		}
		return &PropertyLookup{
			Postcode:   normalized,
			Source:     s.source,
			Properties: records,
		}, nil
	}

	// A dead request should not be answered from the fallback list.
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	s.metrics.FallbackServesTotal.Inc()
	s.metrics.RecordPropertyLookup(SourceFallback)
	s.logger.Warn(ctx, "[PROPERTY_FALLBACK] Primary source unreachable, serving static list", logging.Fields{
		"postcode": normalized,
		"source":   s.source,
		"error":    err.Error(),
	})

	return &PropertyLookup{
		Postcode:   normalized,
		Source:     SourceFallback,
		Properties: clients.FallbackProperties(),
	}, nil
}

// FindByID resolves a single record. The database source addresses
// records directly; the other sources search the postcode's list.
func (s *PropertyService) FindByID(ctx context.Context, id, postcode string) (*models.PropertyRecord, string, error) {
	if s.source == SourceDatabase && s.repo != nil {
		record, err := s.repo.GetProperty(ctx, id)
		if err == nil {
			s.metrics.RecordPropertyLookup(SourceDatabase)
			return record, SourceDatabase, nil
		}

		var notFound *repository.NotFoundError
		if errors.As(err, &notFound) {
			return nil, SourceDatabase, err
		}
		// Unreachable database: fall through to the postcode lookup,
		// which serves the fallback list.
	}

	lookup, err := s.FindByPostcode(ctx, postcode)
	if err != nil {
		return nil, "", err
	}

	for i := range lookup.Properties {
		if lookup.Properties[i].ID == id {
			return &lookup.Properties[i], lookup.Source, nil
		}
	}

	return nil, lookup.Source, &repository.NotFoundError{Resource: "property", ID: id}
}

// fromPrimary queries the configured primary source
func (s *PropertyService) fromPrimary(ctx context.Context, postcode string) ([]models.PropertyRecord, error) {
	if s.source == SourceDatabase {
		if s.repo == nil {
			return nil, errors.New("database source not configured")
		}
		rows, err := s.repo.GetByPostcode(ctx, postcode)
		if err != nil {
			return nil, err
		}
		records := make([]models.PropertyRecord, 0, len(rows))
		for _, row := range rows {
			records = append(records, *row)
		}
		return records, nil
	}

	if s.api == nil {
		return nil, errors.New("api source not configured")
	}
	return s.api.ByPostcode(ctx, postcode)
}
