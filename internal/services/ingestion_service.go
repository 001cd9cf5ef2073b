package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"valuation-platform/internal/models"
	"valuation-platform/internal/repository"
	"valuation-platform/pkg/logging"
	"valuation-platform/pkg/metrics"
)

// IngestionService loads property extract CSV files into the database
type IngestionService struct {
	repo    repository.PropertyRepository
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// IngestionResult contains ingestion statistics
type IngestionResult struct {
	TotalRecords      int
	SuccessfulRecords int
	FailedRecords     int
	BatchesWritten    int
	ExtractTotal      int
	Duration          time.Duration
}

// NewIngestionService creates a new ingestion service
func NewIngestionService(repo repository.PropertyRepository, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) *IngestionService {
	return &IngestionService{
		repo:    repo,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// IngestCSV ingests a property extract CSV file. The file must carry a
// header row; rows that fail validation are counted and skipped, a
// failed batch write aborts the run.
func (s *IngestionService) IngestCSV(ctx context.Context, filePath string, batchSize int, truncate bool) (*IngestionResult, error) {
	startTime := time.Now()

	if batchSize <= 0 {
		batchSize = 500
	}

	runLog := s.logger.WithFields(logging.Fields{"file_path": filePath})

	runLog.Info(ctx, "[INGEST_START] Starting property ingestion", logging.Fields{
		"batch_size": batchSize,
		"truncate":   truncate,
		"stage":      "INITIALIZATION",
	})

	if truncate {
		if err := s.repo.TruncateProperties(ctx); err != nil {
			return nil, fmt.Errorf("failed to clear extract: %w", err)
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"id", "postcode"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("csv missing required column %q", required)
		}
	}

	result := &IngestionResult{}
	batch := make([]*models.PropertyRecord, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := s.repo.UpsertPropertiesBatch(ctx, batch); err != nil {
			return fmt.Errorf("failed to write batch: %w", err)
		}
		result.SuccessfulRecords += len(batch)
		result.BatchesWritten++
		batch = batch[:0]
		return nil
	}

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			result.TotalRecords++
			result.FailedRecords++
			s.metrics.RecordIngestionError("parse_error")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		result.TotalRecords++

		record, err := rawFromRow(row, columns).ToRecord()
		if err != nil {
			result.FailedRecords++
			s.metrics.RecordIngestionError("conversion_error")
			runLog.Debug(ctx, "[INGEST_ROW_SKIPPED] Row failed validation", logging.Fields{
				"row":   result.TotalRecords,
				"error": err.Error(),
			})
			continue
		}

		batch = append(batch, record)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				s.metrics.RecordIngestionError("batch_error")
				return nil, err
			}
		}
	}

	if err := flush(); err != nil {
		s.metrics.RecordIngestionError("batch_error")
		return nil, err
	}

	if count, err := s.repo.CountProperties(ctx); err == nil {
		result.ExtractTotal = count
	}

	result.Duration = time.Since(startTime)
	s.metrics.IngestionDuration.Observe(result.Duration.Seconds())

	runLog.Info(ctx, "[INGEST_COMPLETE] Property ingestion completed", logging.Fields{
		"total_records":      result.TotalRecords,
		"successful_records": result.SuccessfulRecords,
		"failed_records":     result.FailedRecords,
		"batches_written":    result.BatchesWritten,
		"extract_total":      result.ExtractTotal,
		"duration_seconds":   result.Duration.Seconds(),
		"records_per_second": float64(result.SuccessfulRecords) / result.Duration.Seconds(),
		"stage":              "COMPLETE",
	})

	return result, nil
}

// rawFromRow maps a CSV row onto a raw record using the header's
// column positions. Missing columns read as empty strings.
func rawFromRow(row []string, columns map[string]int) *models.RawPropertyRecord {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	return &models.RawPropertyRecord{
		ID:            field("id"),
		Address:       field("address"),
		Postcode:      field("postcode"),
		PropertyType:  field("property_type"),
		FloorAreaSqm:  field("floor_area_sqm"),
		EnergyRating:  field("energy_rating"),
		LastSoldDate:  field("last_sold_date"),
		LastSoldPrice: field("last_sold_price"),
	}
}
