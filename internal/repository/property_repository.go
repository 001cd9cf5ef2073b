package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"valuation-platform/internal/models"
	"valuation-platform/pkg/database"
	"valuation-platform/pkg/logging"
	"valuation-platform/pkg/metrics"
)

// PropertyRepository provides data access for the local property extract
type PropertyRepository interface {
	UpsertPropertiesBatch(ctx context.Context, records []*models.PropertyRecord) error
	GetProperty(ctx context.Context, id string) (*models.PropertyRecord, error)
	GetByPostcode(ctx context.Context, postcode string) ([]*models.PropertyRecord, error)
	CountProperties(ctx context.Context) (int, error)
	TruncateProperties(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}

// propertyRepository implements PropertyRepository
type propertyRepository struct {
	db      *database.PostgresDB
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *database.PostgresDB, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) PropertyRepository {
	return &propertyRepository{
		db:      db,
		logger:  logger,
		metrics: metricsCollector,
	}
}

// UpsertPropertiesBatch writes a batch of property records in a single
// transaction, replacing any existing rows with the same id
func (r *propertyRepository) UpsertPropertiesBatch(ctx context.Context, records []*models.PropertyRecord) error {
	if len(records) == 0 {
		return nil
	}

	timer := time.Now()
	defer func() {
		duration := time.Since(timer)
		r.metrics.IngestionBatchSize.Observe(float64(len(records)))
		r.logger.Debug(ctx, "[REPO_BATCH_UPSERT] Batch upsert completed", logging.Fields{
			"count":       len(records),
			"duration_ms": duration.Milliseconds(),
		})
	}()

	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO properties (
			id, address, postcode, property_type,
			floor_area_sqm, energy_rating, last_sold_date, last_sold_price,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			address = EXCLUDED.address,
			postcode = EXCLUDED.postcode,
			property_type = EXCLUDED.property_type,
			floor_area_sqm = EXCLUDED.floor_area_sqm,
			energy_rating = EXCLUDED.energy_rating,
			last_sold_date = EXCLUDED.last_sold_date,
			last_sold_price = EXCLUDED.last_sold_price,
			updated_at = NOW()
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		_, err := stmt.ExecContext(ctx,
			rec.ID,
			rec.Address,
			rec.Postcode,
			rec.PropertyType,
			rec.FloorAreaSqm,
			rec.EnergyRating,
			rec.LastSoldDate,
			rec.LastSoldPrice,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert property %s: %w", rec.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	r.metrics.IngestionRecordsTotal.Add(float64(len(records)))

	return nil
}

// GetProperty retrieves a property record by id
func (r *propertyRepository) GetProperty(ctx context.Context, id string) (*models.PropertyRecord, error) {
	query := `
		SELECT id, address, postcode, property_type,
		       floor_area_sqm, energy_rating, last_sold_date, last_sold_price
		FROM properties
		WHERE id = $1
	`

	var record models.PropertyRecord
	err := r.db.GetContext(ctx, "get_property", &record, query, id)

	if err == sql.ErrNoRows {
		return nil, &NotFoundError{
			Resource: "property",
			ID:       id,
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get property: %w", err)
	}

	return &record, nil
}

// GetByPostcode retrieves all property records for a postcode. An
// empty result is not an error.
func (r *propertyRepository) GetByPostcode(ctx context.Context, postcode string) ([]*models.PropertyRecord, error) {
	query := `
		SELECT id, address, postcode, property_type,
		       floor_area_sqm, energy_rating, last_sold_date, last_sold_price
		FROM properties
		WHERE postcode = $1
		ORDER BY id
	`

	var records []*models.PropertyRecord
	err := r.db.SelectContext(ctx, "get_by_postcode", &records, query, postcode)
	if err != nil {
		return nil, fmt.Errorf("failed to get properties by postcode: %w", err)
	}

	r.logger.Debug(ctx, "[REPO_GET_POSTCODE] Properties fetched", logging.Fields{
		"postcode": postcode,
		"count":    len(records),
	})

	return records, nil
}

// CountProperties returns the number of records in the extract
func (r *propertyRepository) CountProperties(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, "count_properties", &count, "SELECT COUNT(*) FROM properties")
	if err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	return count, nil
}

// TruncateProperties removes all records from the extract. Used by the
// ingester when a full reload is requested.
func (r *propertyRepository) TruncateProperties(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "truncate_properties", "TRUNCATE TABLE properties")
	if err != nil {
		return fmt.Errorf("failed to truncate properties: %w", err)
	}

	r.logger.Info(ctx, "[REPO_TRUNCATE] Property extract cleared", logging.Fields{})

	return nil
}

// HealthCheck performs a repository health check
func (r *propertyRepository) HealthCheck(ctx context.Context) error {
	return r.db.HealthCheck(ctx)
}

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func (e *NotFoundError) IsTransient() bool {
	return false
}
