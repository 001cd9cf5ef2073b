package services

import (
	"context"
	"errors"
	"io"

	"valuation-platform/internal/models"
	"valuation-platform/internal/repository"
	"valuation-platform/pkg/logging"
	"valuation-platform/pkg/metrics"
)

// One collector per test binary; prometheus registration is global.
var testMetrics = metrics.NewCollector("services_test")

func testLogger() *logging.StructuredLogger {
	logger := logging.NewStructuredLogger("services-test", "0.0.0", logging.ErrorLevel)
	logger.SetOutput(io.Discard)
	return logger
}

// fakePropertyRepo is an in-memory PropertyRepository. With failAll set
// every method reports a connection failure.
type fakePropertyRepo struct {
	records   map[string]*models.PropertyRecord
	failAll   bool
	truncated bool
	batches   int
}

func newFakePropertyRepo(records ...*models.PropertyRecord) *fakePropertyRepo {
	repo := &fakePropertyRepo{records: make(map[string]*models.PropertyRecord)}
	for _, rec := range records {
		repo.records[rec.ID] = rec
	}
	return repo
}

var errRepoDown = errors.New("connection refused")

func (f *fakePropertyRepo) UpsertPropertiesBatch(ctx context.Context, records []*models.PropertyRecord) error {
	if f.failAll {
		return errRepoDown
	}
	for _, rec := range records {
		f.records[rec.ID] = rec
	}
	f.batches++
	return nil
}

func (f *fakePropertyRepo) GetProperty(ctx context.Context, id string) (*models.PropertyRecord, error) {
	if f.failAll {
		return nil, errRepoDown
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, &repository.NotFoundError{Resource: "property", ID: id}
	}
	return rec, nil
}

func (f *fakePropertyRepo) GetByPostcode(ctx context.Context, postcode string) ([]*models.PropertyRecord, error) {
	if f.failAll {
		return nil, errRepoDown
	}
	var out []*models.PropertyRecord
	for _, rec := range f.records {
		if rec.Postcode == postcode {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakePropertyRepo) CountProperties(ctx context.Context) (int, error) {
	if f.failAll {
		return 0, errRepoDown
	}
	return len(f.records), nil
}

func (f *fakePropertyRepo) TruncateProperties(ctx context.Context) error {
	if f.failAll {
		return errRepoDown
	}
	f.records = make(map[string]*models.PropertyRecord)
	f.truncated = true
	return nil
}

func (f *fakePropertyRepo) HealthCheck(ctx context.Context) error {
	if f.failAll {
		return errRepoDown
	}
	return nil
}
