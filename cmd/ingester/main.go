package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"valuation-platform/internal/config"
	"valuation-platform/internal/repository"
	"valuation-platform/internal/services"
	"valuation-platform/pkg/database"
	"valuation-platform/pkg/logging"
	"valuation-platform/pkg/metrics"
)

func main() {
	// Parse command-line flags
	csvFile := flag.String("csv-file", "./property_extract.csv", "Property extract CSV file to ingest")
	batchSize := flag.Int("batch-size", 500, "Number of records to write in each batch")
	truncate := flag.Bool("truncate", false, "Clear the extract table before ingesting")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := logging.NewStructuredLogger("valuation-ingester", "1.0.0", logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()
	logger.Info(ctx, "[INGESTER_START] Starting property extract ingestion", logging.Fields{
		"version":    "1.0.0",
		"csv_file":   *csvFile,
		"batch_size": *batchSize,
		"truncate":   *truncate,
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("valuation_ingester")

	// Initialize database
	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}

	db, err := database.NewPostgresDB(dbConfig, logger, metricsCollector)
	if err != nil {
		logger.Fatal(ctx, "[INGESTER_ERROR] Failed to connect to database", logging.Fields{}, err)
	}
	defer db.Close()

	// Initialize repository
	propertyRepo := repository.NewPropertyRepository(db, logger, metricsCollector)

	// Initialize services
	ingestionService := services.NewIngestionService(propertyRepo, logger, metricsCollector)

	// Ingest data
	result, err := ingestionService.IngestCSV(ctx, *csvFile, *batchSize, *truncate)
	if err != nil {
		logger.Fatal(ctx, "[INGESTION_ERROR] Ingestion failed", logging.Fields{
			"csv_file": *csvFile,
		}, err)
	}

	// Print results
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println("INGESTION COMPLETE")
	fmt.Println(strings.Repeat("=", 80))
	fmt.Printf("Total Records:      %d\n", result.TotalRecords)
	fmt.Printf("Successful Records: %d\n", result.SuccessfulRecords)
	fmt.Printf("Failed Records:     %d\n", result.FailedRecords)
	fmt.Printf("Batches Written:    %d\n", result.BatchesWritten)
	fmt.Printf("Extract Total:      %d\n", result.ExtractTotal)
	fmt.Printf("Duration:           %v\n", result.Duration)
	fmt.Printf("Records/Second:     %.2f\n", float64(result.SuccessfulRecords)/result.Duration.Seconds())

	logger.Info(ctx, "[INGESTER_COMPLETE] Ingestion completed successfully", logging.Fields{
		"total_records":      result.TotalRecords,
		"successful_records": result.SuccessfulRecords,
		"failed_records":     result.FailedRecords,
		"batches_written":    result.BatchesWritten,
		"duration_seconds":   result.Duration.Seconds(),
	})
}
