package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"valuation-platform/internal/clients"
	"valuation-platform/internal/config"
	"valuation-platform/internal/handlers"
	"valuation-platform/internal/hpi"
	"valuation-platform/internal/repository"
	"valuation-platform/internal/services"
	"valuation-platform/internal/valuation"
	"valuation-platform/pkg/database"
	"valuation-platform/pkg/logging"
	"valuation-platform/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := logging.NewStructuredLogger("valuation-api", "1.0.0", logging.ParseLevel(cfg.Logging.Level))

	ctx := context.Background()
	logger.Info(ctx, "[STARTUP] Starting valuation platform API server", logging.Fields{
		"version":         "1.0.0",
		"server_host":     cfg.Server.Host,
		"server_port":     cfg.Server.Port,
		"property_source": cfg.Properties.Source,
		"snapshot_path":   cfg.Valuation.SnapshotPath,
	})

	// Initialize metrics collector
	metricsCollector := metrics.NewCollector("valuation_platform")

	// Load the house price index table
	table := hpi.Default()
	if cfg.Valuation.SnapshotPath != "" {
		table, err = hpi.LoadFile(cfg.Valuation.SnapshotPath)
		if err != nil {
			logger.Fatal(ctx, "[STARTUP_ERROR] Failed to load index snapshot", logging.Fields{
				"snapshot_path": cfg.Valuation.SnapshotPath,
			}, err)
		}
	}

	logger.Info(ctx, "[STARTUP] House price index loaded", logging.Fields{
		"version":      table.Version,
		"base_year":    table.BaseYear,
		"current_year": table.CurrentYear,
		"regions":      len(table.Index),
	})

	engine := valuation.New(table, valuation.Config{
		CurrentYear: cfg.Valuation.CurrentYear,
		BoundPct:    cfg.Valuation.BoundPct,
	})

	// The database is only dialed when it serves as the property source.
	var propertyRepo repository.PropertyRepository
	if cfg.Properties.Source == services.SourceDatabase {
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
			logger.Fatal(ctx, "[STARTUP_ERROR] Failed to connect to database", logging.Fields{}, err)
		}
		defer db.Close()

		propertyRepo = repository.NewPropertyRepository(db, logger, metricsCollector)
	}

	// Initialize clients
	postcodeClient := clients.NewPostcodeClient(cfg.PostcodeAPI.URL, cfg.PostcodeAPI.Timeout, logger, metricsCollector)
	propertyClient := clients.NewPropertyAPIClient(cfg.Properties.APIURL, cfg.Properties.APIKey, cfg.Properties.Timeout, logger, metricsCollector)

	// Initialize services
	propertyService := services.NewPropertyService(cfg.Properties.Source, propertyClient, propertyRepo, logger, metricsCollector)
	valuationService := services.NewValuationService(engine, postcodeClient, propertyService, logger, metricsCollector)

	// Initialize handlers
	valuationHandler := handlers.NewValuationHandler(valuationService, propertyService, propertyRepo, logger, metricsCollector)

	// Setup router
	router := mux.NewRouter()
	router.Use(handlers.RequestIDMiddleware)

	// Register routes
	valuationHandler.RegisterRoutes(router)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info(ctx, "[SERVER_START] HTTP server listening", logging.Fields{
			"address": server.Addr,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "[SERVER_ERROR] Server failed", logging.Fields{}, err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info(ctx, "[SHUTDOWN] Shutting down server...", logging.Fields{})

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error(ctx, "[SHUTDOWN_ERROR] Server forced to shutdown", logging.Fields{}, err)
	}

	logger.Info(ctx, "[SHUTDOWN_COMPLETE] Server stopped", logging.Fields{})
}
