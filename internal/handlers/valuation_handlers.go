package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"valuation-platform/internal/models"
	"valuation-platform/internal/repository"
	"valuation-platform/internal/services"
	"valuation-platform/pkg/logging"
	"valuation-platform/pkg/metrics"
)

// ValuationHandler handles valuation API endpoints
type ValuationHandler struct {
	valuationService *services.ValuationService
	propertyService  *services.PropertyService
	repo             repository.PropertyRepository
	logger           *logging.StructuredLogger
	metrics          *metrics.Collector
}

// NewValuationHandler creates a new valuation handler. The repository is
// optional; without one the health endpoint skips the database probe.
func NewValuationHandler(
	valuationService *services.ValuationService,
	propertyService *services.PropertyService,
	repo repository.PropertyRepository,
	logger *logging.StructuredLogger,
	metricsCollector *metrics.Collector,
) *ValuationHandler {
	return &ValuationHandler{
		valuationService: valuationService,
		propertyService:  propertyService,
		repo:             repo,
		logger:           logger,
		metrics:          metricsCollector,
	}
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// PropertyListResponse represents a property lookup response
type PropertyListResponse struct {
	Postcode   string                  `json:"postcode"`
	Source     string                  `json:"source"`
	Count      int                     `json:"count"`
	Properties []models.PropertyRecord `json:"properties"`
}

// RegionResponse represents a region classification response
type RegionResponse struct {
	Postcode    string `json:"postcode"`
	RegionLabel string `json:"region_label,omitempty"`
	Region      string `json:"region"`
}

// GetProperties handles GET /api/properties
func (h *ValuationHandler) GetProperties(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/properties").Observe(duration.Seconds())
	}()

	postcode := r.URL.Query().Get("postcode")
	if postcode == "" {
		h.sendError(w, r, "postcode query parameter is required", http.StatusBadRequest)
		return
	}

	lookup, err := h.propertyService.FindByPostcode(ctx, postcode)
	if err != nil {
		h.logger.Error(ctx, "[API_GET_PROPERTIES_ERROR] Failed to look up properties", logging.Fields{
			"postcode": postcode,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/properties")
		h.sendError(w, r, "failed to retrieve properties", http.StatusInternalServerError)
		return
	}

	response := PropertyListResponse{
		Postcode:   lookup.Postcode,
		Source:     lookup.Source,
		Count:      len(lookup.Properties),
		Properties: lookup.Properties,
	}

	h.metrics.RecordAPIRequest("/api/properties", "GET", "200")
	h.sendJSON(w, response, http.StatusOK)
}

// CreateValuation handles POST /api/valuations
func (h *ValuationHandler) CreateValuation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/valuations").Observe(duration.Seconds())
	}()

	var req services.ValuationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.sendError(w, r, "invalid request body, expected JSON", http.StatusBadRequest)
		return
	}

	if seriesStr := r.URL.Query().Get("include_series"); seriesStr != "" {
		include, err := strconv.ParseBool(seriesStr)
		if err != nil {
			h.sendError(w, r, "invalid include_series value, expected true or false", http.StatusBadRequest)
			return
		}
		req.IncludeSeries = include
	}

	outcome, err := h.valuationService.ValuateProperty(ctx, req)
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			h.sendError(w, r, validationErr.Error(), http.StatusBadRequest)
			return
		}

		var notFound *repository.NotFoundError
		if errors.As(err, &notFound) {
			h.sendError(w, r, notFound.Error(), http.StatusNotFound)
			return
		}

		h.logger.Error(ctx, "[API_VALUATION_ERROR] Failed to value property", logging.Fields{
			"postcode":    req.Postcode,
			"property_id": req.PropertyID,
		}, err)
		h.metrics.RecordAPIError("internal_error", "/api/valuations")
		h.sendError(w, r, "failed to value property", http.StatusInternalServerError)
		return
	}

	h.metrics.RecordAPIRequest("/api/valuations", "POST", "200")
	h.sendJSON(w, outcome, http.StatusOK)
}

// GetRegion handles GET /api/regions/{postcode}
func (h *ValuationHandler) GetRegion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	startTime := time.Now()

	defer func() {
		duration := time.Since(startTime)
		h.metrics.APIRequestDuration.WithLabelValues("/api/regions").Observe(duration.Seconds())
	}()

	postcode := mux.Vars(r)["postcode"]

	label, key := h.valuationService.ResolveRegion(ctx, postcode)

	response := RegionResponse{
		Postcode:    postcode,
		RegionLabel: label,
		Region:      key.String(),
	}

	h.metrics.RecordAPIRequest("/api/regions", "GET", "200")
	h.sendJSON(w, response, http.StatusOK)
}

// HealthCheck handles GET /health
func (h *ValuationHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	status := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if h.repo != nil {
		if err := h.repo.HealthCheck(ctx); err != nil {
			status["status"] = "degraded"
			status["database"] = "unreachable"
		} else {
			status["database"] = "ok"
		}
	}

	h.logger.Debug(ctx, "[HEALTH_CHECK] Health check requested", logging.Fields{})
	h.sendJSON(w, status, http.StatusOK)
}

// sendJSON sends a JSON response
func (h *ValuationHandler) sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// sendError sends an error response
func (h *ValuationHandler) sendError(w http.ResponseWriter, r *http.Request, message string, statusCode int) {
	h.metrics.RecordAPIRequest(r.URL.Path, r.Method, strconv.Itoa(statusCode))

	response := ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	}

	h.sendJSON(w, response, statusCode)
}

// RegisterRoutes registers all valuation API routes
func (h *ValuationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/properties", h.GetProperties).Methods("GET")
	router.HandleFunc("/api/valuations", h.CreateValuation).Methods("POST")
	router.HandleFunc("/api/regions/{postcode}", h.GetRegion).Methods("GET")
	router.HandleFunc("/api/docs/openapi.json", OpenAPISpec).Methods("GET")
	router.HandleFunc("/docs", SwaggerUI).Methods("GET")
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")
}
