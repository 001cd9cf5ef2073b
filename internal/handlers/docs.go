package handlers

import (
	"encoding/json"
	"net/http"
)

// OpenAPISpec returns the OpenAPI 3.0 specification for the Valuation Platform API
func OpenAPISpec(w http.ResponseWriter, r *http.Request) {
	spec := map[string]interface{}{
		"openapi": "3.0.0",
		"info": map[string]interface{}{
			"title":       "Valuation Platform API",
			"description": "Residential property valuation platform with index-based estimates, region classification, and PostgreSQL-backed property records",
			"version":     "1.0.0",
			"contact": map[string]string{
				"name": "Valuation Platform Team",
			},
		},
		"servers": []map[string]string{
			{"url": "http://localhost:8080", "description": "Local development server"},
		},
		"paths": map[string]interface{}{
			"/api/properties": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Get properties",
					"description": "Retrieve property records for a postcode from the configured source, with a static fallback when the source is unreachable",
					"parameters": []map[string]interface{}{
						{
							"name":        "postcode",
							"in":          "query",
							"description": "Postcode to search",
							"required":    true,
							"schema":      map[string]string{"type": "string"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Successful response",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"postcode": map[string]string{"type": "string"},
											"source":   map[string]interface{}{"type": "string", "enum": []string{"api", "database", "fallback"}},
											"count":    map[string]string{"type": "integer"},
											"properties": map[string]interface{}{
												"type":  "array",
												"items": propertySchema(),
											},
										},
									},
								},
							},
						},
						"400": map[string]interface{}{
							"description": "Missing postcode parameter",
						},
					},
				},
			},
			"/api/valuations": map[string]interface{}{
				"post": map[string]interface{}{
					"summary":     "Value a property",
					"description": "Estimate the current value of a property from its last sale, scaled by the regional house price index",
					"parameters": []map[string]interface{}{
						{
							"name":        "include_series",
							"in":          "query",
							"description": "Include the year-by-year value series (default: false)",
							"required":    false,
							"schema":      map[string]interface{}{"type": "boolean", "default": false},
						},
					},
					"requestBody": map[string]interface{}{
						"required": true,
						"content": map[string]interface{}{
							"application/json": map[string]interface{}{
								"schema": map[string]interface{}{
									"type":     "object",
									"required": []string{"postcode"},
									"properties": map[string]interface{}{
										"postcode":    map[string]string{"type": "string"},
										"property_id": map[string]interface{}{"type": "string", "description": "Resolve the record from the configured property source"},
										"property":    propertySchema(),
									},
								},
							},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Successful valuation",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"postcode":     map[string]string{"type": "string"},
											"region_label": map[string]string{"type": "string"},
											"region":       map[string]interface{}{"type": "string", "enum": []string{"LONDON", "SOUTH_EAST", "UK_AVERAGE"}},
											"source":       map[string]string{"type": "string"},
											"property":     propertySchema(),
											"valuation": map[string]interface{}{
												"type": "object",
												"properties": map[string]interface{}{
													"estimated_value": map[string]string{"type": "integer"},
													"lower_bound":     map[string]string{"type": "integer"},
													"upper_bound":     map[string]string{"type": "integer"},
													"growth_factor":   map[string]string{"type": "string"},
													"available":       map[string]string{"type": "boolean"},
													"sold_year":       map[string]string{"type": "integer"},
													"current_year":    map[string]string{"type": "integer"},
													"region":          map[string]string{"type": "string"},
													"series": map[string]interface{}{
														"type": "array",
														"items": map[string]interface{}{
															"type": "object",
															"properties": map[string]interface{}{
																"year":  map[string]string{"type": "integer"},
																"index": map[string]string{"type": "string"},
																"value": map[string]string{"type": "integer"},
															},
														},
													},
												},
											},
										},
									},
								},
							},
						},
						"400": map[string]interface{}{
							"description": "Invalid request body or parameters",
						},
						"404": map[string]interface{}{
							"description": "Property not found",
						},
					},
				},
			},
			"/api/regions/{postcode}": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Classify a postcode",
					"description": "Resolve a postcode to its index region via the postcode lookup service",
					"parameters": []map[string]interface{}{
						{
							"name":        "postcode",
							"in":          "path",
							"description": "Postcode to classify",
							"required":    true,
							"schema":      map[string]string{"type": "string"},
						},
					},
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Successful response",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"postcode":     map[string]string{"type": "string"},
											"region_label": map[string]string{"type": "string"},
											"region":       map[string]interface{}{"type": "string", "enum": []string{"LONDON", "SOUTH_EAST", "UK_AVERAGE"}},
										},
									},
								},
							},
						},
					},
				},
			},
			"/health": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Health check",
					"description": "Check if the API is running",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "API is healthy",
							"content": map[string]interface{}{
								"application/json": map[string]interface{}{
									"schema": map[string]interface{}{
										"type": "object",
										"properties": map[string]interface{}{
											"status":   map[string]string{"type": "string"},
											"database": map[string]string{"type": "string"},
										},
									},
								},
							},
						},
					},
				},
			},
			"/metrics": map[string]interface{}{
				"get": map[string]interface{}{
					"summary":     "Prometheus metrics",
					"description": "Prometheus metrics endpoint for monitoring",
					"responses": map[string]interface{}{
						"200": map[string]interface{}{
							"description": "Prometheus metrics in text format",
							"content": map[string]interface{}{
								"text/plain": map[string]interface{}{
									"schema": map[string]string{"type": "string"},
								},
							},
						},
					},
				},
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spec)
}

func propertySchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id":              map[string]string{"type": "string"},
			"address":         map[string]string{"type": "string"},
			"postcode":        map[string]string{"type": "string"},
			"property_type":   map[string]string{"type": "string"},
			"floor_area_sqm":  map[string]interface{}{"type": "number", "nullable": true},
			"energy_rating":   map[string]interface{}{"type": "string", "nullable": true},
			"last_sold_date":  map[string]interface{}{"type": "string", "format": "date-time", "nullable": true},
			"last_sold_price": map[string]string{"type": "integer"},
		},
	}
}
