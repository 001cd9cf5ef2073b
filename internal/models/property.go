package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// validPropertyTypes is the closed set of dwelling categories accepted
// from ingestion sources.
var validPropertyTypes = map[string]bool{
	"house":      true,
	"flat":       true,
	"bungalow":   true,
	"maisonette": true,
	"park_home":  true,
}

// PropertyRecord represents a single residential property as known to the
// platform. A LastSoldPrice of 0 means no recorded sale (registry-only
// entry); a nil LastSoldDate means the sale date is unknown.
type PropertyRecord struct {
	ID            string     `json:"id" db:"id"`
	Address       string     `json:"address" db:"address"`
	Postcode      string     `json:"postcode" db:"postcode"`
	PropertyType  string     `json:"property_type" db:"property_type"`
	FloorAreaSqm  *float64   `json:"floor_area_sqm,omitempty" db:"floor_area_sqm"`
	EnergyRating  string     `json:"energy_rating,omitempty" db:"energy_rating"`
	LastSoldDate  *time.Time `json:"last_sold_date,omitempty" db:"last_sold_date"`
	LastSoldPrice int64      `json:"last_sold_price" db:"last_sold_price"`
}

// HasSale reports whether the record carries a usable prior sale price.
func (p *PropertyRecord) HasSale() bool {
	return p.LastSoldPrice > 0
}

// RawPropertyRecord represents a single line from a property extract CSV.
// All fields arrive as strings; ToRecord performs parsing and validation.
type RawPropertyRecord struct {
	ID            string
	Address       string
	Postcode      string
	PropertyType  string
	FloorAreaSqm  string
	EnergyRating  string
	LastSoldDate  string
	LastSoldPrice string
}

// ToRecord converts a RawPropertyRecord to a PropertyRecord.
// Empty sale date and price columns are legal and map to the
// "no recorded sale" state; malformed values are rejected.
func (r *RawPropertyRecord) ToRecord() (*PropertyRecord, error) {
	id := strings.TrimSpace(r.ID)
	if id == "" {
		return nil, &ValidationError{
			Field:   "id",
			Value:   r.ID,
			Message: "property id must not be empty",
		}
	}

	postcode := strings.ToUpper(strings.TrimSpace(r.Postcode))
	if postcode == "" {
		return nil, &ValidationError{
			Field:   "postcode",
			Value:   r.Postcode,
			Message: "postcode must not be empty",
		}
	}

	propertyType := strings.ToLower(strings.TrimSpace(r.PropertyType))
	if propertyType != "" && !validPropertyTypes[propertyType] {
		return nil, &ValidationError{
			Field:   "property_type",
			Value:   r.PropertyType,
			Message: "unknown property type",
		}
	}

	rec := &PropertyRecord{
		ID:           id,
		Address:      strings.TrimSpace(r.Address),
		Postcode:     postcode,
		PropertyType: propertyType,
	}

	// Floor area is optional; when present it must be a positive number.
	if area := strings.TrimSpace(r.FloorAreaSqm); area != "" {
		value, err := strconv.ParseFloat(area, 64)
		if err != nil || value <= 0 {
			return nil, &ValidationError{
				Field:   "floor_area_sqm",
				Value:   r.FloorAreaSqm,
				Message: "floor area must be a positive number",
			}
		}
		rec.FloorAreaSqm = &value
	}

	if rating := strings.ToUpper(strings.TrimSpace(r.EnergyRating)); rating != "" {
		if len(rating) != 1 || rating[0] < 'A' || rating[0] > 'G' {
			return nil, &ValidationError{
				Field:   "energy_rating",
				Value:   r.EnergyRating,
				Message: "energy rating must be a single letter A-G",
			}
		}
		rec.EnergyRating = rating
	}

	// Empty date column means the sale date is unknown.
	if dateStr := strings.TrimSpace(r.LastSoldDate); dateStr != "" {
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			return nil, &ValidationError{
				Field:   "last_sold_date",
				Value:   r.LastSoldDate,
				Message: "invalid date format, expected YYYY-MM-DD",
			}
		}
		rec.LastSoldDate = &date
	}

	// Empty price column means no recorded sale.
	if priceStr := strings.TrimSpace(r.LastSoldPrice); priceStr != "" {
		price, err := strconv.ParseInt(priceStr, 10, 64)
		if err != nil || price < 0 {
			return nil, &ValidationError{
				Field:   "last_sold_price",
				Value:   r.LastSoldPrice,
				Message: "sale price must be a non-negative integer",
			}
		}
		rec.LastSoldPrice = price
	}

	return rec, nil
}

// ValidationError represents a data validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsTransient returns false as validation errors are permanent
func (e *ValidationError) IsTransient() bool {
	return false
}
