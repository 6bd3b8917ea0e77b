package domain

import (
	"time"
)

// PropertyType represents the listing category of a property
type PropertyType string

const (
	PropertyTypeSale        PropertyType = "sale"
	PropertyTypeRent        PropertyType = "rent"
	PropertyTypeDevelopment PropertyType = "development"
)

// Valid reports whether the property type is one of the known values.
func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeSale, PropertyTypeRent, PropertyTypeDevelopment:
		return true
	}
	return false
}

// Property represents a property listing. Listings are read-only on the
// public surface; rows are maintained by the back office.
type Property struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       float64      `json:"price"`
	Type        PropertyType `json:"type"`
	Location    string       `json:"location"`
	Bedrooms    int          `json:"bedrooms"`
	Bathrooms   int          `json:"bathrooms"`
	Area        float64      `json:"area"`
	Images      []string     `json:"images"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
