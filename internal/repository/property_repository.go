package repository

import (
	"context"

	"github.com/homevista/homevista-backend/internal/domain"
)

// PropertyRepository defines storage operations for property listings.
// The public API only reads listings; rows are maintained by the back office.
type PropertyRepository interface {
	// GetByID retrieves a property by ID, (nil, nil) when not found
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	// ListByType retrieves all properties of a listing category, newest first
	ListByType(ctx context.Context, propertyType domain.PropertyType) ([]*domain.Property, error)
	// List retrieves all properties, newest first
	List(ctx context.Context) ([]*domain.Property, error)
	// Count returns the total number of properties
	Count(ctx context.Context) (int64, error)
}
