package repository

import (
	"context"

	"github.com/homevista/homevista-backend/internal/domain"
)

// BookingRepository defines storage operations for viewing requests
type BookingRepository interface {
	// Create creates a new booking
	Create(ctx context.Context, booking *domain.Booking) error
	// GetByID retrieves a booking by ID, (nil, nil) when not found
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
	// List retrieves bookings newest first with limit/offset paging
	List(ctx context.Context, limit, offset int) ([]*domain.Booking, error)
	// ListRecent retrieves the most recent bookings, newest first
	ListRecent(ctx context.Context, limit int) ([]*domain.Booking, error)
	// Count returns the total number of bookings
	Count(ctx context.Context) (int64, error)
	// Amounts retrieves the amount column for all bookings; entries are
	// nil where no amount has been recorded
	Amounts(ctx context.Context) ([]*float64, error)
	// UpdateStatus updates a booking's status
	UpdateStatus(ctx context.Context, id string, status domain.BookingStatus) error
}
