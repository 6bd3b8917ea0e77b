package domain

import (
	"time"
)

// BookingStatus represents the lifecycle state of a viewing request
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether the status is one of the known values.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// VisitType represents how a property viewing is conducted
type VisitType string

const (
	VisitTypeInPerson  VisitType = "in-person"
	VisitTypeVideoCall VisitType = "video-call"
)

// Valid reports whether the visit type is one of the known values.
func (v VisitType) Valid() bool {
	return v == VisitTypeInPerson || v == VisitTypeVideoCall
}

// Booking represents a property viewing request. Bookings are created
// pending; status transitions happen through the admin surface only.
// Amount is filled in by the back office once a deal closes, so it is
// nullable and treated as zero in revenue aggregation until then.
type Booking struct {
	ID            string        `json:"id"`
	PropertyID    string        `json:"property_id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	PreferredDate string        `json:"preferred_date"`
	PreferredTime string        `json:"preferred_time"`
	VisitType     VisitType     `json:"visit_type"`
	Status        BookingStatus `json:"status"`
	Amount        *float64      `json:"amount,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}
