package dto

import (
	"regexp"

	"github.com/homevista/homevista-backend/internal/domain"
)

// CreateBookingRequest represents a viewing request submission.
// Validation is intentionally field-by-field so the client can render every
// problem at once; nothing is persisted when any field fails.
type CreateBookingRequest struct {
	PropertyID    string `json:"property_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	PreferredDate string `json:"preferred_date"`
	PreferredTime string `json:"preferred_time"`
	VisitType     string `json:"visit_type"`
}

var phoneDigits = regexp.MustCompile(`\d`)

// Validate checks all fields and returns a map of field name to error
// message. An empty map means the request is valid.
func (r *CreateBookingRequest) Validate() map[string]string {
	errs := make(map[string]string)

	if r.PropertyID == "" {
		errs["property_id"] = "Property is required"
	}
	if len(r.Name) < 2 {
		errs["name"] = "Name must be at least 2 characters"
	}
	if !emailRegex.MatchString(r.Email) {
		errs["email"] = "Invalid email address"
	}
	if len(phoneDigits.FindAllString(r.Phone, -1)) < 10 {
		errs["phone"] = "Phone number must be at least 10 digits"
	}
	if r.PreferredDate == "" {
		errs["preferred_date"] = "Please select a preferred date"
	}
	if r.PreferredTime == "" {
		errs["preferred_time"] = "Please select a preferred time"
	}
	if !domain.VisitType(r.VisitType).Valid() {
		errs["visit_type"] = "Visit type must be in-person or video-call"
	}

	return errs
}

// UpdateBookingStatusRequest represents an admin status change
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingResponse represents a booking in responses
type BookingResponse struct {
	ID            string   `json:"id"`
	PropertyID    string   `json:"property_id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	PreferredDate string   `json:"preferred_date"`
	PreferredTime string   `json:"preferred_time"`
	VisitType     string   `json:"visit_type"`
	Status        string   `json:"status"`
	Amount        *float64 `json:"amount,omitempty"`
	CreatedAt     string   `json:"created_at"`
}

// NewBookingResponse converts a domain booking to its response form
func NewBookingResponse(b *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:            b.ID,
		PropertyID:    b.PropertyID,
		Name:          b.Name,
		Email:         b.Email,
		Phone:         b.Phone,
		PreferredDate: b.PreferredDate,
		PreferredTime: b.PreferredTime,
		VisitType:     string(b.VisitType),
		Status:        string(b.Status),
		Amount:        b.Amount,
		CreatedAt:     b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// PaginatedBookingsResponse wraps a booking page with its meta
type PaginatedBookingsResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
	Total    int64              `json:"total"`
}
