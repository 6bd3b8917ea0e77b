package domain

import "errors"

var (
	// ErrPropertyNotFound is returned when a property does not exist
	ErrPropertyNotFound = errors.New("property not found")

	// ErrBookingNotFound is returned when a booking does not exist
	ErrBookingNotFound = errors.New("booking not found")

	// ErrInvalidPropertyType is returned for an unknown listing category
	ErrInvalidPropertyType = errors.New("invalid property type")

	// ErrInvalidStatusTransition is returned when a booking status change
	// is not allowed from its current state
	ErrInvalidStatusTransition = errors.New("invalid booking status transition")
)
