package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/homevista/homevista-backend/internal/domain"
	"github.com/homevista/homevista-backend/internal/dto"
	"github.com/homevista/homevista-backend/internal/repository"
)

// BookingService defines operations over viewing requests
type BookingService interface {
	// Create persists a validated viewing request with status pending
	Create(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error)
	// List retrieves a page of bookings, newest first
	List(ctx context.Context, page, pageSize int) (*dto.PaginatedBookingsResponse, error)
	// UpdateStatus moves a pending booking to confirmed or cancelled
	UpdateStatus(ctx context.Context, id string, status string) (*dto.BookingResponse, error)
}

type bookingService struct {
	bookingRepo  repository.BookingRepository
	propertyRepo repository.PropertyRepository
}

// NewBookingService creates a new BookingService
func NewBookingService(bookingRepo repository.BookingRepository, propertyRepo repository.PropertyRepository) BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		propertyRepo: propertyRepo,
	}
}

// Create persists a validated viewing request with status pending
func (s *bookingService) Create(ctx context.Context, req *dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	property, err := s.propertyRepo.GetByID(ctx, req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}

	now := time.Now()
	booking := &domain.Booking{
		ID:            uuid.New().String(),
		PropertyID:    req.PropertyID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		PreferredDate: req.PreferredDate,
		PreferredTime: req.PreferredTime,
		VisitType:     domain.VisitType(req.VisitType),
		Status:        domain.BookingStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, err
	}

	return dto.NewBookingResponse(booking), nil
}

// List retrieves a page of bookings, newest first
func (s *bookingService) List(ctx context.Context, page, pageSize int) (*dto.PaginatedBookingsResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	bookings, err := s.bookingRepo.List(ctx, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}

	total, err := s.bookingRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	resp := &dto.PaginatedBookingsResponse{
		Bookings: make([]*dto.BookingResponse, 0, len(bookings)),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, dto.NewBookingResponse(b))
	}
	return resp, nil
}

// UpdateStatus moves a pending booking to confirmed or cancelled
func (s *bookingService) UpdateStatus(ctx context.Context, id string, status string) (*dto.BookingResponse, error) {
	next := domain.BookingStatus(status)
	if next != domain.BookingStatusConfirmed && next != domain.BookingStatusCancelled {
		return nil, domain.ErrInvalidStatusTransition
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, domain.ErrBookingNotFound
	}
	if booking.Status != domain.BookingStatusPending {
		return nil, domain.ErrInvalidStatusTransition
	}

	if err := s.bookingRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	booking.Status = next
	return dto.NewBookingResponse(booking), nil
}
