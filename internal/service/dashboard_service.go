package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/homevista/homevista-backend/internal/dto"
	"github.com/homevista/homevista-backend/internal/logger"
	"github.com/homevista/homevista-backend/internal/repository"
)

const recentBookingsLimit = 5

// DashboardService produces the admin dashboard aggregates
type DashboardService interface {
	// GetStats runs the dashboard reads concurrently and joins them once
	// all have settled. A failed read logs and degrades that metric to
	// its zero value instead of failing the whole dashboard.
	GetStats(ctx context.Context) *dto.DashboardStatsResponse
}

type dashboardService struct {
	propertyRepo repository.PropertyRepository
	bookingRepo  repository.BookingRepository
	userRepo     repository.UserRepository
	log          *logger.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	propertyRepo repository.PropertyRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
	log *logger.Logger,
) DashboardService {
	if log == nil {
		log = logger.Get()
	}
	return &dashboardService{
		propertyRepo: propertyRepo,
		bookingRepo:  bookingRepo,
		userRepo:     userRepo,
		log:          log,
	}
}

// GetStats runs the five dashboard reads concurrently and joins them
func (s *dashboardService) GetStats(ctx context.Context) *dto.DashboardStatsResponse {
	stats := &dto.DashboardStatsResponse{
		RecentBookings: []*dto.BookingResponse{},
	}

	var wg sync.WaitGroup
	wg.Add(5)

	go func() {
		defer wg.Done()
		count, err := s.propertyRepo.Count(ctx)
		if err != nil {
			s.log.Error("property count failed", zap.Error(err))
			return
		}
		stats.TotalProperties = count
	}()

	go func() {
		defer wg.Done()
		count, err := s.bookingRepo.Count(ctx)
		if err != nil {
			s.log.Error("booking count failed", zap.Error(err))
			return
		}
		stats.TotalBookings = count
	}()

	go func() {
		defer wg.Done()
		count, err := s.userRepo.Count(ctx)
		if err != nil {
			s.log.Error("user count failed", zap.Error(err))
			return
		}
		stats.TotalUsers = count
	}()

	go func() {
		defer wg.Done()
		amounts, err := s.bookingRepo.Amounts(ctx)
		if err != nil {
			s.log.Error("booking amounts fetch failed", zap.Error(err))
			return
		}
		stats.TotalRevenue = sumAmounts(amounts)
	}()

	go func() {
		defer wg.Done()
		recent, err := s.bookingRepo.ListRecent(ctx, recentBookingsLimit)
		if err != nil {
			s.log.Error("recent bookings fetch failed", zap.Error(err))
			return
		}
		responses := make([]*dto.BookingResponse, 0, len(recent))
		for _, b := range recent {
			responses = append(responses, dto.NewBookingResponse(b))
		}
		stats.RecentBookings = responses
	}()

	wg.Wait()
	return stats
}

// sumAmounts folds booking amounts, treating unrecorded ones as zero
func sumAmounts(amounts []*float64) float64 {
	var total float64
	for _, amount := range amounts {
		if amount != nil {
			total += *amount
		}
	}
	return total
}
