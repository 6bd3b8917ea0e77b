package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/homevista/homevista-backend/internal/domain"
	"github.com/homevista/homevista-backend/internal/dto"
	"github.com/homevista/homevista-backend/internal/logger"
	"github.com/homevista/homevista-backend/internal/response"
	"github.com/homevista/homevista-backend/internal/service"
)

// BookingHandler handles viewing request endpoints
type BookingHandler struct {
	bookingService service.BookingService
	log            *logger.Logger
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingService service.BookingService, log *logger.Logger) *BookingHandler {
	if log == nil {
		log = logger.Get()
	}
	return &BookingHandler{
		bookingService: bookingService,
		log:            log,
	}
}

// Create handles POST /api/v1/bookings. Validation reports every failing
// field at once, and nothing is persisted unless all fields pass. On a
// storage failure the client keeps its input and may retry.
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if fields := req.Validate(); len(fields) > 0 {
		response.ValidationError(c, fields)
		return
	}

	booking, err := h.bookingService.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			response.NotFound(c, "Property not found")
			return
		}
		h.log.Error("booking creation failed",
			zap.String("property_id", req.PropertyID),
			zap.Error(err),
		)
		response.Error(c, http.StatusInternalServerError, "BOOKING_FAILED",
			"Could not submit your request, please try again", "")
		return
	}

	response.Created(c, booking)
}

// List handles GET /api/v1/admin/bookings
func (h *BookingHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	resp, err := h.bookingService.List(c.Request.Context(), page, pageSize)
	if err != nil {
		h.log.Error("booking listing failed", zap.Error(err))
		response.InternalError(c, err)
		return
	}

	response.Success(c, resp)
}

// UpdateStatus handles PATCH /api/v1/admin/bookings/:id/status
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")

	var req dto.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	booking, err := h.bookingService.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrBookingNotFound):
			response.NotFound(c, "Booking not found")
		case errors.Is(err, domain.ErrInvalidStatusTransition):
			response.BadRequest(c, "Booking can only move from pending to confirmed or cancelled")
		default:
			h.log.Error("booking status update failed", zap.String("booking_id", id), zap.Error(err))
			response.InternalError(c, err)
		}
		return
	}

	response.Success(c, booking)
}
