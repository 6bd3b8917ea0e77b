package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/homevista/homevista-backend/internal/domain"
	"github.com/homevista/homevista-backend/internal/logger"
	"github.com/homevista/homevista-backend/internal/response"
	"github.com/homevista/homevista-backend/internal/service"
)

// PropertyHandler handles public property listing endpoints
type PropertyHandler struct {
	propertyService service.PropertyService
	log             *logger.Logger
}

// NewPropertyHandler creates a new PropertyHandler
func NewPropertyHandler(propertyService service.PropertyService, log *logger.Logger) *PropertyHandler {
	if log == nil {
		log = logger.Get()
	}
	return &PropertyHandler{
		propertyService: propertyService,
		log:             log,
	}
}

// List handles GET /api/v1/properties. An optional ?type= query narrows
// the listing to one category (sale, rent, development).
func (h *PropertyHandler) List(c *gin.Context) {
	propertyType := c.Query("type")

	var (
		resp interface{}
		err  error
	)
	if propertyType == "" {
		resp, err = h.propertyService.List(c.Request.Context())
	} else {
		resp, err = h.propertyService.ListByType(c.Request.Context(), propertyType)
	}

	if err != nil {
		if errors.Is(err, domain.ErrInvalidPropertyType) {
			response.BadRequest(c, "Unknown property type")
			return
		}
		h.log.Error("property listing failed", zap.Error(err))
		response.InternalError(c, err)
		return
	}

	response.Success(c, resp)
}

// GetByID handles GET /api/v1/properties/:id
func (h *PropertyHandler) GetByID(c *gin.Context) {
	id := c.Param("id")

	property, err := h.propertyService.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			response.NotFound(c, "Property not found")
			return
		}
		h.log.Error("property fetch failed", zap.String("property_id", id), zap.Error(err))
		response.InternalError(c, err)
		return
	}

	response.Success(c, property)
}
