package service

import (
	"context"

	"github.com/homevista/homevista-backend/internal/domain"
	"github.com/homevista/homevista-backend/internal/dto"
	"github.com/homevista/homevista-backend/internal/repository"
)

// PropertyService defines read operations over property listings
type PropertyService interface {
	// List retrieves all listings, newest first
	List(ctx context.Context) (*dto.PropertyListResponse, error)
	// ListByType retrieves listings of one category
	ListByType(ctx context.Context, propertyType string) (*dto.PropertyListResponse, error)
	// GetByID retrieves a single listing
	GetByID(ctx context.Context, id string) (*dto.PropertyResponse, error)
}

type propertyService struct {
	propertyRepo repository.PropertyRepository
}

// NewPropertyService creates a new PropertyService
func NewPropertyService(propertyRepo repository.PropertyRepository) PropertyService {
	return &propertyService{propertyRepo: propertyRepo}
}

// List retrieves all listings, newest first
func (s *propertyService) List(ctx context.Context) (*dto.PropertyListResponse, error) {
	properties, err := s.propertyRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toPropertyList(properties), nil
}

// ListByType retrieves listings of one category
func (s *propertyService) ListByType(ctx context.Context, propertyType string) (*dto.PropertyListResponse, error) {
	t := domain.PropertyType(propertyType)
	if !t.Valid() {
		return nil, domain.ErrInvalidPropertyType
	}

	properties, err := s.propertyRepo.ListByType(ctx, t)
	if err != nil {
		return nil, err
	}
	return toPropertyList(properties), nil
}

// GetByID retrieves a single listing
func (s *propertyService) GetByID(ctx context.Context, id string) (*dto.PropertyResponse, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, domain.ErrPropertyNotFound
	}
	return dto.NewPropertyResponse(property), nil
}

func toPropertyList(properties []*domain.Property) *dto.PropertyListResponse {
	resp := &dto.PropertyListResponse{
		Properties: make([]*dto.PropertyResponse, 0, len(properties)),
		Total:      len(properties),
	}
	for _, p := range properties {
		resp.Properties = append(resp.Properties, dto.NewPropertyResponse(p))
	}
	return resp
}
