package dto

import (
	"github.com/homevista/homevista-backend/internal/domain"
)

// PropertyResponse represents a property listing in responses
type PropertyResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Type        string   `json:"type"`
	Location    string   `json:"location"`
	Bedrooms    int      `json:"bedrooms"`
	Bathrooms   int      `json:"bathrooms"`
	Area        float64  `json:"area"`
	Images      []string `json:"images"`
	CreatedAt   string   `json:"created_at"`
}

// NewPropertyResponse converts a domain property to its response form
func NewPropertyResponse(p *domain.Property) *PropertyResponse {
	return &PropertyResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Price:       p.Price,
		Type:        string(p.Type),
		Location:    p.Location,
		Bedrooms:    p.Bedrooms,
		Bathrooms:   p.Bathrooms,
		Area:        p.Area,
		Images:      p.Images,
		CreatedAt:   p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// PropertyListResponse wraps a property collection
type PropertyListResponse struct {
	Properties []*PropertyResponse `json:"properties"`
	Total      int                 `json:"total"`
}
