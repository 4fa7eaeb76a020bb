package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// LocationPayload is an optional coordinate pair.
type LocationPayload struct {
	Lat float64 `json:"lat" validate:"required"`
	Lng float64 `json:"lng" validate:"required"`
}

// CreatePropertyRequest payload for new property listings.
type CreatePropertyRequest struct {
	Title         string           `json:"title" validate:"required"`
	TitleEn       *string          `json:"titleEn" validate:"omitempty"`
	Type          string           `json:"type" validate:"required,oneof=sale rent"`
	Price         float64          `json:"price" validate:"required,gt=0"`
	Area          float64          `json:"area" validate:"required,gt=0"`
	Bedrooms      *int             `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms     *int             `json:"bathrooms" validate:"omitempty,min=0"`
	Description   string           `json:"description" validate:"required"`
	DescriptionEn *string          `json:"descriptionEn" validate:"omitempty"`
	Address       string           `json:"address" validate:"required"`
	Location      *LocationPayload `json:"location" validate:"omitempty"`
	Images        []string         `json:"images" validate:"omitempty"`
	Amenities     []string         `json:"amenities" validate:"omitempty"`
	Phone         string           `json:"phone" validate:"required"`
}

// UpdatePropertyRequest carries optional property edits.
type UpdatePropertyRequest struct {
	Title         *string          `json:"title" validate:"omitempty"`
	TitleEn       *string          `json:"titleEn" validate:"omitempty"`
	Type          *string          `json:"type" validate:"omitempty,oneof=sale rent"`
	Price         *float64         `json:"price" validate:"omitempty,gt=0"`
	Area          *float64         `json:"area" validate:"omitempty,gt=0"`
	Bedrooms      *int             `json:"bedrooms" validate:"omitempty,min=0"`
	Bathrooms     *int             `json:"bathrooms" validate:"omitempty,min=0"`
	Description   *string          `json:"description" validate:"omitempty"`
	DescriptionEn *string          `json:"descriptionEn" validate:"omitempty"`
	Address       *string          `json:"address" validate:"omitempty"`
	Location      *LocationPayload `json:"location" validate:"omitempty"`
	Images        []string         `json:"images" validate:"omitempty"`
	Amenities     []string         `json:"amenities" validate:"omitempty"`
	Phone         *string          `json:"phone" validate:"omitempty"`
}

// PropertyResponse is the public property projection.
type PropertyResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	Title         string    `json:"title"`
	TitleEn       *string   `json:"titleEn,omitempty"`
	Type          string    `json:"type"`
	Price         float64   `json:"price"`
	Area          float64   `json:"area"`
	Bedrooms      *int      `json:"bedrooms,omitempty"`
	Bathrooms     *int      `json:"bathrooms,omitempty"`
	Description   string    `json:"description"`
	DescriptionEn *string   `json:"descriptionEn,omitempty"`
	Address       string    `json:"address"`
	Lat           *float64  `json:"lat,omitempty"`
	Lng           *float64  `json:"lng,omitempty"`
	Images        []string  `json:"images"`
	Amenities     []string  `json:"amenities"`
	Phone         string    `json:"phone"`
	Views         int64     `json:"views"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PropertyFromDomain projects a property for responses.
func PropertyFromDomain(property *domain.Property) PropertyResponse {
	images := property.Images
	if images == nil {
		images = []string{}
	}
	amenities := property.Amenities
	if amenities == nil {
		amenities = []string{}
	}
	return PropertyResponse{
		ID:            property.ID,
		UserID:        property.UserID,
		Title:         property.Title,
		TitleEn:       property.TitleEn,
		Type:          string(property.Type),
		Price:         property.Price,
		Area:          property.Area,
		Bedrooms:      property.Bedrooms,
		Bathrooms:     property.Bathrooms,
		Description:   property.Description,
		DescriptionEn: property.DescriptionEn,
		Address:       property.Address,
		Lat:           property.Lat,
		Lng:           property.Lng,
		Images:        images,
		Amenities:     amenities,
		Phone:         property.Phone,
		Views:         property.Views,
		CreatedAt:     property.CreatedAt,
		UpdatedAt:     property.UpdatedAt,
	}
}

// PropertiesFromDomain projects a slice of properties.
func PropertiesFromDomain(properties []domain.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		out = append(out, PropertyFromDomain(&properties[i]))
	}
	return out
}
