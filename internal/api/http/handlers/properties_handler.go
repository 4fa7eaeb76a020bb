package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/marketplace-service/internal/api/dto"
	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/repository"
	"github.com/spec-kit/marketplace-service/internal/service"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// PropertiesHandler exposes property endpoints.
type PropertiesHandler struct {
	properties *service.PropertyService
}

// NewPropertiesHandler constructs the handler.
func NewPropertiesHandler(properties *service.PropertyService) *PropertiesHandler {
	return &PropertiesHandler{properties: properties}
}

// List handles GET /api/properties.
func (h *PropertiesHandler) List(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c)

	filter := repository.PropertyFilter{
		MinPrice:   queryFloatPtr(c, "minPrice"),
		MaxPrice:   queryFloatPtr(c, "maxPrice"),
		MinArea:    queryFloatPtr(c, "minArea"),
		MaxArea:    queryFloatPtr(c, "maxArea"),
		Bedrooms:   queryIntPtr(c, "bedrooms"),
		Bathrooms:  queryIntPtr(c, "bathrooms"),
		SearchTerm: queryStrPtr(c, "search"),
		SortBy:     c.Query("sortBy", "created_at"),
		Ascending:  c.Query("order") == "asc",
		Limit:      limit,
		Offset:     offset,
	}
	if propertyType := c.Query("type"); propertyType != "" {
		t := domain.PropertyType(propertyType)
		filter.Type = &t
	}

	properties, total, err := h.properties.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"properties": dto.PropertiesFromDomain(properties),
		"pagination": dto.NewPagination(total, page, limit),
	})
}

// Get handles GET /api/properties/:id.
func (h *PropertiesHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	property, err := h.properties.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"property": dto.PropertyFromDomain(property)})
}

// Create handles POST /api/properties.
func (h *PropertiesHandler) Create(c *fiber.Ctx) error {
	authCtx, ok := auth.FromFiberCtx(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.CreatePropertyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	property := &domain.Property{
		Title:         req.Title,
		TitleEn:       req.TitleEn,
		Type:          domain.PropertyType(req.Type),
		Price:         req.Price,
		Area:          req.Area,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		Description:   req.Description,
		DescriptionEn: req.DescriptionEn,
		Address:       req.Address,
		Images:        req.Images,
		Amenities:     req.Amenities,
		Phone:         req.Phone,
	}
	if req.Location != nil {
		property.Lat = &req.Location.Lat
		property.Lng = &req.Location.Lng
	}

	created, err := h.properties.Create(c.Context(), authCtx, property)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":  "property created",
		"property": dto.PropertyFromDomain(created),
	})
}

// Update handles PUT /api/properties/:id (owner or admin).
func (h *PropertiesHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	authCtx, ok := auth.FromFiberCtx(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.UpdatePropertyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updated, err := h.properties.Update(c.Context(), authCtx, id, func(property *domain.Property) {
		if req.Title != nil {
			property.Title = *req.Title
		}
		if req.TitleEn != nil {
			property.TitleEn = req.TitleEn
		}
		if req.Type != nil {
			property.Type = domain.PropertyType(*req.Type)
		}
		if req.Price != nil {
			property.Price = *req.Price
		}
		if req.Area != nil {
			property.Area = *req.Area
		}
		if req.Bedrooms != nil {
			property.Bedrooms = req.Bedrooms
		}
		if req.Bathrooms != nil {
			property.Bathrooms = req.Bathrooms
		}
		if req.Description != nil {
			property.Description = *req.Description
		}
		if req.DescriptionEn != nil {
			property.DescriptionEn = req.DescriptionEn
		}
		if req.Address != nil {
			property.Address = *req.Address
		}
		if req.Location != nil {
			property.Lat = &req.Location.Lat
			property.Lng = &req.Location.Lng
		}
		if req.Images != nil {
			property.Images = req.Images
		}
		if req.Amenities != nil {
			property.Amenities = req.Amenities
		}
		if req.Phone != nil {
			property.Phone = *req.Phone
		}
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "property updated",
		"property": dto.PropertyFromDomain(updated),
	})
}

// Delete handles DELETE /api/properties/:id (owner or admin).
func (h *PropertiesHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	authCtx, ok := auth.FromFiberCtx(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	if err := h.properties.Delete(c.Context(), authCtx, id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "property deleted"})
}
