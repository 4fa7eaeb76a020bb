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

// ListingsHandler exposes the service directory and review endpoints.
type ListingsHandler struct {
	listings *service.ListingService
}

// NewListingsHandler constructs the handler.
func NewListingsHandler(listings *service.ListingService) *ListingsHandler {
	return &ListingsHandler{listings: listings}
}

// Categories handles GET /api/services/categories.
func (h *ListingsHandler) Categories(c *fiber.Ctx) error {
	categories, err := h.listings.Categories(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": dto.CategoriesFromDomain(categories)})
}

// List handles GET /api/services.
func (h *ListingsHandler) List(c *fiber.Ctx) error {
	page, limit, offset := pageParams(c)

	filter := repository.ListingFilter{
		CategoryID:    queryInt64Ptr(c, "category_id"),
		SubCategoryID: queryInt64Ptr(c, "sub_category_id"),
		SearchTerm:    queryStrPtr(c, "search"),
		SortBy:        c.Query("sortBy", "created_at"),
		Ascending:     c.Query("order") == "asc",
		Limit:         limit,
		Offset:        offset,
	}

	listings, total, err := h.listings.List(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"services":   dto.ListingsFromDomain(listings),
		"pagination": dto.NewPagination(total, page, limit),
	})
}

// Get handles GET /api/services/:id, returning the listing with reviews.
func (h *ListingsHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	listing, reviews, err := h.listings.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"service": dto.ListingFromDomain(listing),
		"reviews": dto.ReviewsFromDomain(reviews),
	})
}

// Create handles POST /api/services.
func (h *ListingsHandler) Create(c *fiber.Ctx) error {
	authCtx, ok := auth.FromFiberCtx(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.CreateListingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	listing := &domain.Listing{
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
		Name:          req.Name,
		NameEn:        req.NameEn,
		Description:   req.Description,
		DescriptionEn: req.DescriptionEn,
		Phones:        req.Phones,
		Address:       req.Address,
		Images:        req.Images,
		WorkingHours:  req.WorkingHours,
		Website:       req.Website,
		Facebook:      req.Facebook,
		Instagram:     req.Instagram,
	}
	if req.Location != nil {
		listing.Lat = &req.Location.Lat
		listing.Lng = &req.Location.Lng
	}

	created, err := h.listings.Create(c.Context(), authCtx, listing)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "service created",
		"service": dto.ListingFromDomain(created),
	})
}

// Update handles PUT /api/services/:id (owner or admin).
func (h *ListingsHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	authCtx, ok := auth.FromFiberCtx(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.UpdateListingRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	updated, err := h.listings.Update(c.Context(), authCtx, id, func(listing *domain.Listing) {
		if req.Name != nil {
			listing.Name = *req.Name
		}
		if req.NameEn != nil {
			listing.NameEn = req.NameEn
		}
		if req.CategoryID != nil {
			listing.CategoryID = *req.CategoryID
		}
		if req.SubCategoryID != nil {
			listing.SubCategoryID = req.SubCategoryID
		}
		if req.Description != nil {
			listing.Description = *req.Description
		}
		if req.DescriptionEn != nil {
			listing.DescriptionEn = req.DescriptionEn
		}
		if req.Phones != nil {
			listing.Phones = req.Phones
		}
		if req.Address != nil {
			listing.Address = *req.Address
		}
		if req.Location != nil {
			listing.Lat = &req.Location.Lat
			listing.Lng = &req.Location.Lng
		}
		if req.Images != nil {
			listing.Images = req.Images
		}
		if req.WorkingHours != nil {
			listing.WorkingHours = req.WorkingHours
		}
		if req.Website != nil {
			listing.Website = req.Website
		}
		if req.Facebook != nil {
			listing.Facebook = req.Facebook
		}
		if req.Instagram != nil {
			listing.Instagram = req.Instagram
		}
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "service updated",
		"service": dto.ListingFromDomain(updated),
	})
}

// Delete handles DELETE /api/services/:id (admin).
func (h *ListingsHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.listings.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "service deleted"})
}

// AddReview handles POST /api/services/:id/reviews.
func (h *ListingsHandler) AddReview(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	authCtx, ok := auth.FromFiberCtx(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.CreateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	review, err := h.listings.AddReview(c.Context(), authCtx, id, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "review created",
		"review":  dto.ReviewFromDomain(review),
	})
}

// UpdateReview handles PUT /api/services/:serviceId/reviews/:reviewId.
func (h *ListingsHandler) UpdateReview(c *fiber.Ctx) error {
	reviewID, err := paramID(c, "reviewId")
	if err != nil {
		return err
	}
	authCtx, ok := auth.FromFiberCtx(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	var req dto.UpdateReviewRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	review, err := h.listings.UpdateReview(c.Context(), authCtx, reviewID, req.Rating, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "review updated",
		"review":  dto.ReviewFromDomain(review),
	})
}

// DeleteReview handles DELETE /api/services/:serviceId/reviews/:reviewId.
func (h *ListingsHandler) DeleteReview(c *fiber.Ctx) error {
	reviewID, err := paramID(c, "reviewId")
	if err != nil {
		return err
	}
	authCtx, ok := auth.FromFiberCtx(c)
	if !ok {
		return apperrors.NewUnauthenticated("authentication required")
	}

	if err := h.listings.DeleteReview(c.Context(), authCtx, reviewID); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "review deleted"})
}

// ReplyToReview handles POST /api/services/:serviceId/reviews/:reviewId/reply (admin).
func (h *ListingsHandler) ReplyToReview(c *fiber.Ctx) error {
	reviewID, err := paramID(c, "reviewId")
	if err != nil {
		return err
	}

	var req dto.ReplyRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	review, err := h.listings.ReplyToReview(c.Context(), reviewID, req.AdminReply)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "reply added",
		"review":  dto.ReviewFromDomain(review),
	})
}
