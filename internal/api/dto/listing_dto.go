package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// CreateListingRequest payload for new service listings.
type CreateListingRequest struct {
	Name          string           `json:"name" validate:"required"`
	NameEn        *string          `json:"nameEn" validate:"omitempty"`
	CategoryID    int64            `json:"category_id" validate:"required"`
	SubCategoryID *int64           `json:"sub_category_id" validate:"omitempty"`
	Description   string           `json:"description" validate:"required"`
	DescriptionEn *string          `json:"descriptionEn" validate:"omitempty"`
	Phones        []string         `json:"phone" validate:"required,min=1,dive,required"`
	Address       string           `json:"address" validate:"required"`
	Location      *LocationPayload `json:"location" validate:"omitempty"`
	Images        []string         `json:"images" validate:"omitempty"`
	WorkingHours  *string          `json:"working_hours" validate:"omitempty"`
	Website       *string          `json:"website" validate:"omitempty,url"`
	Facebook      *string          `json:"facebook" validate:"omitempty,url"`
	Instagram     *string          `json:"instagram" validate:"omitempty,url"`
}

// UpdateListingRequest carries optional listing edits.
type UpdateListingRequest struct {
	Name          *string          `json:"name" validate:"omitempty"`
	NameEn        *string          `json:"nameEn" validate:"omitempty"`
	CategoryID    *int64           `json:"category_id" validate:"omitempty"`
	SubCategoryID *int64           `json:"sub_category_id" validate:"omitempty"`
	Description   *string          `json:"description" validate:"omitempty"`
	DescriptionEn *string          `json:"descriptionEn" validate:"omitempty"`
	Phones        []string         `json:"phone" validate:"omitempty,min=1,dive,required"`
	Address       *string          `json:"address" validate:"omitempty"`
	Location      *LocationPayload `json:"location" validate:"omitempty"`
	Images        []string         `json:"images" validate:"omitempty"`
	WorkingHours  *string          `json:"working_hours" validate:"omitempty"`
	Website       *string          `json:"website" validate:"omitempty,url"`
	Facebook      *string          `json:"facebook" validate:"omitempty,url"`
	Instagram     *string          `json:"instagram" validate:"omitempty,url"`
}

// CreateReviewRequest payload for new reviews.
type CreateReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,min=10,max=1000"`
}

// UpdateReviewRequest carries optional review edits.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,min=10,max=1000"`
}

// ReplyRequest payload for the admin reply on a review.
type ReplyRequest struct {
	AdminReply string `json:"admin_reply" validate:"required"`
}

// SubCategoryResponse projection.
type SubCategoryResponse struct {
	ID         int64   `json:"id"`
	CategoryID int64   `json:"category_id"`
	Name       string  `json:"name"`
	NameEn     *string `json:"name_en,omitempty"`
}

// CategoryResponse projection with nested subcategories.
type CategoryResponse struct {
	ID            int64                 `json:"id"`
	Name          string                `json:"name"`
	NameEn        *string               `json:"name_en,omitempty"`
	Icon          *string               `json:"icon,omitempty"`
	OrderIndex    int                   `json:"order_index"`
	SubCategories []SubCategoryResponse `json:"sub_categories"`
}

// ListingResponse is the public listing projection with review aggregates.
type ListingResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"user_id"`
	CategoryID    int64     `json:"category_id"`
	SubCategoryID *int64    `json:"sub_category_id,omitempty"`
	Name          string    `json:"name"`
	NameEn        *string   `json:"nameEn,omitempty"`
	Description   string    `json:"description"`
	DescriptionEn *string   `json:"descriptionEn,omitempty"`
	Phones        []string  `json:"phone"`
	Address       string    `json:"address"`
	Lat           *float64  `json:"lat,omitempty"`
	Lng           *float64  `json:"lng,omitempty"`
	Images        []string  `json:"images"`
	WorkingHours  *string   `json:"working_hours,omitempty"`
	Website       *string   `json:"website,omitempty"`
	Facebook      *string   `json:"facebook,omitempty"`
	Instagram     *string   `json:"instagram,omitempty"`
	AverageRating float64   `json:"average_rating"`
	TotalReviews  int       `json:"total_reviews"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ReviewResponse projection.
type ReviewResponse struct {
	ID           int64      `json:"id"`
	ServiceID    int64      `json:"service_id"`
	UserID       int64      `json:"user_id"`
	Rating       int        `json:"rating"`
	Comment      string     `json:"comment"`
	AdminReply   *string    `json:"admin_reply,omitempty"`
	AdminReplyAt *time.Time `json:"admin_reply_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CategoriesFromDomain projects the category tree.
func CategoriesFromDomain(categories []domain.Category) []CategoryResponse {
	out := make([]CategoryResponse, 0, len(categories))
	for _, category := range categories {
		subs := make([]SubCategoryResponse, 0, len(category.SubCategories))
		for _, sub := range category.SubCategories {
			subs = append(subs, SubCategoryResponse{
				ID:         sub.ID,
				CategoryID: sub.CategoryID,
				Name:       sub.Name,
				NameEn:     sub.NameEn,
			})
		}
		out = append(out, CategoryResponse{
			ID:            category.ID,
			Name:          category.Name,
			NameEn:        category.NameEn,
			Icon:          category.Icon,
			OrderIndex:    category.OrderIndex,
			SubCategories: subs,
		})
	}
	return out
}

// ListingFromDomain projects a listing for responses.
func ListingFromDomain(listing *domain.Listing) ListingResponse {
	phones := listing.Phones
	if phones == nil {
		phones = []string{}
	}
	images := listing.Images
	if images == nil {
		images = []string{}
	}
	return ListingResponse{
		ID:            listing.ID,
		UserID:        listing.UserID,
		CategoryID:    listing.CategoryID,
		SubCategoryID: listing.SubCategoryID,
		Name:          listing.Name,
		NameEn:        listing.NameEn,
		Description:   listing.Description,
		DescriptionEn: listing.DescriptionEn,
		Phones:        phones,
		Address:       listing.Address,
		Lat:           listing.Lat,
		Lng:           listing.Lng,
		Images:        images,
		WorkingHours:  listing.WorkingHours,
		Website:       listing.Website,
		Facebook:      listing.Facebook,
		Instagram:     listing.Instagram,
		AverageRating: listing.AverageRating,
		TotalReviews:  listing.TotalReviews,
		CreatedAt:     listing.CreatedAt,
		UpdatedAt:     listing.UpdatedAt,
	}
}

// ListingsFromDomain projects a slice of listings.
func ListingsFromDomain(listings []domain.Listing) []ListingResponse {
	out := make([]ListingResponse, 0, len(listings))
	for i := range listings {
		out = append(out, ListingFromDomain(&listings[i]))
	}
	return out
}

// ReviewFromDomain projects a review for responses.
func ReviewFromDomain(review *domain.Review) ReviewResponse {
	return ReviewResponse{
		ID:           review.ID,
		ServiceID:    review.ListingID,
		UserID:       review.UserID,
		Rating:       review.Rating,
		Comment:      review.Comment,
		AdminReply:   review.AdminReply,
		AdminReplyAt: review.AdminReplyAt,
		CreatedAt:    review.CreatedAt,
	}
}

// ReviewsFromDomain projects a slice of reviews.
func ReviewsFromDomain(reviews []domain.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, ReviewFromDomain(&reviews[i]))
	}
	return out
}
