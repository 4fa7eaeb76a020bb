package domain

import "time"

// Category groups service listings; ordered for display.
type Category struct {
	ID            int64
	Name          string
	NameEn        *string
	Icon          *string
	OrderIndex    int
	SubCategories []SubCategory
}

// SubCategory refines a category.
type SubCategory struct {
	ID         int64
	CategoryID int64
	Name       string
	NameEn     *string
}

// Listing is a business service entry in the directory, owned by the
// app user who registered it.
type Listing struct {
	ID            int64
	UserID        int64
	CategoryID    int64
	SubCategoryID *int64
	Name          string
	NameEn        *string
	Description   string
	DescriptionEn *string
	Phones        []string
	Address       string
	Lat           *float64
	Lng           *float64
	Images        []string
	WorkingHours  *string
	Website       *string
	Facebook      *string
	Instagram     *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Aggregates computed by the repository, not stored columns.
	AverageRating float64
	TotalReviews  int
}
