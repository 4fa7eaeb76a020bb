package domain

import "time"

// PropertyType differentiates sale and rental listings.
type PropertyType string

const (
	PropertyTypeSale PropertyType = "sale"
	PropertyTypeRent PropertyType = "rent"
)

// Property is a real-estate listing owned by an app user.
type Property struct {
	ID            int64
	UserID        int64
	Title         string
	TitleEn       *string
	Type          PropertyType
	Price         float64
	Area          float64
	Bedrooms      *int
	Bathrooms     *int
	Description   string
	DescriptionEn *string
	Address       string
	Lat           *float64
	Lng           *float64
	Images        []string
	Amenities     []string
	Phone         string
	Views         int64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
