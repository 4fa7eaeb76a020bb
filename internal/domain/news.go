package domain

import "time"

// NewsItem is an announcement published by administrators.
type NewsItem struct {
	ID        int64
	Title     string
	TitleEn   *string
	Body      string
	BodyEn    *string
	ImageURL  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PageContent is editable static page content keyed by slug.
type PageContent struct {
	ID        int64
	Slug      string
	Title     string
	Body      string
	UpdatedAt time.Time
}

// Notification is a broadcast message shown to app users. Rows are
// created by admins or by the event pipeline.
type Notification struct {
	ID        int64
	Title     string
	Body      string
	Kind      string
	CreatedAt time.Time
}
