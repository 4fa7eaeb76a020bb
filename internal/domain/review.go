package domain

import "time"

// Review is a user rating on a service listing. Each user may review a
// listing at most once; admins may attach a single reply.
type Review struct {
	ID           int64
	ListingID    int64
	UserID       int64
	Rating       int
	Comment      string
	AdminReply   *string
	AdminReplyAt *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
