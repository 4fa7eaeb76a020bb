package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReviewCreated         EventType = "review_created"
	EventPropertyCreated       EventType = "property_created"
	EventUserDeletionRequested EventType = "user_deletion_requested"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	SubjectID int64 `json:"subject_id"`
	IsAdmin   bool  `json:"is_admin,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReviewCreatedPayload payload.
type ReviewCreatedPayload struct {
	ReviewID       int64 `json:"review_id"`
	ListingID      int64 `json:"listing_id"`
	ListingOwnerID int64 `json:"listing_owner_id"`
	Rating         int   `json:"rating"`
}

// PropertyCreatedPayload payload.
type PropertyCreatedPayload struct {
	PropertyID int64  `json:"property_id"`
	Title      string `json:"title"`
}

// UserDeletionRequestedPayload payload.
type UserDeletionRequestedPayload struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
