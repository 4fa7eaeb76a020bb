package dto

import (
	"time"

	"github.com/spec-kit/marketplace-service/internal/domain"
)

// NewsRequest payload for creating or updating a news item.
type NewsRequest struct {
	Title    string  `json:"title" validate:"required"`
	TitleEn  *string `json:"titleEn" validate:"omitempty"`
	Body     string  `json:"body" validate:"required"`
	BodyEn   *string `json:"bodyEn" validate:"omitempty"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

// NewsResponse projection.
type NewsResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	TitleEn   *string   `json:"titleEn,omitempty"`
	Body      string    `json:"body"`
	BodyEn    *string   `json:"bodyEn,omitempty"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ContentRequest payload for upserting static page content.
type ContentRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
}

// ContentResponse projection.
type ContentResponse struct {
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NotificationRequest payload for admin-created notifications.
type NotificationRequest struct {
	Title string `json:"title" validate:"required"`
	Body  string `json:"body" validate:"required"`
	Kind  string `json:"kind" validate:"omitempty"`
}

// NotificationResponse projection.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// NewsFromDomain projects a news item.
func NewsFromDomain(item *domain.NewsItem) NewsResponse {
	return NewsResponse{
		ID:        item.ID,
		Title:     item.Title,
		TitleEn:   item.TitleEn,
		Body:      item.Body,
		BodyEn:    item.BodyEn,
		ImageURL:  item.ImageURL,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// NewsListFromDomain projects a slice of news items.
func NewsListFromDomain(items []domain.NewsItem) []NewsResponse {
	out := make([]NewsResponse, 0, len(items))
	for i := range items {
		out = append(out, NewsFromDomain(&items[i]))
	}
	return out
}

// ContentFromDomain projects page content.
func ContentFromDomain(content *domain.PageContent) ContentResponse {
	return ContentResponse{
		Slug:      content.Slug,
		Title:     content.Title,
		Body:      content.Body,
		UpdatedAt: content.UpdatedAt,
	}
}

// NotificationFromDomain projects a notification.
func NotificationFromDomain(notification *domain.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        notification.ID,
		Title:     notification.Title,
		Body:      notification.Body,
		Kind:      notification.Kind,
		CreatedAt: notification.CreatedAt,
	}
}

// NotificationsFromDomain projects a slice of notifications.
func NotificationsFromDomain(notifications []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notifications))
	for i := range notifications {
		out = append(out, NotificationFromDomain(&notifications[i]))
	}
	return out
}
