package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// NotificationService persists broadcast notifications, both the
// admin-curated ones and the rows emitted by domain events.
type NotificationService struct {
	notifications repository.NotificationRepository
	dispatcher    events.Dispatcher
	logger        *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(notifications repository.NotificationRepository, dispatcher events.Dispatcher, logger *zap.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		dispatcher:    dispatcher,
		logger:        logger,
	}
}

func (s *NotificationService) List(ctx context.Context, limit, offset int) ([]domain.Notification, int64, error) {
	return s.notifications.List(ctx, limit, offset)
}

func (s *NotificationService) Get(ctx context.Context, id int64) (*domain.Notification, error) {
	notification, err := s.notifications.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("notification")
		}
		return nil, err
	}
	return notification, nil
}

func (s *NotificationService) Create(ctx context.Context, notification *domain.Notification) error {
	if notification.Kind == "" {
		notification.Kind = "announcement"
	}
	return s.notifications.Create(ctx, notification)
}

func (s *NotificationService) Delete(ctx context.Context, id int64) error {
	if err := s.notifications.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("notification")
		}
		return err
	}
	return nil
}

// RegisterHandlers subscribes to domain events. Handler failures are
// logged and never propagate to the request that published the event.
func (s *NotificationService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventReviewCreated, s.handleReviewCreated)
	s.dispatcher.Subscribe(events.EventPropertyCreated, s.handlePropertyCreated)
	s.dispatcher.Subscribe(events.EventUserDeletionRequested, s.handleUserDeletionRequested)
}

func (s *NotificationService) handleReviewCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.ReviewCreatedPayload)
	if !ok {
		return nil
	}
	return s.record(ctx, &domain.Notification{
		Title: "new review",
		Body:  fmt.Sprintf("service %d received a %d-star review", payload.ListingID, payload.Rating),
		Kind:  "review",
	}, event)
}

func (s *NotificationService) handlePropertyCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PropertyCreatedPayload)
	if !ok {
		return nil
	}
	return s.record(ctx, &domain.Notification{
		Title: "new property",
		Body:  fmt.Sprintf("property %q was listed", payload.Title),
		Kind:  "property",
	}, event)
}

func (s *NotificationService) handleUserDeletionRequested(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserDeletionRequestedPayload)
	if !ok {
		return nil
	}
	return s.record(ctx, &domain.Notification{
		Title: "account deletion requested",
		Body:  fmt.Sprintf("user %d requested account deletion", payload.UserID),
		Kind:  "moderation",
	}, event)
}

func (s *NotificationService) record(ctx context.Context, notification *domain.Notification, event events.Event) error {
	if err := s.notifications.Create(ctx, notification); err != nil {
		s.logger.Warn("persist event notification",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err),
		)
		return err
	}
	return nil
}
