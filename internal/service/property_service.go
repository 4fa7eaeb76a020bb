package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// PropertyService manages real-estate listings.
type PropertyService struct {
	properties repository.PropertyRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewPropertyService constructs the service.
func NewPropertyService(properties repository.PropertyRepository, dispatcher events.Dispatcher, logger *zap.Logger) *PropertyService {
	return &PropertyService{properties: properties, dispatcher: dispatcher, logger: logger}
}

// List returns properties matching the public filter.
func (s *PropertyService) List(ctx context.Context, filter repository.PropertyFilter) ([]domain.Property, int64, error) {
	return s.properties.List(ctx, filter)
}

// Get fetches a property and bumps its view counter. Counter failures
// only get logged; the read itself already succeeded.
func (s *PropertyService) Get(ctx context.Context, id int64) (*domain.Property, error) {
	property, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("property")
		}
		return nil, err
	}

	if err := s.properties.IncrementViews(ctx, id); err != nil {
		s.logger.Warn("increment property views", zap.Int64("property_id", id), zap.Error(err))
	}
	return property, nil
}

// Create inserts a property owned by the caller.
func (s *PropertyService) Create(ctx context.Context, authCtx auth.Context, property *domain.Property) (*domain.Property, error) {
	property.UserID = authCtx.SubjectID
	if err := s.properties.Create(ctx, property); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventPropertyCreated,
		Actor:     events.Actor{SubjectID: authCtx.SubjectID, IsAdmin: authCtx.IsAdmin},
		Timestamp: time.Now(),
		Payload:   events.PropertyCreatedPayload{PropertyID: property.ID, Title: property.Title},
	})
	return property, nil
}

// Update applies the ownership rule before persisting changes.
func (s *PropertyService) Update(ctx context.Context, authCtx auth.Context, id int64, apply func(*domain.Property)) (*domain.Property, error) {
	existing, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("property")
		}
		return nil, err
	}
	if !authCtx.CanMutate(existing.UserID) {
		return nil, apperrors.NewForbidden("not allowed to edit this property")
	}

	apply(existing)
	if err := s.properties.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete applies the ownership rule before removing the row.
func (s *PropertyService) Delete(ctx context.Context, authCtx auth.Context, id int64) error {
	existing, err := s.properties.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("property")
		}
		return err
	}
	if !authCtx.CanMutate(existing.UserID) {
		return apperrors.NewForbidden("not allowed to delete this property")
	}

	return s.properties.Delete(ctx, id)
}
