package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	"github.com/spec-kit/marketplace-service/internal/repository"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

// ListingService manages the service directory and its reviews.
type ListingService struct {
	listings   repository.ListingRepository
	reviews    repository.ReviewRepository
	dispatcher events.Dispatcher
}

// NewListingService constructs the service.
func NewListingService(listings repository.ListingRepository, reviews repository.ReviewRepository, dispatcher events.Dispatcher) *ListingService {
	return &ListingService{listings: listings, reviews: reviews, dispatcher: dispatcher}
}

// Categories returns the ordered category tree.
func (s *ListingService) Categories(ctx context.Context) ([]domain.Category, error) {
	return s.listings.ListCategories(ctx)
}

// List returns listings matching the public filter, with review aggregates.
func (s *ListingService) List(ctx context.Context, filter repository.ListingFilter) ([]domain.Listing, int64, error) {
	return s.listings.List(ctx, filter)
}

// Get fetches a listing together with its reviews.
func (s *ListingService) Get(ctx context.Context, id int64) (*domain.Listing, []domain.Review, error) {
	listing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("service")
		}
		return nil, nil, err
	}

	reviews, err := s.reviews.ListByListing(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return listing, reviews, nil
}

// Create inserts a listing owned by the caller.
func (s *ListingService) Create(ctx context.Context, authCtx auth.Context, listing *domain.Listing) (*domain.Listing, error) {
	listing.UserID = authCtx.SubjectID
	if err := s.listings.Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

// Update applies the ownership rule before persisting changes.
func (s *ListingService) Update(ctx context.Context, authCtx auth.Context, id int64, apply func(*domain.Listing)) (*domain.Listing, error) {
	existing, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service")
		}
		return nil, err
	}
	if !authCtx.CanMutate(existing.UserID) {
		return nil, apperrors.NewForbidden("not allowed to edit this service")
	}

	apply(existing)
	if err := s.listings.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// Delete removes a listing. Admin-only, enforced at the route.
func (s *ListingService) Delete(ctx context.Context, id int64) error {
	if err := s.listings.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("service")
		}
		return err
	}
	return nil
}

// AddReview creates a review; one per user per listing.
func (s *ListingService) AddReview(ctx context.Context, authCtx auth.Context, listingID int64, rating int, comment string) (*domain.Review, error) {
	listing, err := s.listings.GetByID(ctx, listingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("service")
		}
		return nil, err
	}

	exists, err := s.reviews.ExistsForUser(ctx, listingID, authCtx.SubjectID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewConflict("service already reviewed by this user", nil)
	}

	review := &domain.Review{
		ListingID: listingID,
		UserID:    authCtx.SubjectID,
		Rating:    rating,
		Comment:   comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventReviewCreated,
		Actor:     events.Actor{SubjectID: authCtx.SubjectID, IsAdmin: authCtx.IsAdmin},
		Timestamp: time.Now(),
		Payload: events.ReviewCreatedPayload{
			ReviewID:       review.ID,
			ListingID:      listingID,
			ListingOwnerID: listing.UserID,
			Rating:         rating,
		},
	})
	return review, nil
}

// UpdateReview applies the ownership rule to the review author.
func (s *ListingService) UpdateReview(ctx context.Context, authCtx auth.Context, reviewID int64, rating *int, comment *string) (*domain.Review, error) {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !authCtx.CanMutate(review.UserID) {
		return nil, apperrors.NewForbidden("not allowed to edit this review")
	}

	if rating != nil {
		review.Rating = *rating
	}
	if comment != nil {
		review.Comment = *comment
	}
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// DeleteReview applies the ownership rule to the review author.
func (s *ListingService) DeleteReview(ctx context.Context, authCtx auth.Context, reviewID int64) error {
	review, err := s.getReview(ctx, reviewID)
	if err != nil {
		return err
	}
	if !authCtx.CanMutate(review.UserID) {
		return apperrors.NewForbidden("not allowed to delete this review")
	}

	return s.reviews.Delete(ctx, reviewID)
}

// ReplyToReview attaches the admin reply. Admin-only, enforced at the route.
func (s *ListingService) ReplyToReview(ctx context.Context, reviewID int64, reply string) (*domain.Review, error) {
	review, err := s.reviews.SetReply(ctx, reviewID, reply, time.Now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("review")
		}
		return nil, err
	}
	return review, nil
}

func (s *ListingService) getReview(ctx context.Context, id int64) (*domain.Review, error) {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("review")
		}
		return nil, err
	}
	return review, nil
}
