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

// UpdateProfileInput carries optional profile fields; nil means keep.
type UpdateProfileInput struct {
	Name     *string
	Phone    *string
	Address  *string
	Avatar   *string
	Password *string
	Status   *domain.UserStatus
}

// UserService manages app user accounts and admin moderation of them.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewUserService constructs the service.
func NewUserService(users repository.UserRepository, dispatcher events.Dispatcher, bcryptCost int) *UserService {
	return &UserService{users: users, dispatcher: dispatcher, bcryptCost: bcryptCost}
}

// List returns users matching the admin filter.
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]domain.User, int64, error) {
	return s.users.List(ctx, filter)
}

// Get fetches a single user.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies the ownership rule: a user edits its own
// profile, an admin edits anyone's. Only admins may change status.
func (s *UserService) UpdateProfile(ctx context.Context, authCtx auth.Context, id int64, input UpdateProfileInput) (*domain.User, error) {
	if !authCtx.CanMutate(id) {
		return nil, apperrors.NewForbidden("not allowed to edit this user")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Phone != nil {
		user.Phone = input.Phone
	}
	if input.Address != nil {
		user.Address = input.Address
	}
	if input.Avatar != nil {
		user.Avatar = input.Avatar
	}
	if input.Password != nil {
		hash, err := auth.HashPassword(*input.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}
	if input.Status != nil && authCtx.IsAdmin {
		user.Status = *input.Status
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user account. Admin-only, enforced at the route.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user")
		}
		return err
	}
	return nil
}

// RequestDeletion flags the caller's own account for deletion. Unlike
// profile edits this is strictly self-service; admins use Delete.
func (s *UserService) RequestDeletion(ctx context.Context, authCtx auth.Context, id int64) error {
	if authCtx.SubjectID != id {
		return apperrors.NewForbidden("not allowed")
	}

	user, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.users.UpdateStatus(ctx, id, domain.UserStatusPendingDeletion); err != nil {
		return err
	}

	return s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventUserDeletionRequested,
		Actor:     events.Actor{SubjectID: authCtx.SubjectID, IsAdmin: authCtx.IsAdmin},
		Timestamp: time.Now(),
		Payload:   events.UserDeletionRequestedPayload{UserID: user.ID, Email: user.Email},
	})
}

// UpdateRole changes a user's role. Admin-only, enforced at the route.
// Already-issued tokens keep their old role claim until refresh expiry.
func (s *UserService) UpdateRole(ctx context.Context, id int64, role domain.UserRole) (*domain.User, error) {
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

// Favorites returns saved listings/properties for self or admin callers.
func (s *UserService) Favorites(ctx context.Context, authCtx auth.Context, id int64) (*domain.Favorites, error) {
	if !authCtx.CanMutate(id) {
		return nil, apperrors.NewForbidden("not allowed")
	}

	fav, err := s.users.GetFavorites(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	return fav, nil
}
