package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/marketplace-service/internal/auth"
	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
	apperrors "github.com/spec-kit/marketplace-service/pkg/util"
)

func TestUpdateProfileOwnership(t *testing.T) {
	users := newFakeUserRepo(activeUser(t, 5, "a@x.com", "secret123"))
	svc := NewUserService(users, &recordingDispatcher{}, 4)

	name := "Renamed"
	_, err := svc.UpdateProfile(context.Background(), auth.Context{SubjectID: 6}, 5, UpdateProfileInput{Name: &name})
	requireDomainCode(t, err, apperrors.CodeForbidden)

	updated, err := svc.UpdateProfile(context.Background(), auth.Context{SubjectID: 5}, 5, UpdateProfileInput{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)

	adminName := "Moderated"
	updated, err = svc.UpdateProfile(context.Background(), auth.Context{SubjectID: 99, IsAdmin: true}, 5, UpdateProfileInput{Name: &adminName})
	require.NoError(t, err)
	assert.Equal(t, "Moderated", updated.Name)
}

func TestOnlyAdminsMaySetStatus(t *testing.T) {
	users := newFakeUserRepo(activeUser(t, 5, "a@x.com", "secret123"))
	svc := NewUserService(users, &recordingDispatcher{}, 4)

	suspended := domain.UserStatusSuspended

	// A self edit silently ignores the status field.
	updated, err := svc.UpdateProfile(context.Background(), auth.Context{SubjectID: 5}, 5, UpdateProfileInput{Status: &suspended})
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusActive, updated.Status)

	updated, err = svc.UpdateProfile(context.Background(), auth.Context{SubjectID: 99, IsAdmin: true}, 5, UpdateProfileInput{Status: &suspended})
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusSuspended, updated.Status)
}

func TestUpdateProfileRehashesPassword(t *testing.T) {
	users := newFakeUserRepo(activeUser(t, 5, "a@x.com", "secret123"))
	svc := NewUserService(users, &recordingDispatcher{}, 4)

	newPassword := "another-secret"
	updated, err := svc.UpdateProfile(context.Background(), auth.Context{SubjectID: 5}, 5, UpdateProfileInput{Password: &newPassword})
	require.NoError(t, err)

	require.NoError(t, auth.ComparePassword(updated.PasswordHash, "another-secret"))
	require.Error(t, auth.ComparePassword(updated.PasswordHash, "secret123"))
}

func TestRequestDeletionIsStrictlySelf(t *testing.T) {
	users := newFakeUserRepo(activeUser(t, 5, "a@x.com", "secret123"))
	dispatcher := &recordingDispatcher{}
	svc := NewUserService(users, dispatcher, 4)

	// Even an admin cannot request deletion on someone else's behalf.
	err := svc.RequestDeletion(context.Background(), auth.Context{SubjectID: 99, IsAdmin: true}, 5)
	requireDomainCode(t, err, apperrors.CodeForbidden)
	assert.Empty(t, dispatcher.published)

	require.NoError(t, svc.RequestDeletion(context.Background(), auth.Context{SubjectID: 5}, 5))

	user, err := users.GetByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusPendingDeletion, user.Status)

	require.Len(t, dispatcher.published, 1)
	event := dispatcher.published[0]
	assert.Equal(t, events.EventUserDeletionRequested, event.Type)
	payload, ok := event.Payload.(events.UserDeletionRequestedPayload)
	require.True(t, ok)
	assert.Equal(t, int64(5), payload.UserID)
	assert.Equal(t, "a@x.com", payload.Email)
}

func TestFavoritesOwnership(t *testing.T) {
	users := newFakeUserRepo(activeUser(t, 5, "a@x.com", "secret123"))
	svc := NewUserService(users, &recordingDispatcher{}, 4)

	_, err := svc.Favorites(context.Background(), auth.Context{SubjectID: 6}, 5)
	requireDomainCode(t, err, apperrors.CodeForbidden)

	fav, err := svc.Favorites(context.Background(), auth.Context{SubjectID: 5}, 5)
	require.NoError(t, err)
	require.NotNil(t, fav)

	_, err = svc.Favorites(context.Background(), auth.Context{SubjectID: 99, IsAdmin: true}, 5)
	require.NoError(t, err)
}

func TestUpdateRoleUnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo(), &recordingDispatcher{}, 4)

	_, err := svc.UpdateRole(context.Background(), 42, domain.UserRoleBusiness)
	requireDomainCode(t, err, apperrors.CodeNotFound)
}
