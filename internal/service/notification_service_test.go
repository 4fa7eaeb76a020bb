package service

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/marketplace-service/internal/domain"
	"github.com/spec-kit/marketplace-service/internal/events"
)

type fakeNotificationRepo struct {
	byID   map[int64]*domain.Notification
	nextID int64
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{byID: map[int64]*domain.Notification{}, nextID: 1}
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	notification.ID = r.nextID
	r.nextID++
	notification.CreatedAt = time.Now()
	r.byID[notification.ID] = notification
	return nil
}

func (r *fakeNotificationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeNotificationRepo) GetByID(_ context.Context, id int64) (*domain.Notification, error) {
	notification, ok := r.byID[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return notification, nil
}

func (r *fakeNotificationRepo) List(_ context.Context, _, _ int) ([]domain.Notification, int64, error) {
	notifications := make([]domain.Notification, 0, len(r.byID))
	for _, notification := range r.byID {
		notifications = append(notifications, *notification)
	}
	return notifications, int64(len(notifications)), nil
}

func TestCreateDefaultsKind(t *testing.T) {
	repo := newFakeNotificationRepo()
	svc := NewNotificationService(repo, nil, zap.NewNop())

	notification := &domain.Notification{Title: "t", Body: "b"}
	require.NoError(t, svc.Create(context.Background(), notification))
	assert.Equal(t, "announcement", notification.Kind)

	tagged := &domain.Notification{Title: "t", Body: "b", Kind: "custom"}
	require.NoError(t, svc.Create(context.Background(), tagged))
	assert.Equal(t, "custom", tagged.Kind)
}

func TestEventsProduceNotificationRows(t *testing.T) {
	repo := newFakeNotificationRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(repo, dispatcher, zap.NewNop())
	svc.RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID:   "evt-1",
		Type: events.EventReviewCreated,
		Payload: events.ReviewCreatedPayload{
			ReviewID: 1, ListingID: 10, ListingOwnerID: 3, Rating: 4,
		},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID:      "evt-2",
		Type:    events.EventPropertyCreated,
		Payload: events.PropertyCreatedPayload{PropertyID: 7, Title: "Villa"},
	}))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID:      "evt-3",
		Type:    events.EventUserDeletionRequested,
		Payload: events.UserDeletionRequestedPayload{UserID: 5, Email: "a@x.com"},
	}))

	rows, total, err := svc.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	kinds := map[string]bool{}
	for _, row := range rows {
		kinds[row.Kind] = true
	}
	assert.True(t, kinds["review"])
	assert.True(t, kinds["property"])
	assert.True(t, kinds["moderation"])
}

func TestMismatchedPayloadIsIgnored(t *testing.T) {
	repo := newFakeNotificationRepo()
	dispatcher := events.NewInMemoryDispatcher()
	svc := NewNotificationService(repo, dispatcher, zap.NewNop())
	svc.RegisterHandlers()

	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		ID:      "evt-bad",
		Type:    events.EventReviewCreated,
		Payload: "not a review payload",
	}))

	_, total, err := svc.List(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
}
