package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/pkg/apperrors"
)

type fakeNotificationStore struct {
	notifications map[int64]*models.Notification
	nextID        int64
	createErr     error
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{notifications: make(map[int64]*models.Notification), nextID: 1}
}

func (f *fakeNotificationStore) CreateNotification(_ context.Context, recipientID int64, message string) (int64, error) {
	if f.createErr != nil {
		return 0, f.createErr
	}
	n := &models.Notification{
		ID:          f.nextID,
		RecipientID: recipientID,
		Message:     message,
		CreatedAt:   time.Now(),
	}
	f.nextID++
	f.notifications[n.ID] = n
	return n.ID, nil
}

func (f *fakeNotificationStore) ListUnseenByRecipient(_ context.Context, recipientID int64) ([]*models.Notification, error) {
	var result []*models.Notification
	for _, n := range f.notifications {
		if n.RecipientID == recipientID && !n.Seen {
			result = append(result, n)
		}
	}
	return result, nil
}

func (f *fakeNotificationStore) MarkSeen(_ context.Context, id, recipientID int64) error {
	n, ok := f.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return apperrors.ErrNotificationNotFound
	}
	n.Seen = true
	return nil
}

func TestNotify(t *testing.T) {
	ctx := context.Background()

	t.Run("persists the notification", func(t *testing.T) {
		store := newFakeNotificationStore()
		service := NewNotificationService(store, nil, zerolog.Nop())

		service.Notify(ctx, 30, models.RoleStudent, "Computer Science", "New offer approved by teacher: Martin")

		unseen, err := service.GetUnseenNotifications(ctx, 30)
		require.NoError(t, err)
		require.Len(t, unseen, 1)
		assert.Equal(t, "New offer approved by teacher: Martin", unseen[0].Message)
	})

	t.Run("a store failure is swallowed", func(t *testing.T) {
		store := newFakeNotificationStore()
		store.createErr = errors.New("connection refused")
		service := NewNotificationService(store, nil, zerolog.Nop())

		// Must not panic or propagate
		service.Notify(ctx, 30, models.RoleStudent, "Computer Science", "message")
	})
}

func TestMarkNotificationSeen(t *testing.T) {
	ctx := context.Background()

	t.Run("marks only the recipient's own notification", func(t *testing.T) {
		store := newFakeNotificationStore()
		service := NewNotificationService(store, nil, zerolog.Nop())
		id, err := store.CreateNotification(ctx, 30, "message")
		require.NoError(t, err)

		err = service.MarkNotificationSeen(ctx, id, 31)
		assert.ErrorIs(t, err, apperrors.ErrNotificationNotFound)

		require.NoError(t, service.MarkNotificationSeen(ctx, id, 30))
		unseen, err := service.GetUnseenNotifications(ctx, 30)
		require.NoError(t, err)
		assert.Empty(t, unseen)
	})
}
