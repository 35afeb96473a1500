package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/app/repositories"
	"github.com/internlink/backend/internal/pkg/realtime"
)

// Notifier delivers a notification to a recipient, both persisted and pushed
// over the live channel
type Notifier interface {
	Notify(ctx context.Context, recipientID int64, role models.Role, department, message string)
}

// notificationStore is the persistence surface the notification service needs
type notificationStore interface {
	CreateNotification(ctx context.Context, recipientID int64, message string) (int64, error)
	ListUnseenByRecipient(ctx context.Context, recipientID int64) ([]*models.Notification, error)
	MarkSeen(ctx context.Context, id, recipientID int64) error
}

// NotificationService persists notifications and pushes them to connected
// clients
type NotificationService struct {
	store  notificationStore
	hub    *realtime.Hub
	logger zerolog.Logger
}

var _ Notifier = (*NotificationService)(nil)
var _ notificationStore = (*repositories.NotificationRepository)(nil)

// NewNotificationService creates a new NotificationService
func NewNotificationService(store notificationStore, hub *realtime.Hub, logger zerolog.Logger) *NotificationService {
	return &NotificationService{
		store:  store,
		hub:    hub,
		logger: logger,
	}
}

// Notify stores the notification and publishes it on the recipient's topic.
// Delivery failures are logged, never propagated: a missed notification must
// not fail the operation that produced it.
func (s *NotificationService) Notify(ctx context.Context, recipientID int64, role models.Role, department, message string) {
	if _, err := s.store.CreateNotification(ctx, recipientID, message); err != nil {
		s.logger.Error().Err(err).
			Int64("recipientID", recipientID).
			Msg("Failed to persist notification")
	}

	if s.hub != nil {
		s.hub.Publish(realtime.TopicFor(role, recipientID, department), message)
	}
}

// GetUnseenNotifications lists the unseen notifications of a user
func (s *NotificationService) GetUnseenNotifications(ctx context.Context, userID int64) ([]*models.Notification, error) {
	return s.store.ListUnseenByRecipient(ctx, userID)
}

// MarkNotificationSeen marks one notification seen for its recipient
func (s *NotificationService) MarkNotificationSeen(ctx context.Context, id, userID int64) error {
	return s.store.MarkSeen(ctx, id, userID)
}
