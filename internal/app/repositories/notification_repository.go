package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/internlink/backend/internal/app/models"
	"github.com/internlink/backend/internal/pkg/apperrors"
)

// NotificationRepository handles database operations for stored notifications
type NotificationRepository struct {
	db *pgxpool.Pool
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// CreateNotification stores a notification for a recipient
func (r *NotificationRepository) CreateNotification(ctx context.Context, recipientID int64, message string) (int64, error) {
	query := squirrel.Insert("notifications").
		Columns("recipient_id", "message", "seen").
		Values(recipientID, message, false).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating notification: %w", err)
	}

	return id, nil
}

// ListUnseenByRecipient lists the unseen notifications of a user
func (r *NotificationRepository) ListUnseenByRecipient(ctx context.Context, recipientID int64) ([]*models.Notification, error) {
	query := squirrel.Select("id", "message", "seen", "recipient_id", "created_at").
		From("notifications").
		Where("recipient_id = ? AND seen = FALSE", recipientID).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.Message, &n.Seen, &n.RecipientID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}

	return notifications, rows.Err()
}

// MarkSeen marks a notification seen, scoped to its recipient
func (r *NotificationRepository) MarkSeen(ctx context.Context, id, recipientID int64) error {
	query := squirrel.Update("notifications").
		Set("seen", true).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error marking notification seen: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotificationNotFound
	}

	return nil
}
