package dto

import (
	"time"

	"github.com/internlink/backend/internal/app/models"
)

// NotificationResponse represents a stored notification
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Message   string    `json:"message"`
	Seen      bool      `json:"seen"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromNotification converts a notification model to its response representation
func FromNotification(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Message:   n.Message,
		Seen:      n.Seen,
		CreatedAt: n.CreatedAt,
	}
}

// FromNotificationList converts a slice of notifications
func FromNotificationList(notifications []*models.Notification) []NotificationResponse {
	result := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		result = append(result, FromNotification(n))
	}
	return result
}

// InternshipStatResponse is one row of the per-department internship chart
type InternshipStatResponse struct {
	Department    string `json:"department"`
	StudentCount  int64  `json:"studentCount"`
	OnInternship  int64  `json:"onInternship"`
	OffInternship int64  `json:"offInternship"`
}
