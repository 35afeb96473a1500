package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models/dto"
	"github.com/internlink/backend/internal/app/services"
	"github.com/internlink/backend/internal/middleware"
)

// NotificationController serves the per-user notification feed
type NotificationController struct {
	notificationService *services.NotificationService
	logger              zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notificationService *services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notificationService: notificationService,
		logger:              logger,
	}
}

// GetNotifications returns the caller's unseen notifications
// @Summary List unseen notifications
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.NotificationResponse}
// @Router /getNotifications [get]
func (c *NotificationController) GetNotifications(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	notifications, err := c.notificationService.GetUnseenNotifications(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.FromNotificationList(notifications)})
}

// MarkSeen flags a notification as read
// @Summary Mark a notification as seen
// @Tags notifications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse
// @Router /getNotifications/{id}/seen [patch]
func (c *NotificationController) MarkSeen(ctx *gin.Context) {
	userID := ctx.GetInt64("userID")

	notificationID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid notification ID")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if err := c.notificationService.MarkNotificationSeen(ctx.Request.Context(), notificationID, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: dto.SuccessResponse{Message: "Notification marked as seen"}})
}
