package handler

import (
	appnotification "github.com/retailpos/backend/internal/application/notification"
	"github.com/retailpos/backend/internal/domain/notification"
	"github.com/retailpos/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles notification read endpoints
type NotificationHandler struct {
	BaseHandler
	reminderService *appnotification.ReminderService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(reminderService *appnotification.ReminderService) *NotificationHandler {
	return &NotificationHandler{reminderService: reminderService}
}

// RegisterRoutes registers notification routes
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	{
		notifications.GET("", h.ListNotifications)
	}
}

// ListNotificationsRequest extends the common list request with notification filters
type ListNotificationsRequest struct {
	dto.ListRequest
	Status string `form:"status" binding:"omitempty,oneof=PENDING SENT FAILED"`
}

// ListNotifications lists notifications visible to the actor
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	var req ListNotificationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	filter := notification.NotificationFilter{Filter: toFilter(req.ListRequest)}
	if req.Status != "" {
		status := notification.NotificationStatus(req.Status)
		filter.Status = &status
	}

	notifications, err := h.reminderService.ListNotifications(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, notifications)
}
