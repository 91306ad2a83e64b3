package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/himsog/himsog-api/internal/httperr"
	"github.com/himsog/himsog-api/internal/httpresp"
	"github.com/himsog/himsog-api/internal/middleware"
	"github.com/himsog/himsog-api/internal/models"
	"github.com/himsog/himsog-api/internal/timezone"
)

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	providerID := c.MustGet(middleware.ContextProviderID).(uint)

	q := h.db.Where("user_id = ?", userID)
	if providerID != 0 {
		q = h.db.Where("user_id = ? OR provider_id = ?", userID, providerID)
	}

	var notifications []models.Notification
	if err := q.
		Order("created_at DESC").
		Limit(100).
		Find(&notifications).Error; err != nil {

		httperr.Internal(c, "failed_to_list_notifications", "Failed to list notifications.")
		return
	}

	httpresp.List(c, notifications)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	providerID := c.MustGet(middleware.ContextProviderID).(uint)
	id := c.Param("id")

	var n models.Notification
	if err := h.db.First(&n, "id = ?", id).Error; err != nil {
		httperr.NotFound(c, "notification_not_found", "Notification not found.")
		return
	}

	owned := (n.UserID != nil && *n.UserID == userID) ||
		(n.ProviderID != nil && providerID != 0 && *n.ProviderID == providerID)
	if !owned {
		httperr.Forbidden(c, "not_owner", "You do not own this notification.")
		return
	}

	now := timezone.Now()
	n.ReadAt = &now

	if err := h.db.Save(&n).Error; err != nil {
		httperr.Internal(c, "failed_to_update_notification", "Failed to update notification.")
		return
	}

	c.JSON(http.StatusOK, n)
}
