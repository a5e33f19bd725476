package handlers

import (
	"net/http"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
)

// GetNotifications lists the caller's notifications, newest first
// GET /api/v1/notifications
func (h *Handlers) GetNotifications(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	limit, offset := util.ParsePagination(c, 20, 100)

	query := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)
	if c.Query("unread") == "true" {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Find(&notifications).Error; err != nil {
		util.RespondInternalError(c, "failed to load notifications")
		return
	}

	var unread int64
	database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&unread)

	c.JSON(http.StatusOK, gin.H{
		"notifications": notifications,
		"unread_count":  unread,
	})
}

// MarkNotificationRead marks one of the caller's notifications read
// PUT /api/v1/notifications/:id/read
func (h *Handlers) MarkNotificationRead(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	result := database.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", c.Param("id"), userID).
		Update("read", true)
	if result.Error != nil {
		util.RespondInternalError(c, "failed to update notification")
		return
	}
	if result.RowsAffected == 0 {
		util.RespondNotFound(c, "notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"read": true})
}

// MarkAllNotificationsRead marks every unread notification read
// PUT /api/v1/notifications/read
func (h *Handlers) MarkAllNotificationsRead(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	result := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	if result.Error != nil {
		util.RespondInternalError(c, "failed to update notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"marked_read": result.RowsAffected})
}

// GetUnreadNotificationCount returns just the badge number
// GET /api/v1/notifications/unread-count
func (h *Handlers) GetUnreadNotificationCount(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var unread int64
	if err := database.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&unread).Error; err != nil {
		util.RespondInternalError(c, "failed to count notifications")
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread_count": unread})
}
