package handlers

import (
	"context"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/logger"
	"github.com/carloshsbsilva/ringconnect/internal/metrics"
	"github.com/carloshsbsilva/ringconnect/internal/models"
)

// createNotification stores a notification row and pushes it over the
// websocket if the recipient is connected. Failures here are logged and
// swallowed: a notification must never fail or roll back the action that
// produced it.
func (h *Handlers) createNotification(n models.Notification) {
	if n.UserID == "" {
		return
	}
	// Never notify a user about their own action
	if n.ActorID != nil && *n.ActorID == n.UserID {
		return
	}

	if err := database.DB.Create(&n).Error; err != nil {
		logger.Warn("failed to create notification", err)
		return
	}
	metrics.Get().NotificationsCreated.WithLabelValues(n.Type).Inc()

	if h.wsHandler != nil {
		h.wsHandler.NotifyUser(n.UserID, &n)
	}
}

// profileName returns the display name for a user id, empty when the
// profile is missing.
func profileName(userID string) string {
	var profile models.Profile
	if err := database.DB.Select("full_name").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return ""
	}
	return profile.FullName
}

// syncProfileToSearch pushes a profile document into the search index,
// best-effort.
func (h *Handlers) syncProfileToSearch(profile *models.Profile) {
	if h.search == nil {
		return
	}
	go func(p models.Profile) {
		doc := map[string]interface{}{
			"user_id":    p.UserID,
			"full_name":  p.FullName,
			"bio":        p.Bio,
			"location":   p.Location,
			"user_type":  p.UserType,
			"category":   p.Category,
			"gym_name":   p.GymName,
			"created_at": p.CreatedAt,
		}
		if err := h.search.IndexProfile(context.Background(), p.UserID, doc); err != nil {
			logger.Warn("failed to index profile for search", err)
		}
	}(*profile)
}
