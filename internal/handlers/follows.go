package handlers

import (
	"net/http"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/carloshsbsilva/ringconnect/internal/websocket"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// FollowUser adds the target to the caller's torcida. Self-follows are
// rejected; following twice returns 409.
// POST /api/v1/users/:id/follow
func (h *Handlers) FollowUser(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	targetID := c.Param("id")

	if targetID == userID {
		util.RespondValidationError(c, "user_id", "cannot follow yourself")
		return
	}

	var target models.Profile
	if err := database.DB.Where("user_id = ?", targetID).First(&target).Error; err != nil {
		util.RespondNotFound(c, "user")
		return
	}

	var existing models.UserFollow
	err := database.DB.Where("follower_user_id = ? AND followed_user_id = ?", userID, targetID).
		First(&existing).Error
	if err == nil {
		util.RespondConflict(c, "already following this user")
		return
	}
	if err != gorm.ErrRecordNotFound {
		util.RespondInternalError(c, "failed to load follow")
		return
	}

	follow := models.UserFollow{
		FollowerUserID: userID,
		FollowedUserID: targetID,
	}
	if err := database.DB.Create(&follow).Error; err != nil {
		util.RespondInternalError(c, "failed to follow user")
		return
	}

	var follower models.Profile
	database.DB.Where("user_id = ?", userID).First(&follower)

	h.createNotification(models.Notification{
		UserID:        targetID,
		Type:          models.NotificationUserFollow,
		Content:       follower.FullName + " entrou para sua torcida",
		ActorID:       &userID,
		RelatedUserID: &userID,
	})

	if h.wsHandler != nil {
		h.wsHandler.NotifyFollow(targetID, &websocket.FollowPayload{
			FollowerID:     userID,
			FollowerName:   follower.FullName,
			FollowerAvatar: follower.AvatarURL,
			FollowedID:     targetID,
		})
	}

	c.JSON(http.StatusCreated, gin.H{"following": true})
}

// UnfollowUser removes the target from the caller's torcida. Not
// following is a no-op.
// DELETE /api/v1/users/:id/follow
func (h *Handlers) UnfollowUser(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	targetID := c.Param("id")

	if err := database.DB.Where("follower_user_id = ? AND followed_user_id = ?", userID, targetID).
		Delete(&models.UserFollow{}).Error; err != nil {
		util.RespondInternalError(c, "failed to unfollow user")
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": false})
}

// GetFollowers lists a user's torcida with profiles
// GET /api/v1/users/:id/followers
func (h *Handlers) GetFollowers(c *gin.Context) {
	targetID := c.Param("id")
	limit, offset := util.ParsePagination(c, 50, 200)

	var profiles []models.Profile
	if err := database.DB.
		Joins("JOIN user_follows ON user_follows.follower_user_id = profiles.user_id").
		Where("user_follows.followed_user_id = ?", targetID).
		Order("user_follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		util.RespondInternalError(c, "failed to load followers")
		return
	}

	var total int64
	database.DB.Model(&models.UserFollow{}).Where("followed_user_id = ?", targetID).Count(&total)

	c.JSON(http.StatusOK, gin.H{"followers": profiles, "total": total})
}

// GetFollowing lists who a user follows
// GET /api/v1/users/:id/following
func (h *Handlers) GetFollowing(c *gin.Context) {
	targetID := c.Param("id")
	limit, offset := util.ParsePagination(c, 50, 200)

	var profiles []models.Profile
	if err := database.DB.
		Joins("JOIN user_follows ON user_follows.followed_user_id = profiles.user_id").
		Where("user_follows.follower_user_id = ?", targetID).
		Order("user_follows.created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		util.RespondInternalError(c, "failed to load following")
		return
	}

	var total int64
	database.DB.Model(&models.UserFollow{}).Where("follower_user_id = ?", targetID).Count(&total)

	c.JSON(http.StatusOK, gin.H{"following": profiles, "total": total})
}
