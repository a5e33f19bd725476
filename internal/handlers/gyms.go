package handlers

import (
	"io"
	"net/http"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/storage"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateGym registers a gym owned by the caller
// POST /api/v1/gyms
func (h *Handlers) CreateGym(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Name            string  `json:"name" binding:"required,min=2,max=200"`
		Description     string  `json:"description" binding:"max=2000"`
		Address         string  `json:"address" binding:"max=500"`
		Latitude        float64 `json:"latitude"`
		Longitude       float64 `json:"longitude"`
		MonthlyFee      float64 `json:"monthly_fee"`
		PrivateClassFee float64 `json:"private_class_fee"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	gym := models.Gym{
		OwnerID:         userID,
		Name:            req.Name,
		Description:     req.Description,
		Address:         req.Address,
		Latitude:        req.Latitude,
		Longitude:       req.Longitude,
		MonthlyFee:      req.MonthlyFee,
		PrivateClassFee: req.PrivateClassFee,
	}
	if err := database.DB.Create(&gym).Error; err != nil {
		util.RespondInternalError(c, "failed to create gym")
		return
	}

	c.JSON(http.StatusCreated, gym)
}

// GetGym returns one gym with member and follower counts
// GET /api/v1/gyms/:id
func (h *Handlers) GetGym(c *gin.Context) {
	var gym models.Gym
	if err := database.DB.First(&gym, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "gym")
		return
	}

	var members, followers int64
	database.DB.Model(&models.GymMember{}).Where("gym_id = ?", gym.ID).Count(&members)
	database.DB.Model(&models.GymFollower{}).Where("gym_id = ?", gym.ID).Count(&followers)

	c.JSON(http.StatusOK, gin.H{
		"gym":            gym,
		"member_count":   members,
		"follower_count": followers,
	})
}

// ListGyms lists gyms, optionally filtered by name
// GET /api/v1/gyms
func (h *Handlers) ListGyms(c *gin.Context) {
	limit, offset := util.ParsePagination(c, 20, 100)

	query := database.DB.Order("name ASC").Limit(limit).Offset(offset)
	if q := c.Query("q"); q != "" {
		query = query.Where("name ILIKE ?", "%"+q+"%")
	}

	var gyms []models.Gym
	if err := query.Find(&gyms).Error; err != nil {
		util.RespondInternalError(c, "failed to load gyms")
		return
	}

	c.JSON(http.StatusOK, gin.H{"gyms": gyms})
}

// UpdateGym updates a gym the caller owns
// PUT /api/v1/gyms/:id
func (h *Handlers) UpdateGym(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var gym models.Gym
	if err := database.DB.First(&gym, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "gym")
		return
	}
	if gym.OwnerID != userID {
		util.RespondForbidden(c, "only the owner can update a gym")
		return
	}

	var req struct {
		Name            *string  `json:"name"`
		Description     *string  `json:"description"`
		Address         *string  `json:"address"`
		Latitude        *float64 `json:"latitude"`
		Longitude       *float64 `json:"longitude"`
		MonthlyFee      *float64 `json:"monthly_fee"`
		PrivateClassFee *float64 `json:"private_class_fee"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Address != nil {
		updates["address"] = *req.Address
	}
	if req.Latitude != nil {
		updates["latitude"] = *req.Latitude
	}
	if req.Longitude != nil {
		updates["longitude"] = *req.Longitude
	}
	if req.MonthlyFee != nil {
		updates["monthly_fee"] = *req.MonthlyFee
	}
	if req.PrivateClassFee != nil {
		updates["private_class_fee"] = *req.PrivateClassFee
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&gym).Updates(updates).Error; err != nil {
			util.RespondInternalError(c, "failed to update gym")
			return
		}
	}

	c.JSON(http.StatusOK, gym)
}

// DeleteGym removes a gym the caller owns. Memberships and follows go
// with it; posts, messages and training logs that pointed at the gym
// keep existing with gym_id cleared.
// DELETE /api/v1/gyms/:id
func (h *Handlers) DeleteGym(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var gym models.Gym
	if err := database.DB.First(&gym, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "gym")
		return
	}
	if gym.OwnerID != userID {
		util.RespondForbidden(c, "only the owner can delete a gym")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("gym_id = ?", gym.ID).Delete(&models.GymMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("gym_id = ?", gym.ID).Delete(&models.GymFollower{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.FeedPost{}).Where("gym_id = ?", gym.ID).
			Update("gym_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.ChatMessage{}).Where("gym_id = ?", gym.ID).
			Update("gym_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.TrainingLog{}).Where("gym_id = ?", gym.ID).
			Update("gym_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&gym).Error
	})
	if err != nil {
		util.RespondInternalError(c, "failed to delete gym")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UploadGymLogo replaces a gym's logo image
// POST /api/v1/gyms/:id/logo
func (h *Handlers) UploadGymLogo(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	if h.uploader == nil {
		util.RespondInternalError(c, "media storage not configured")
		return
	}

	var gym models.Gym
	if err := database.DB.First(&gym, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "gym")
		return
	}
	if gym.OwnerID != userID {
		util.RespondForbidden(c, "only the owner can update a gym")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.RespondBadRequest(c, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.RespondInternalError(c, "failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.RespondInternalError(c, "failed to read upload")
		return
	}

	result, err := h.uploader.Upload(c.Request.Context(), storage.FileKindGymLogo,
		data, userID, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.RespondValidationError(c, "file", err.Error())
		return
	}

	if err := database.DB.Model(&gym).Update("logo_url", result.URL).Error; err != nil {
		util.RespondInternalError(c, "failed to update gym")
		return
	}

	c.JSON(http.StatusOK, gin.H{"logo_url": result.URL})
}

// JoinGym adds the caller as a member. Joining twice is a no-op.
// POST /api/v1/gyms/:id/join
func (h *Handlers) JoinGym(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	gymID := c.Param("id")

	var gym models.Gym
	if err := database.DB.First(&gym, "id = ?", gymID).Error; err != nil {
		util.RespondNotFound(c, "gym")
		return
	}

	var existing models.GymMember
	err := database.DB.Where("gym_id = ? AND user_id = ?", gymID, userID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"member": true})
		return
	}
	if err != gorm.ErrRecordNotFound {
		util.RespondInternalError(c, "failed to load membership")
		return
	}

	member := models.GymMember{GymID: gymID, UserID: userID}
	if err := database.DB.Create(&member).Error; err != nil {
		util.RespondInternalError(c, "failed to join gym")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"member": true})
}

// LeaveGym removes the caller's membership
// DELETE /api/v1/gyms/:id/join
func (h *Handlers) LeaveGym(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := database.DB.Where("gym_id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&models.GymMember{}).Error; err != nil {
		util.RespondInternalError(c, "failed to leave gym")
		return
	}

	c.JSON(http.StatusOK, gin.H{"member": false})
}

// FollowGym follows a gym; its owner gets notified
// POST /api/v1/gyms/:id/follow
func (h *Handlers) FollowGym(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	gymID := c.Param("id")

	var gym models.Gym
	if err := database.DB.First(&gym, "id = ?", gymID).Error; err != nil {
		util.RespondNotFound(c, "gym")
		return
	}

	var existing models.GymFollower
	err := database.DB.Where("gym_id = ? AND user_id = ?", gymID, userID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"following": true})
		return
	}
	if err != gorm.ErrRecordNotFound {
		util.RespondInternalError(c, "failed to load follow")
		return
	}

	follower := models.GymFollower{GymID: gymID, UserID: userID}
	if err := database.DB.Create(&follower).Error; err != nil {
		util.RespondInternalError(c, "failed to follow gym")
		return
	}

	h.createNotification(models.Notification{
		UserID:        gym.OwnerID,
		Type:          models.NotificationGymFollow,
		Content:       profileName(userID) + " começou a seguir " + gym.Name,
		ActorID:       &userID,
		RelatedUserID: &userID,
	})

	c.JSON(http.StatusCreated, gin.H{"following": true})
}

// UnfollowGym stops following a gym
// DELETE /api/v1/gyms/:id/follow
func (h *Handlers) UnfollowGym(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := database.DB.Where("gym_id = ? AND user_id = ?", c.Param("id"), userID).
		Delete(&models.GymFollower{}).Error; err != nil {
		util.RespondInternalError(c, "failed to unfollow gym")
		return
	}

	c.JSON(http.StatusOK, gin.H{"following": false})
}

// GetGymMembers lists a gym's members with profiles
// GET /api/v1/gyms/:id/members
func (h *Handlers) GetGymMembers(c *gin.Context) {
	gymID := c.Param("id")
	limit, offset := util.ParsePagination(c, 50, 200)

	var profiles []models.Profile
	if err := database.DB.
		Joins("JOIN gym_members ON gym_members.user_id = profiles.user_id").
		Where("gym_members.gym_id = ?", gymID).
		Order("gym_members.joined_at ASC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error; err != nil {
		util.RespondInternalError(c, "failed to load members")
		return
	}

	c.JSON(http.StatusOK, gin.H{"members": profiles})
}
