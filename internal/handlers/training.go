package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateTrainingLog records a training session
// POST /api/v1/training-logs
func (h *Handlers) CreateTrainingLog(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		TrainingDate     string  `json:"training_date" binding:"required"`
		DurationHours    float64 `json:"duration_hours" binding:"required,gt=0,lte=24"`
		Notes            string  `json:"notes" binding:"max=2000"`
		DidSparring      bool    `json:"did_sparring"`
		DidSparringLight bool    `json:"did_sparring_light"`
		GymID            *string `json:"gym_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.TrainingDate)
	if err != nil {
		util.RespondValidationError(c, "training_date", "must be YYYY-MM-DD")
		return
	}

	log := models.TrainingLog{
		UserID:           userID,
		TrainingDate:     date,
		DurationHours:    req.DurationHours,
		Notes:            req.Notes,
		DidSparring:      req.DidSparring,
		DidSparringLight: req.DidSparringLight,
		GymID:            req.GymID,
	}
	if err := database.DB.Create(&log).Error; err != nil {
		util.RespondInternalError(c, "failed to create training log")
		return
	}

	c.JSON(http.StatusCreated, log)
}

// GetTrainingLogs lists a user's training history, most recent first
// GET /api/v1/users/:id/training-logs
func (h *Handlers) GetTrainingLogs(c *gin.Context) {
	targetID := c.Param("id")
	limit, offset := util.ParsePagination(c, 30, 200)

	var logs []models.TrainingLog
	if err := database.DB.Preload("Gym").
		Where("user_id = ?", targetID).
		Order("training_date DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		util.RespondInternalError(c, "failed to load training logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{"training_logs": logs})
}

// DeleteTrainingLog deletes a log the caller owns
// DELETE /api/v1/training-logs/:id
func (h *Handlers) DeleteTrainingLog(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var log models.TrainingLog
	if err := database.DB.First(&log, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "training log")
		return
	}
	if log.UserID != userID {
		util.RespondForbidden(c, "only the owner can delete a training log")
		return
	}

	if err := database.DB.Delete(&log).Error; err != nil {
		util.RespondInternalError(c, "failed to delete training log")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// GetTrainingStats aggregates a user's training volume. ?days= bounds
// the window (default 30).
// GET /api/v1/users/:id/training-stats
func (h *Handlers) GetTrainingStats(c *gin.Context) {
	targetID := c.Param("id")

	days := 30
	if d := c.Query("days"); d != "" {
		if parsed, err := strconv.Atoi(d); err == nil && parsed > 0 && parsed <= 365 {
			days = parsed
		}
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	var stats struct {
		Sessions      int64   `json:"sessions"`
		TotalHours    float64 `json:"total_hours"`
		SparringCount int64   `json:"sparring_count"`
		LightCount    int64   `json:"light_sparring_count"`
	}

	base := database.DB.Model(&models.TrainingLog{}).
		Where("user_id = ? AND training_date >= ?", targetID, since)

	base.Session(&gorm.Session{}).Count(&stats.Sessions)
	base.Session(&gorm.Session{}).Select("COALESCE(SUM(duration_hours), 0)").Scan(&stats.TotalHours)
	base.Session(&gorm.Session{}).Where("did_sparring = ?", true).Count(&stats.SparringCount)
	base.Session(&gorm.Session{}).Where("did_sparring_light = ?", true).Count(&stats.LightCount)

	c.JSON(http.StatusOK, gin.H{
		"user_id": targetID,
		"days":    days,
		"stats":   stats,
	})
}
