package handlers

import (
	"net/http"
	"time"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
)

// CreateChampionship records a competition result on the caller's record
// POST /api/v1/championships
func (h *Handlers) CreateChampionship(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		ChampionshipName string `json:"championship_name" binding:"required,min=2,max=200"`
		Year             int    `json:"year" binding:"required,min=1950"`
		IsChampion       bool   `json:"is_champion"`
		Position         int    `json:"position" binding:"min=0"`
		OpponentName     string `json:"opponent_name" binding:"max=200"`
		Notes            string `json:"notes" binding:"max=2000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if req.Year > time.Now().Year() {
		util.RespondValidationError(c, "year", "cannot be in the future")
		return
	}

	championship := models.Championship{
		UserID:           userID,
		ChampionshipName: req.ChampionshipName,
		Year:             req.Year,
		IsChampion:       req.IsChampion,
		Position:         req.Position,
		OpponentName:     req.OpponentName,
		Notes:            req.Notes,
	}
	if err := database.DB.Create(&championship).Error; err != nil {
		util.RespondInternalError(c, "failed to create championship")
		return
	}

	c.JSON(http.StatusCreated, championship)
}

// GetChampionships lists a user's competition history, newest first
// GET /api/v1/users/:id/championships
func (h *Handlers) GetChampionships(c *gin.Context) {
	var championships []models.Championship
	if err := database.DB.
		Where("user_id = ?", c.Param("id")).
		Order("year DESC, created_at DESC").
		Find(&championships).Error; err != nil {
		util.RespondInternalError(c, "failed to load championships")
		return
	}

	c.JSON(http.StatusOK, gin.H{"championships": championships})
}

// UpdateChampionship updates an entry the caller owns
// PUT /api/v1/championships/:id
func (h *Handlers) UpdateChampionship(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var championship models.Championship
	if err := database.DB.First(&championship, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "championship")
		return
	}
	if championship.UserID != userID {
		util.RespondForbidden(c, "only the owner can update a championship")
		return
	}

	var req struct {
		ChampionshipName *string `json:"championship_name"`
		Year             *int    `json:"year"`
		IsChampion       *bool   `json:"is_champion"`
		Position         *int    `json:"position"`
		OpponentName     *string `json:"opponent_name"`
		Notes            *string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.ChampionshipName != nil {
		updates["championship_name"] = *req.ChampionshipName
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}
	if req.IsChampion != nil {
		updates["is_champion"] = *req.IsChampion
	}
	if req.Position != nil {
		updates["position"] = *req.Position
	}
	if req.OpponentName != nil {
		updates["opponent_name"] = *req.OpponentName
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&championship).Updates(updates).Error; err != nil {
			util.RespondInternalError(c, "failed to update championship")
			return
		}
	}

	c.JSON(http.StatusOK, championship)
}

// DeleteChampionship removes an entry the caller owns
// DELETE /api/v1/championships/:id
func (h *Handlers) DeleteChampionship(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var championship models.Championship
	if err := database.DB.First(&championship, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "championship")
		return
	}
	if championship.UserID != userID {
		util.RespondForbidden(c, "only the owner can delete a championship")
		return
	}

	if err := database.DB.Delete(&championship).Error; err != nil {
		util.RespondInternalError(c, "failed to delete championship")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
