package handlers

import (
	"net/http"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateSparringRequest invites another athlete to spar. One open
// request per pair at a time.
// POST /api/v1/sparring
func (h *Handlers) CreateSparringRequest(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		RequestedID string `json:"requested_id" binding:"required,uuid"`
		Message     string `json:"message" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if req.RequestedID == userID {
		util.RespondValidationError(c, "requested_id", "cannot request sparring with yourself")
		return
	}

	var target models.Profile
	if err := database.DB.Where("user_id = ?", req.RequestedID).First(&target).Error; err != nil {
		util.RespondNotFound(c, "user")
		return
	}

	var open models.SparringRequest
	err := database.DB.Where(
		"requester_id = ? AND requested_id = ? AND status = ?",
		userID, req.RequestedID, models.SparringStatusPending,
	).First(&open).Error
	if err == nil {
		util.RespondConflict(c, "a pending sparring request already exists")
		return
	}
	if err != gorm.ErrRecordNotFound {
		util.RespondInternalError(c, "failed to load sparring requests")
		return
	}

	request := models.SparringRequest{
		RequesterID: userID,
		RequestedID: req.RequestedID,
		Message:     req.Message,
		Status:      models.SparringStatusPending,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		util.RespondInternalError(c, "failed to create sparring request")
		return
	}

	h.createNotification(models.Notification{
		UserID:            req.RequestedID,
		Type:              models.NotificationSparringRequest,
		Content:           profileName(userID) + " te desafiou para um sparring",
		ActorID:           &userID,
		RelatedSparringID: &request.ID,
	})

	c.JSON(http.StatusCreated, request)
}

// RespondSparringRequest accepts or declines a request. Only the
// invited athlete can answer, and only while it is pending.
// PUT /api/v1/sparring/:id
func (h *Handlers) RespondSparringRequest(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required,oneof=accepted declined"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	var request models.SparringRequest
	if err := database.DB.First(&request, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "sparring request")
		return
	}
	if request.RequestedID != userID {
		util.RespondForbidden(c, "only the invited athlete can respond")
		return
	}
	if request.Status != models.SparringStatusPending {
		util.RespondValidationError(c, "status", "request is already "+request.Status)
		return
	}

	if err := database.DB.Model(&request).Update("status", req.Status).Error; err != nil {
		util.RespondInternalError(c, "failed to update sparring request")
		return
	}

	content := profileName(userID) + " aceitou seu desafio de sparring"
	if req.Status == models.SparringStatusDeclined {
		content = profileName(userID) + " recusou seu desafio de sparring"
	}
	h.createNotification(models.Notification{
		UserID:            request.RequesterID,
		Type:              models.NotificationSparringRequest,
		Content:           content,
		ActorID:           &userID,
		RelatedSparringID: &request.ID,
	})

	c.JSON(http.StatusOK, request)
}

// GetSparringRequests lists the caller's requests. ?direction=incoming
// shows invitations received, ?direction=outgoing ones sent; default
// is both.
// GET /api/v1/sparring
func (h *Handlers) GetSparringRequests(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	limit, offset := util.ParsePagination(c, 20, 100)

	query := database.DB.Order("created_at DESC").Limit(limit).Offset(offset)
	switch c.Query("direction") {
	case "incoming":
		query = query.Where("requested_id = ?", userID)
	case "outgoing":
		query = query.Where("requester_id = ?", userID)
	default:
		query = query.Where("requester_id = ? OR requested_id = ?", userID, userID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.SparringRequest
	if err := query.Find(&requests).Error; err != nil {
		util.RespondInternalError(c, "failed to load sparring requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{"sparring_requests": requests})
}
