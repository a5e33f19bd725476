package handlers

import (
	"net/http"
	"time"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/carloshsbsilva/ringconnect/internal/websocket"
	"github.com/gin-gonic/gin"
)

// SendMessage is the REST path for sending a chat message. The message
// is persisted first; delivery over the socket is best-effort and the
// receiver catches up from history either way.
// POST /api/v1/messages
func (h *Handlers) SendMessage(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		ReceiverID string  `json:"receiver_id" binding:"required,uuid"`
		Message    string  `json:"message" binding:"required,min=1,max=5000"`
		GymID      *string `json:"gym_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if req.ReceiverID == userID {
		util.RespondValidationError(c, "receiver_id", "cannot message yourself")
		return
	}

	var receiver models.Profile
	if err := database.DB.Where("user_id = ?", req.ReceiverID).First(&receiver).Error; err != nil {
		util.RespondNotFound(c, "receiver")
		return
	}

	msg := models.ChatMessage{
		SenderID:   userID,
		ReceiverID: req.ReceiverID,
		GymID:      req.GymID,
		Message:    req.Message,
	}
	if err := database.DB.Create(&msg).Error; err != nil {
		util.RespondInternalError(c, "failed to send message")
		return
	}

	if h.wsHandler != nil {
		h.wsHandler.DeliverChatMessage(&msg, profileName(userID))
	}

	h.createNotification(models.Notification{
		UserID:        req.ReceiverID,
		Type:          models.NotificationChatMessage,
		Content:       "Você recebeu uma nova mensagem",
		ActorID:       &userID,
		RelatedUserID: &userID,
	})

	c.JSON(http.StatusCreated, msg)
}

// GetConversation returns the message history between the caller and
// one peer, newest page first
// GET /api/v1/messages/:userId
func (h *Handlers) GetConversation(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	peerID := c.Param("userId")
	limit, offset := util.ParsePagination(c, 50, 200)

	var messages []models.ChatMessage
	if err := database.DB.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userID, peerID, peerID, userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		util.RespondInternalError(c, "failed to load conversation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

// ConversationSummary is one row of the inbox: the peer, the latest
// message, and how many of their messages the caller hasn't read.
type ConversationSummary struct {
	Peer        models.Profile     `json:"peer"`
	LastMessage models.ChatMessage `json:"last_message"`
	UnreadCount int64              `json:"unread_count"`
}

// GetConversations returns the caller's inbox, most recent first
// GET /api/v1/messages
func (h *Handlers) GetConversations(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	// Latest message per peer via a window function; GORM builds the
	// outer query over the ranked subquery.
	var latest []models.ChatMessage
	sub := database.DB.Model(&models.ChatMessage{}).
		Select(`*, ROW_NUMBER() OVER (
			PARTITION BY CASE WHEN sender_id = ? THEN receiver_id ELSE sender_id END
			ORDER BY created_at DESC) AS rn`, userID).
		Where("sender_id = ? OR receiver_id = ?", userID, userID)
	if err := database.DB.Table("(?) AS ranked", sub).
		Where("rn = 1").
		Order("created_at DESC").
		Find(&latest).Error; err != nil {
		util.RespondInternalError(c, "failed to load conversations")
		return
	}

	summaries := make([]ConversationSummary, 0, len(latest))
	for _, msg := range latest {
		peerID := msg.SenderID
		if peerID == userID {
			peerID = msg.ReceiverID
		}

		var peer models.Profile
		if err := database.DB.Where("user_id = ?", peerID).First(&peer).Error; err != nil {
			continue
		}

		var unread int64
		database.DB.Model(&models.ChatMessage{}).
			Where("sender_id = ? AND receiver_id = ? AND read_at IS NULL", peerID, userID).
			Count(&unread)

		summaries = append(summaries, ConversationSummary{
			Peer:        peer,
			LastMessage: msg,
			UnreadCount: unread,
		})
	}

	c.JSON(http.StatusOK, gin.H{"conversations": summaries})
}

// MarkConversationRead marks every unread message from a peer as read
// PUT /api/v1/messages/:userId/read
func (h *Handlers) MarkConversationRead(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	peerID := c.Param("userId")

	now := time.Now().UTC()
	result := database.DB.Model(&models.ChatMessage{}).
		Where("sender_id = ? AND receiver_id = ? AND read_at IS NULL", peerID, userID).
		Update("read_at", now)
	if result.Error != nil {
		util.RespondInternalError(c, "failed to mark conversation read")
		return
	}

	if h.wsHandler != nil && result.RowsAffected > 0 {
		h.wsHandler.NotifyChatRead(peerID, &websocket.ChatReadPayload{
			ReaderID: userID,
			PeerID:   peerID,
			ReadAt:   now.UnixMilli(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"marked_read": result.RowsAffected})
}
