package websocket

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/logger"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Handler handles WebSocket HTTP upgrade requests
type Handler struct {
	hub       *Hub
	jwtSecret []byte
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *Hub, jwtSecret []byte) *Handler {
	return &Handler{
		hub:       hub,
		jwtSecret: jwtSecret,
	}
}

// HandleWebSocket handles WebSocket upgrade requests.
// Authentication is via JWT token in the ?token= query param or the
// Authorization header.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	userID, err := h.authenticateRequest(c)
	if err != nil {
		logger.Log.Warn("websocket auth failed", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "authentication_failed",
			"message": err.Error(),
		})
		return
	}

	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // origins restricted at the CORS layer
		CompressionMode:    websocket.CompressionContextTakeover,
	})
	if err != nil {
		logger.Log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(h.hub, conn, userID)
	client.RemoteAddr = c.ClientIP()

	h.hub.Register(client)

	client.Send(NewMessage(MessageTypeSystem, SystemPayload{
		Event: "connected",
		Data: map[string]interface{}{
			"user_id":     userID,
			"server_time": time.Now().UTC().UnixMilli(),
		},
	}))

	go client.WritePump()
	client.ReadPump() // blocks until the client disconnects
}

// authenticateRequest extracts and validates the JWT token from the request
func (h *Handler) authenticateRequest(c *gin.Context) (string, error) {
	tokenString := c.Query("token")

	if auth := c.GetHeader("Authorization"); auth != "" {
		tokenString = strings.TrimPrefix(auth, "Bearer ")
	}

	if tokenString == "" {
		return "", errors.New("no authentication token provided")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return h.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("invalid user_id in token")
	}

	return userID, nil
}

// RegisterDefaultHandlers wires the client-originated message types:
// sending a chat message and typing indicators.
func (h *Handler) RegisterDefaultHandlers() {
	h.hub.RegisterHandler(MessageTypeChatMessage, h.handleChatMessage)

	h.hub.RegisterHandler(MessageTypeUserTyping, func(client *Client, msg *Message) error {
		var typing TypingPayload
		if err := msg.ParsePayload(&typing); err != nil {
			return err
		}
		typing.UserID = client.UserID
		if typing.ReceiverID == "" {
			return errors.New("receiver_id is required")
		}
		h.hub.SendToUser(typing.ReceiverID, NewMessage(MessageTypeUserTyping, typing))
		return nil
	})

	h.hub.RegisterHandler(MessageTypeChatRead, func(client *Client, msg *Message) error {
		var read ChatReadPayload
		if err := msg.ParsePayload(&read); err != nil {
			return err
		}
		read.ReaderID = client.UserID
		now := time.Now()
		read.ReadAt = now.UnixMilli()

		err := database.DB.Model(&models.ChatMessage{}).
			Where("sender_id = ? AND receiver_id = ? AND read_at IS NULL", read.PeerID, client.UserID).
			Update("read_at", now).Error
		if err != nil {
			return err
		}

		h.hub.SendToUser(read.PeerID, NewMessage(MessageTypeChatRead, read))
		return nil
	})
}

// handleChatMessage persists a direct message and delivers it to the
// receiver's open connections. The notification row is best-effort: a
// failure there is logged and never unwinds the stored message.
func (h *Handler) handleChatMessage(client *Client, msg *Message) error {
	var payload ChatMessagePayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	if payload.ReceiverID == "" || strings.TrimSpace(payload.Message) == "" {
		return errors.New("receiver_id and message are required")
	}

	chatMsg := models.ChatMessage{
		SenderID:   client.UserID,
		ReceiverID: payload.ReceiverID,
		Message:    payload.Message,
	}
	if payload.GymID != "" {
		chatMsg.GymID = &payload.GymID
	}
	if err := database.DB.Create(&chatMsg).Error; err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}

	out := ChatMessagePayload{
		ID:         chatMsg.ID,
		SenderID:   client.UserID,
		ReceiverID: payload.ReceiverID,
		GymID:      payload.GymID,
		Message:    chatMsg.Message,
		CreatedAt:  chatMsg.CreatedAt.UnixMilli(),
	}
	h.hub.SendToUser(payload.ReceiverID, NewMessage(MessageTypeChatMessage, out))

	// Echo back so the sender's other devices stay in sync
	reply := NewMessage(MessageTypeChatMessage, out)
	reply.ReplyTo = msg.ID
	_ = client.Send(reply)

	notification := models.Notification{
		UserID:  payload.ReceiverID,
		Type:    models.NotificationChatMessage,
		Content: "Você recebeu uma nova mensagem",
		ActorID: &client.UserID,
	}
	if err := database.DB.Create(&notification).Error; err != nil {
		logger.Warn("failed to create chat notification", err)
	}

	return nil
}

// NotifyUser pushes a stored notification to the recipient's connections
func (h *Handler) NotifyUser(userID string, n *models.Notification) {
	payload := NotificationPayload{
		ID:        n.ID,
		Type:      n.Type,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UnixMilli(),
	}
	if n.ActorID != nil {
		payload.ActorID = *n.ActorID
	}
	if n.RelatedPostID != nil {
		payload.PostID = *n.RelatedPostID
	}
	h.hub.SendToUser(userID, NewMessage(MessageTypeNotification, payload))
}

// BroadcastReactionUpdate pushes a post's new reaction summary to viewers
func (h *Handler) BroadcastReactionUpdate(postID string, count int, topKind string) {
	h.hub.Broadcast(NewMessage(MessageTypeReactionUpdate, ReactionUpdatePayload{
		PostID:        postID,
		ReactionCount: count,
		TopKind:       topKind,
	}))
}

// BroadcastCommentUpdate pushes a post's new comment count to viewers
func (h *Handler) BroadcastCommentUpdate(postID string, commentCount int64) {
	h.hub.Broadcast(NewMessage(MessageTypeCommentUpdate, CommentUpdatePayload{
		PostID:       postID,
		CommentCount: commentCount,
	}))
}

// NotifyFollow announces a new follower
func (h *Handler) NotifyFollow(followedID string, payload *FollowPayload) {
	h.hub.SendToUser(followedID, NewMessage(MessageTypeNewFollower, payload))
}

// DeliverChatMessage pushes an already-persisted message to both
// parties' open connections. Used by the REST send path.
func (h *Handler) DeliverChatMessage(chatMsg *models.ChatMessage, senderName string) {
	out := ChatMessagePayload{
		ID:         chatMsg.ID,
		SenderID:   chatMsg.SenderID,
		SenderName: senderName,
		ReceiverID: chatMsg.ReceiverID,
		Message:    chatMsg.Message,
		CreatedAt:  chatMsg.CreatedAt.UnixMilli(),
	}
	if chatMsg.GymID != nil {
		out.GymID = *chatMsg.GymID
	}
	h.hub.SendToUser(chatMsg.ReceiverID, NewMessage(MessageTypeChatMessage, out))
	h.hub.SendToUser(chatMsg.SenderID, NewMessage(MessageTypeChatMessage, out))
}

// NotifyChatRead tells the original sender their messages were read
func (h *Handler) NotifyChatRead(senderID string, payload *ChatReadPayload) {
	h.hub.SendToUser(senderID, NewMessage(MessageTypeChatRead, payload))
}

// HandleMetrics returns WebSocket metrics for monitoring
func (h *Handler) HandleMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"websocket":    h.hub.GetMetrics(),
		"online_users": h.hub.OnlineUsers(),
		"timestamp":    time.Now().UTC(),
	})
}

// HandleOnlineStatus checks if specific users are online
func (h *Handler) HandleOnlineStatus(c *gin.Context) {
	var req struct {
		UserIDs []string `json:"user_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	statuses := make(map[string]bool)
	for _, userID := range req.UserIDs {
		statuses[userID] = h.hub.IsUserOnline(userID)
	}

	c.JSON(http.StatusOK, gin.H{
		"statuses":  statuses,
		"timestamp": time.Now().UTC(),
	})
}

// Shutdown gracefully shuts down the WebSocket handler
func (h *Handler) Shutdown(ctx context.Context) error {
	return h.hub.Shutdown(ctx)
}

// GetHub returns the hub for external access
func (h *Handler) GetHub() *Hub {
	return h.hub
}
