package websocket

import (
	"encoding/json"
	"time"
)

// Message types for WebSocket communication
const (
	// System messages
	MessageTypeSystem = "system"
	MessageTypePing   = "ping"
	MessageTypePong   = "pong"
	MessageTypeError  = "error"

	// Direct chat
	MessageTypeChatMessage = "chat_message"
	MessageTypeChatRead    = "chat_read"
	MessageTypeUserTyping  = "user_typing"

	// Notification bell
	MessageTypeNotification      = "notification"
	MessageTypeNotificationCount = "notification_count"

	// Live feed updates
	MessageTypeReactionUpdate = "reaction_update"
	MessageTypeCommentUpdate  = "comment_update"
	MessageTypeNewFollower    = "new_follower"
)

// Message represents a WebSocket message
type Message struct {
	// Type identifies the message type for routing
	Type string `json:"type"`

	// Payload contains the message-specific data
	Payload interface{} `json:"payload,omitempty"`

	// ID is a unique message identifier for acknowledgment
	ID string `json:"id,omitempty"`

	// ReplyTo references the original message ID for responses
	ReplyTo string `json:"reply_to,omitempty"`

	// Timestamp when the message was created
	Timestamp time.Time `json:"timestamp"`
}

// NewMessage creates a new message with the current timestamp
func NewMessage(msgType string, payload interface{}) *Message {
	return &Message{
		Type:      msgType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// NewErrorMessage creates an error message
func NewErrorMessage(code, message string) *Message {
	return &Message{
		Type:      MessageTypeError,
		Payload:   ErrorPayload{Code: code, Message: message},
		Timestamp: time.Now().UTC(),
	}
}

// ParsePayload unmarshals the payload into a specific type
func (m *Message) ParsePayload(target interface{}) error {
	if m.Payload == nil {
		return nil
	}
	data, err := json.Marshal(m.Payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, target)
}

// ErrorPayload represents an error message payload
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PingPayload represents a ping message payload
type PingPayload struct {
	ClientTime int64 `json:"client_time"`
}

// PongPayload represents a pong message payload
type PongPayload struct {
	ClientTime int64 `json:"client_time"`
	ServerTime int64 `json:"server_time"`
	Latency    int64 `json:"latency_ms"`
}

// SystemPayload represents system event payloads
type SystemPayload struct {
	Event   string                 `json:"event"`
	Message string                 `json:"message,omitempty"`
	Data    map[string]interface{} `json:"data,omitempty"`
}

// ChatMessagePayload carries one direct message. ID is the stored row id
// so clients can dedupe a redelivered message against a later re-fetch.
type ChatMessagePayload struct {
	ID         string `json:"id"`
	SenderID   string `json:"sender_id"`
	SenderName string `json:"sender_name,omitempty"`
	ReceiverID string `json:"receiver_id"`
	GymID      string `json:"gym_id,omitempty"`
	Message    string `json:"message"`
	CreatedAt  int64  `json:"created_at"`
}

// ChatReadPayload marks a conversation as read up to a point in time
type ChatReadPayload struct {
	ReaderID string `json:"reader_id"`
	PeerID   string `json:"peer_id"`
	ReadAt   int64  `json:"read_at"`
}

// TypingPayload indicates a user is typing in a conversation
type TypingPayload struct {
	UserID     string `json:"user_id"`
	ReceiverID string `json:"receiver_id"`
	Typing     bool   `json:"typing"`
}

// NotificationPayload represents a pushed notification
type NotificationPayload struct {
	ID        string `json:"id"`
	Type      string `json:"notification_type"`
	Content   string `json:"content"`
	ActorID   string `json:"actor_id,omitempty"`
	PostID    string `json:"post_id,omitempty"`
	CreatedAt int64  `json:"created_at"`
}

// NotificationCountPayload carries the unread badge count
type NotificationCountPayload struct {
	UnreadCount int64 `json:"unread_count"`
}

// ReactionUpdatePayload broadcasts a post's new reaction summary
type ReactionUpdatePayload struct {
	PostID        string `json:"post_id"`
	ReactionCount int    `json:"reaction_count"`
	TopKind       string `json:"top_kind,omitempty"`
}

// CommentUpdatePayload broadcasts a post's new comment count
type CommentUpdatePayload struct {
	PostID       string `json:"post_id"`
	CommentCount int64  `json:"comment_count"`
}

// FollowPayload announces a new follower to the followed user
type FollowPayload struct {
	FollowerID     string `json:"follower_id"`
	FollowerName   string `json:"follower_name,omitempty"`
	FollowerAvatar string `json:"follower_avatar,omitempty"`
	FollowedID     string `json:"followed_id"`
}
