package models

import (
	"time"
)

// UserFollow is the directed "torcida" relation: follower cheers for
// followed. Unique per pair; self-follows are rejected at write time.
type UserFollow struct {
	ID             string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	FollowerUserID string `gorm:"not null;index;type:uuid" json:"follower_user_id"`
	FollowedUserID string `gorm:"not null;index;type:uuid" json:"followed_user_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (UserFollow) TableName() string {
	return "user_follows"
}

// Notification types. The column is CHECK-constrained to this set.
const (
	NotificationPostReaction    = "post_reaction"
	NotificationPostComment     = "post_comment"
	NotificationCommentReply    = "comment_reply"
	NotificationCommentMention  = "comment_mention"
	NotificationUserFollow      = "user_follow"
	NotificationGymFollow       = "gym_follow"
	NotificationSparringRequest = "sparring_request"
	NotificationBooking         = "booking"
	NotificationChatMessage     = "chat_message"
)

// Notification is a best-effort secondary record: writes to this table
// never fail the primary action that produced them.
type Notification struct {
	ID     string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string `gorm:"not null;index;type:uuid" json:"user_id"` // recipient
	Type   string `gorm:"not null" json:"type"`

	Content string `gorm:"type:text;not null" json:"content"`
	Read    bool   `gorm:"default:false" json:"read"`

	ActorID           *string `gorm:"type:uuid" json:"actor_id,omitempty"`
	RelatedPostID     *string `gorm:"type:uuid" json:"related_post_id,omitempty"`
	RelatedUserID     *string `gorm:"type:uuid" json:"related_user_id,omitempty"`
	RelatedSparringID *string `gorm:"type:uuid" json:"related_sparring_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// ChatMessage is a direct message between two users, optionally scoped
// to a gym conversation.
type ChatMessage struct {
	ID         string  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	SenderID   string  `gorm:"not null;index;type:uuid" json:"sender_id"`
	ReceiverID string  `gorm:"not null;index;type:uuid" json:"receiver_id"`
	GymID      *string `gorm:"type:uuid;index" json:"gym_id,omitempty"`
	Gym        *Gym    `gorm:"foreignKey:GymID" json:"-"`

	Message string     `gorm:"type:text;not null" json:"message"`
	ReadAt  *time.Time `json:"read_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

// Sparring request statuses.
const (
	SparringStatusPending  = "pending"
	SparringStatusAccepted = "accepted"
	SparringStatusDeclined = "declined"
)

// SparringRequest invites another athlete to spar.
type SparringRequest struct {
	ID          string `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	RequesterID string `gorm:"not null;index;type:uuid" json:"requester_id"`
	RequestedID string `gorm:"not null;index;type:uuid" json:"requested_id"`

	Message string `gorm:"type:text" json:"message,omitempty"`
	Status  string `gorm:"not null;default:pending" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SparringRequest) TableName() string {
	return "sparring_requests"
}
