package models

import (
	"time"
)

// Post media types for the unified media_url/media_type columns.
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeLink  = "link"
)

// Post types.
const (
	PostTypeGeneral  = "general"
	PostTypeTraining = "training"
)

// LinkPreview stores scraped Open Graph metadata for link posts.
type LinkPreview struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Site        string `json:"site,omitempty"`
	URL         string `json:"url,omitempty"`
}

// FeedPost is a post on the feed. The unified MediaURL/MediaType pair
// superseded the legacy ImageURL/VideoURL/LinkURL columns; old rows still
// carry only the legacy fields and both generations must render.
type FeedPost struct {
	ID     string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	UserID string   `gorm:"not null;index;type:uuid" json:"user_id"`
	User   *Profile `gorm:"foreignKey:UserID;references:UserID" json:"profiles,omitempty"`

	PostType string `gorm:"not null;default:general" json:"post_type"`
	Content  string `gorm:"type:text;not null" json:"content"`
	Caption  string `gorm:"type:text" json:"caption,omitempty"`

	// Unified media fields
	MediaURL    string       `json:"media_url,omitempty"`
	MediaType   string       `json:"media_type,omitempty"`
	LinkURL     string       `json:"link_url,omitempty"`
	LinkPreview *LinkPreview `gorm:"type:jsonb;serializer:json" json:"link_preview,omitempty"`

	// Legacy single-purpose media columns, kept for historical rows
	ImageURL       string `json:"image_url,omitempty"`
	LegacyVideoURL string `gorm:"column:video_url" json:"video_url,omitempty"`

	// Reshare ("round"). A reshare never carries media of its own; the
	// quoted post's media is resolved at render time.
	SharedFromPostID *string   `gorm:"type:uuid;index" json:"shared_from_post_id,omitempty"`
	SharedFromPost   *FeedPost `gorm:"foreignKey:SharedFromPostID" json:"-"`

	// Training post extras
	GymID            *string `gorm:"type:uuid;index" json:"gym_id,omitempty"`
	Gym              *Gym    `gorm:"foreignKey:GymID" json:"gyms,omitempty"`
	TrainingDuration int     `json:"training_duration,omitempty"` // minutes
	DidSparring      bool    `gorm:"default:false" json:"did_sparring"`

	IsPublished bool `gorm:"default:true" json:"is_published"`

	CreatedAt time.Time `json:"created_at"`
}

func (FeedPost) TableName() string {
	return "feed_posts"
}

// PostComment is a comment on a FeedPost. ParentCommentID is null for
// roots; storage allows arbitrary depth, presentation flattens to two
// levels.
type PostComment struct {
	ID     string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PostID string   `gorm:"not null;index;type:uuid" json:"post_id"`
	Post   FeedPost `gorm:"foreignKey:PostID" json:"-"`
	UserID string   `gorm:"not null;index;type:uuid" json:"user_id"`
	User   *Profile `gorm:"foreignKey:UserID;references:UserID" json:"profiles,omitempty"`

	Content string `gorm:"type:text;not null" json:"content"`

	ParentCommentID *string      `gorm:"type:uuid;index" json:"parent_comment_id,omitempty"`
	Parent          *PostComment `gorm:"foreignKey:ParentCommentID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PostComment) TableName() string {
	return "post_comments"
}

// CommentLike is a (comment, user) like pair, unique per pair.
type CommentLike struct {
	ID        string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CommentID string      `gorm:"not null;index;type:uuid" json:"comment_id"`
	Comment   PostComment `gorm:"foreignKey:CommentID" json:"-"`
	UserID    string      `gorm:"not null;index;type:uuid" json:"user_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}

// CommentMention tracks @mentions inside comments for notifications.
type CommentMention struct {
	ID              string      `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	CommentID       string      `gorm:"not null;index;type:uuid" json:"comment_id"`
	Comment         PostComment `gorm:"foreignKey:CommentID" json:"-"`
	MentionedUserID string      `gorm:"not null;index;type:uuid" json:"mentioned_user_id"`

	CreatedAt time.Time `json:"created_at"`
}

func (CommentMention) TableName() string {
	return "comment_mentions"
}

// ReactionKind is the closed set of post reactions.
type ReactionKind string

const (
	ReactionGoWild       ReactionKind = "gowild"
	ReactionCleanHit     ReactionKind = "cleanhit"
	ReactionChampionMove ReactionKind = "championmove"
	ReactionOnTarget     ReactionKind = "ontarget"
	ReactionTooHeavy     ReactionKind = "tooheavy"
)

// ReactionKinds lists every valid kind, in display order.
var ReactionKinds = []ReactionKind{
	ReactionGoWild,
	ReactionCleanHit,
	ReactionChampionMove,
	ReactionOnTarget,
	ReactionTooHeavy,
}

// Valid reports whether k is one of the closed reaction set.
func (k ReactionKind) Valid() bool {
	switch k {
	case ReactionGoWild, ReactionCleanHit, ReactionChampionMove, ReactionOnTarget, ReactionTooHeavy:
		return true
	}
	return false
}

// Label returns the user-facing label used in notifications.
func (k ReactionKind) Label() string {
	switch k {
	case ReactionGoWild:
		return "🔥 Go Wild"
	case ReactionCleanHit:
		return "🥊 Clean Hit"
	case ReactionChampionMove:
		return "🏆 Champion's Move"
	case ReactionOnTarget:
		return "🎯 On Target"
	case ReactionTooHeavy:
		return "😤 Too Heavy"
	default:
		return "uma reação"
	}
}

// PostReaction holds at most one reaction per (post, user); changing the
// kind replaces the row, reacting with the same kind again deletes it.
type PostReaction struct {
	ID     string   `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PostID string   `gorm:"not null;index;type:uuid" json:"post_id"`
	Post   FeedPost `gorm:"foreignKey:PostID" json:"-"`
	UserID string   `gorm:"not null;index;type:uuid" json:"user_id"`
	User   *Profile `gorm:"foreignKey:UserID;references:UserID" json:"profiles,omitempty"`

	ReactionType ReactionKind `gorm:"not null" json:"reaction_type"`

	CreatedAt time.Time `json:"created_at"`
}

func (PostReaction) TableName() string {
	return "post_reactions"
}
