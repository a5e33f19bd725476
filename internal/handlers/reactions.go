package handlers

import (
	"net/http"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/feed"
	"github.com/carloshsbsilva/ringconnect/internal/metrics"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ReactToPost sets, replaces, or removes the caller's reaction on a
// post. Sending the kind the caller already has (or an empty kind)
// removes it; any other kind replaces it. One reaction per user per
// post, enforced by a unique index.
// POST /api/v1/posts/:id/reactions
func (h *Handlers) ReactToPost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	postID := c.Param("id")

	var req struct {
		ReactionType models.ReactionKind `json:"reaction_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if req.ReactionType != "" && !req.ReactionType.Valid() {
		util.RespondValidationError(c, "reaction_type", "unknown reaction type")
		return
	}

	var post models.FeedPost
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		util.RespondNotFound(c, "post")
		return
	}

	var current models.ReactionKind
	var existing models.PostReaction
	err := database.DB.Where("post_id = ? AND user_id = ?", postID, userID).First(&existing).Error
	if err == nil {
		current = existing.ReactionType
	} else if err != gorm.ErrRecordNotFound {
		util.RespondInternalError(c, "failed to load reaction")
		return
	}

	next := feed.ApplyReaction(current, req.ReactionType)

	switch {
	case next == current:
		// nothing to do
	case next == "":
		if err := database.DB.Delete(&existing).Error; err != nil {
			util.RespondInternalError(c, "failed to remove reaction")
			return
		}
		metrics.Get().ReactionsApplied.WithLabelValues("removed").Inc()
	case current == "":
		reaction := models.PostReaction{
			PostID:       postID,
			UserID:       userID,
			ReactionType: next,
		}
		if err := database.DB.Create(&reaction).Error; err != nil {
			util.RespondInternalError(c, "failed to save reaction")
			return
		}
		metrics.Get().ReactionsApplied.WithLabelValues("added").Inc()
	default:
		if err := database.DB.Model(&existing).Update("reaction_type", next).Error; err != nil {
			util.RespondInternalError(c, "failed to save reaction")
			return
		}
		metrics.Get().ReactionsApplied.WithLabelValues("replaced").Inc()
	}

	// A fresh reaction notifies the author; replacements and removals
	// stay quiet.
	if next != "" && current == "" {
		h.createNotification(models.Notification{
			UserID:        post.UserID,
			Type:          models.NotificationPostReaction,
			Content:       profileName(userID) + " reagiu " + next.Label() + " ao seu post",
			ActorID:       &userID,
			RelatedPostID: &post.ID,
			RelatedUserID: &userID,
		})
	}

	summary := h.reactionSummary(postID, userID)
	if h.wsHandler != nil {
		h.wsHandler.BroadcastReactionUpdate(postID, summary.Count, string(summary.TopKind))
	}

	c.JSON(http.StatusOK, summary)
}

// GetPostReactions lists who reacted with what
// GET /api/v1/posts/:id/reactions
func (h *Handlers) GetPostReactions(c *gin.Context) {
	postID := c.Param("id")
	limit, offset := util.ParsePagination(c, 50, 200)

	var reactions []models.PostReaction
	if err := database.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reactions).Error; err != nil {
		util.RespondInternalError(c, "failed to load reactions")
		return
	}

	c.JSON(http.StatusOK, gin.H{"reactions": reactions})
}

func (h *Handlers) reactionSummary(postID, viewerID string) feed.ReactionSummary {
	var reactions []models.PostReaction
	if err := database.DB.Where("post_id = ?", postID).Order("created_at ASC").Find(&reactions).Error; err != nil {
		return feed.ReactionSummary{}
	}
	rows := make([]feed.ReactionRow, len(reactions))
	for i, r := range reactions {
		rows[i] = feed.ReactionRow{UserID: r.UserID, Kind: r.ReactionType}
	}
	return feed.Summarize(rows, viewerID)
}
