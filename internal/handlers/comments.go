package handlers

import (
	"net/http"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/feed"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateComment adds a comment (or a reply) to a post. @mentions in the
// body are resolved to profiles and recorded; the post author, the
// parent comment author, and every mentioned user get notified.
// POST /api/v1/posts/:id/comments
func (h *Handlers) CreateComment(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	postID := c.Param("id")

	var req struct {
		Content         string  `json:"content" binding:"required,min=1,max=2000"`
		ParentCommentID *string `json:"parent_comment_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	var post models.FeedPost
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		util.RespondNotFound(c, "post")
		return
	}

	var parent *models.PostComment
	if req.ParentCommentID != nil && *req.ParentCommentID != "" {
		parent = &models.PostComment{}
		if err := database.DB.First(parent, "id = ?", *req.ParentCommentID).Error; err != nil {
			util.RespondNotFound(c, "parent comment")
			return
		}
		if parent.PostID != postID {
			util.RespondValidationError(c, "parent_comment_id", "parent comment belongs to a different post")
			return
		}
	}

	comment := models.PostComment{
		PostID:          postID,
		UserID:          userID,
		Content:         req.Content,
		ParentCommentID: req.ParentCommentID,
	}
	if err := database.DB.Create(&comment).Error; err != nil {
		util.RespondInternalError(c, "failed to create comment")
		return
	}

	actorName := profileName(userID)

	// Mentions resolve against full_name; unknown handles are ignored
	mentioned := map[string]bool{}
	for _, handle := range util.ExtractMentions(req.Content) {
		var profile models.Profile
		if err := database.DB.Where("LOWER(full_name) = LOWER(?)", handle).First(&profile).Error; err != nil {
			continue
		}
		if mentioned[profile.UserID] {
			continue
		}
		mentioned[profile.UserID] = true

		mention := models.CommentMention{
			CommentID:       comment.ID,
			MentionedUserID: profile.UserID,
		}
		if err := database.DB.Create(&mention).Error; err != nil {
			continue
		}
		h.createNotification(models.Notification{
			UserID:        profile.UserID,
			Type:          models.NotificationCommentMention,
			Content:       actorName + " mencionou você em um comentário",
			ActorID:       &userID,
			RelatedPostID: &postID,
		})
	}

	if parent != nil && !mentioned[parent.UserID] {
		h.createNotification(models.Notification{
			UserID:        parent.UserID,
			Type:          models.NotificationCommentReply,
			Content:       actorName + " respondeu seu comentário",
			ActorID:       &userID,
			RelatedPostID: &postID,
		})
	}
	if !mentioned[post.UserID] && (parent == nil || parent.UserID != post.UserID) {
		h.createNotification(models.Notification{
			UserID:        post.UserID,
			Type:          models.NotificationPostComment,
			Content:       actorName + " comentou no seu post",
			ActorID:       &userID,
			RelatedPostID: &postID,
		})
	}

	if h.wsHandler != nil {
		var count int64
		database.DB.Model(&models.PostComment{}).Where("post_id = ?", postID).Count(&count)
		h.wsHandler.BroadcastCommentUpdate(postID, count)
	}

	if err := database.DB.Preload("User").First(&comment, "id = ?", comment.ID).Error; err == nil {
		c.JSON(http.StatusCreated, comment)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GetPostComments returns a post's comments as a tree: top-level
// comments in chronological order, replies nested under their parent.
// Replies whose parent was deleted surface at the top level.
// GET /api/v1/posts/:id/comments
func (h *Handlers) GetPostComments(c *gin.Context) {
	viewerID, _ := c.Get("user_id")
	viewer, _ := viewerID.(string)
	postID := c.Param("id")

	var comments []models.PostComment
	if err := database.DB.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		util.RespondInternalError(c, "failed to load comments")
		return
	}

	commentIDs := make([]string, len(comments))
	for i, cm := range comments {
		commentIDs[i] = cm.ID
	}

	likeCounts := map[string]int{}
	viewerLiked := map[string]bool{}
	if len(commentIDs) > 0 {
		var likes []models.CommentLike
		if err := database.DB.Where("comment_id IN ?", commentIDs).Find(&likes).Error; err == nil {
			for _, l := range likes {
				likeCounts[l.CommentID]++
				if l.UserID == viewer {
					viewerLiked[l.CommentID] = true
				}
			}
		}
	}

	rows := make([]feed.CommentRow, len(comments))
	for i, cm := range comments {
		row := feed.CommentRow{
			ID:             cm.ID,
			PostID:         cm.PostID,
			UserID:         cm.UserID,
			Content:        cm.Content,
			LikeCount:      likeCounts[cm.ID],
			ViewerHasLiked: viewerLiked[cm.ID],
			CreatedAt:      cm.CreatedAt,
		}
		if cm.ParentCommentID != nil {
			row.ParentCommentID = *cm.ParentCommentID
		}
		if cm.User != nil {
			row.AuthorName = cm.User.FullName
			row.AuthorAvatarURL = cm.User.AvatarURL
		}
		rows[i] = row
	}

	c.JSON(http.StatusOK, gin.H{
		"comments": feed.BuildThread(rows),
		"total":    len(rows),
	})
}

// DeleteComment deletes a comment the caller owns. Replies survive and
// surface at the top level on the next read.
// DELETE /api/v1/comments/:id
func (h *Handlers) DeleteComment(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	commentID := c.Param("id")

	var comment models.PostComment
	if err := database.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		util.RespondNotFound(c, "comment")
		return
	}
	if comment.UserID != userID {
		util.RespondForbidden(c, "only the author can delete a comment")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.CommentMention{}).Error; err != nil {
			return err
		}
		return tx.Delete(&comment).Error
	})
	if err != nil {
		util.RespondInternalError(c, "failed to delete comment")
		return
	}

	if h.wsHandler != nil {
		var count int64
		database.DB.Model(&models.PostComment{}).Where("post_id = ?", comment.PostID).Count(&count)
		h.wsHandler.BroadcastCommentUpdate(comment.PostID, count)
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// LikeComment likes a comment. Liking twice is a no-op.
// POST /api/v1/comments/:id/like
func (h *Handlers) LikeComment(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	commentID := c.Param("id")

	var comment models.PostComment
	if err := database.DB.First(&comment, "id = ?", commentID).Error; err != nil {
		util.RespondNotFound(c, "comment")
		return
	}

	var existing models.CommentLike
	err := database.DB.Where("comment_id = ? AND user_id = ?", commentID, userID).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusOK, gin.H{"liked": true, "like_count": h.commentLikeCount(commentID)})
		return
	}
	if err != gorm.ErrRecordNotFound {
		util.RespondInternalError(c, "failed to load like")
		return
	}

	like := models.CommentLike{CommentID: commentID, UserID: userID}
	if err := database.DB.Create(&like).Error; err != nil {
		util.RespondInternalError(c, "failed to like comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": true, "like_count": h.commentLikeCount(commentID)})
}

// UnlikeComment removes the caller's like. Unliking without a like is
// a no-op.
// DELETE /api/v1/comments/:id/like
func (h *Handlers) UnlikeComment(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	commentID := c.Param("id")

	if err := database.DB.Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&models.CommentLike{}).Error; err != nil {
		util.RespondInternalError(c, "failed to unlike comment")
		return
	}

	c.JSON(http.StatusOK, gin.H{"liked": false, "like_count": h.commentLikeCount(commentID)})
}

func (h *Handlers) commentLikeCount(commentID string) int64 {
	var count int64
	database.DB.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Count(&count)
	return count
}
