package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/feed"
	"github.com/carloshsbsilva/ringconnect/internal/logger"
	"github.com/carloshsbsilva/ringconnect/internal/metrics"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/storage"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PostView is a feed post enriched with everything the card needs:
// the resolved media directive, the reaction summary for the viewer,
// the comment count, and the quoted post for reshares.
type PostView struct {
	models.FeedPost
	Media        feed.MediaDirective  `json:"media"`
	Reactions    feed.ReactionSummary `json:"reactions"`
	CommentCount int64                `json:"comment_count"`
	ShareCount   int64                `json:"share_count"`
	SharedPost   *models.FeedPost     `json:"shared_post,omitempty"`
}

// CreatePost creates a new feed post
// POST /api/v1/posts
func (h *Handlers) CreatePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Content          string  `json:"content" binding:"required,min=1,max=5000"`
		Caption          string  `json:"caption"`
		PostType         string  `json:"post_type"`
		MediaURL         string  `json:"media_url"`
		MediaType        string  `json:"media_type"`
		LinkURL          string  `json:"link_url"`
		GymID            *string `json:"gym_id"`
		TrainingDuration int     `json:"training_duration"`
		DidSparring      bool    `json:"did_sparring"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	postType := req.PostType
	if postType == "" {
		postType = models.PostTypeGeneral
	}
	if postType != models.PostTypeGeneral && postType != models.PostTypeTraining {
		util.RespondValidationError(c, "post_type", "must be general or training")
		return
	}

	if req.MediaURL != "" {
		if req.MediaType != models.MediaTypeImage && req.MediaType != models.MediaTypeVideo {
			util.RespondValidationError(c, "media_type", "must be image or video when media_url is set")
			return
		}
	}

	post := models.FeedPost{
		UserID:           userID,
		PostType:         postType,
		Content:          req.Content,
		Caption:          req.Caption,
		MediaURL:         req.MediaURL,
		MediaType:        req.MediaType,
		LinkURL:          req.LinkURL,
		GymID:            req.GymID,
		TrainingDuration: req.TrainingDuration,
		DidSparring:      req.DidSparring,
		IsPublished:      true,
	}

	// A link post gets its preview scraped inline so the card renders on
	// first display. Scrape failures degrade to a bare link.
	if req.LinkURL != "" {
		post.MediaType = models.MediaTypeLink
		if preview, err := h.linkPreview.Fetch(c.Request.Context(), req.LinkURL); err == nil {
			post.LinkPreview = preview
		} else {
			logger.Warn("link preview fetch failed", err)
		}
	}

	if err := database.DB.Create(&post).Error; err != nil {
		util.RespondInternalError(c, "failed to create post")
		return
	}
	metrics.Get().PostsCreated.Inc()

	if err := database.DB.Preload("User").First(&post, "id = ?", post.ID).Error; err != nil {
		logger.Warn("failed to reload post with author", err)
	}

	c.JSON(http.StatusCreated, h.buildPostView(&post, userID))
}

// SharePost reshares ("round") an existing post. The reshare carries no
// media of its own; the quoted post's media is resolved at render time.
// POST /api/v1/posts/:id/share
func (h *Handlers) SharePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	originalID := c.Param("id")

	var req struct {
		Caption string `json:"caption" binding:"max=1000"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		util.RespondBadRequest(c, err.Error())
		return
	}

	var original models.FeedPost
	if err := database.DB.First(&original, "id = ?", originalID).Error; err != nil {
		util.RespondNotFound(c, "post")
		return
	}

	// Resharing a reshare points at the root post so chains stay flat
	sharedFromID := original.ID
	if original.SharedFromPostID != nil && *original.SharedFromPostID != "" {
		sharedFromID = *original.SharedFromPostID
	}

	post := models.FeedPost{
		UserID:           userID,
		PostType:         models.PostTypeGeneral,
		Content:          req.Caption,
		SharedFromPostID: &sharedFromID,
		IsPublished:      true,
	}
	if post.Content == "" {
		post.Content = " "
	}

	if err := database.DB.Create(&post).Error; err != nil {
		util.RespondInternalError(c, "failed to share post")
		return
	}
	metrics.Get().PostsCreated.Inc()

	c.JSON(http.StatusCreated, h.buildPostView(&post, userID))
}

// GetFeed returns the published feed, newest first
// GET /api/v1/feed
func (h *Handlers) GetFeed(c *gin.Context) {
	viewerID, _ := c.Get("user_id")
	viewer, _ := viewerID.(string)

	limit, offset := util.ParsePagination(c, 20, 100)

	query := database.DB.Preload("User").
		Where("is_published = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset)

	// ?user_id= narrows to one author (profile pages)
	if author := c.Query("user_id"); author != "" {
		query = query.Where("user_id = ?", author)
	}
	// ?following=true narrows to the viewer's torcida
	if c.Query("following") == "true" && viewer != "" {
		query = query.Where("user_id IN (?)",
			database.DB.Model(&models.UserFollow{}).
				Select("followed_user_id").
				Where("follower_user_id = ?", viewer))
	}

	var posts []models.FeedPost
	if err := query.Find(&posts).Error; err != nil {
		util.RespondInternalError(c, "failed to load feed")
		return
	}

	views := make([]*PostView, 0, len(posts))
	for i := range posts {
		views = append(views, h.buildPostView(&posts[i], viewer))
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":  views,
		"limit":  limit,
		"offset": offset,
	})
}

// GetPost returns one post with its full card data
// GET /api/v1/posts/:id
func (h *Handlers) GetPost(c *gin.Context) {
	viewerID, _ := c.Get("user_id")
	viewer, _ := viewerID.(string)

	var post models.FeedPost
	if err := database.DB.Preload("User").First(&post, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "post")
		return
	}

	c.JSON(http.StatusOK, h.buildPostView(&post, viewer))
}

// UpdatePost edits the text of a post the caller owns. Media and type
// are fixed at creation.
// PUT /api/v1/posts/:id
func (h *Handlers) UpdatePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var post models.FeedPost
	if err := database.DB.First(&post, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "post")
		return
	}
	if post.UserID != userID {
		util.RespondForbidden(c, "only the author can edit a post")
		return
	}

	var req struct {
		Content *string `json:"content"`
		Caption *string `json:"caption"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Content != nil {
		if *req.Content == "" {
			util.RespondValidationError(c, "content", "cannot be empty")
			return
		}
		updates["content"] = *req.Content
	}
	if req.Caption != nil {
		updates["caption"] = *req.Caption
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&post).Updates(updates).Error; err != nil {
			util.RespondInternalError(c, "failed to update post")
			return
		}
	}

	c.JSON(http.StatusOK, h.buildPostView(&post, userID))
}

// DeletePost deletes a post the caller owns, along with its dependent
// rows. The cascade is explicit: comments, their likes and mentions,
// and reactions all go in one transaction.
// DELETE /api/v1/posts/:id
func (h *Handlers) DeletePost(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	postID := c.Param("id")

	var post models.FeedPost
	if err := database.DB.First(&post, "id = ?", postID).Error; err != nil {
		util.RespondNotFound(c, "post")
		return
	}
	if post.UserID != userID {
		util.RespondForbidden(c, "only the author can delete a post")
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		commentIDs := tx.Model(&models.PostComment{}).Select("id").Where("post_id = ?", postID)
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("comment_id IN (?)", commentIDs).Delete(&models.CommentMention{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", postID).Delete(&models.PostReaction{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	if err != nil {
		util.RespondInternalError(c, "failed to delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// UploadPostMedia uploads an image or short clip for a post
// POST /api/v1/posts/media
func (h *Handlers) UploadPostMedia(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	if h.uploader == nil {
		util.RespondInternalError(c, "media storage not configured")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.RespondBadRequest(c, "file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.RespondInternalError(c, "failed to read upload")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.RespondInternalError(c, "failed to read upload")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	result, err := h.uploader.Upload(c.Request.Context(), storage.FileKindPostMedia, data, userID, fileHeader.Filename, contentType)
	if err != nil {
		util.RespondValidationError(c, "file", err.Error())
		return
	}

	mediaType := models.MediaTypeImage
	if strings.HasPrefix(contentType, "video/") {
		mediaType = models.MediaTypeVideo
	}

	c.JSON(http.StatusOK, gin.H{
		"url":        result.URL,
		"media_type": mediaType,
		"size":       result.Size,
	})
}

// buildPostView assembles the full card for one post: media directive,
// reaction summary for the viewer, comment count, and the quoted post
// when the post is a reshare.
func (h *Handlers) buildPostView(post *models.FeedPost, viewerID string) *PostView {
	view := &PostView{
		FeedPost: *post,
		Media:    feed.SelectMedia(post),
	}

	var reactions []models.PostReaction
	if err := database.DB.Where("post_id = ?", post.ID).Order("created_at ASC").Find(&reactions).Error; err == nil {
		rows := make([]feed.ReactionRow, len(reactions))
		for i, r := range reactions {
			rows[i] = feed.ReactionRow{UserID: r.UserID, Kind: r.ReactionType}
		}
		view.Reactions = feed.Summarize(rows, viewerID)
	}

	database.DB.Model(&models.PostComment{}).
		Where("post_id = ?", post.ID).
		Count(&view.CommentCount)
	database.DB.Model(&models.FeedPost{}).
		Where("shared_from_post_id = ?", post.ID).
		Count(&view.ShareCount)

	if post.SharedFromPostID != nil && *post.SharedFromPostID != "" {
		var quoted models.FeedPost
		if err := database.DB.Preload("User").First(&quoted, "id = ?", *post.SharedFromPostID).Error; err == nil {
			view.SharedPost = &quoted
		}
		// A deleted original leaves the reshare rendering its caption only
	}

	return view
}
