package handlers

import (
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/carloshsbsilva/ringconnect/internal/database"
	"github.com/carloshsbsilva/ringconnect/internal/logger"
	"github.com/carloshsbsilva/ringconnect/internal/models"
	"github.com/carloshsbsilva/ringconnect/internal/storage"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
)

// UploadVideo stores a training video and creates its record
// POST /api/v1/videos
func (h *Handlers) UploadVideo(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}
	if h.uploader == nil {
		util.RespondInternalError(c, "media storage not configured")
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		util.RespondValidationError(c, "title", "is required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.RespondBadRequest(c, "file is required")
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "video/") {
		util.RespondValidationError(c, "file", "must be a video")
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

	result, err := h.uploader.Upload(c.Request.Context(), storage.FileKindVideo,
		data, userID, fileHeader.Filename, contentType)
	if err != nil {
		util.RespondValidationError(c, "file", err.Error())
		return
	}

	video := models.Video{
		UserID:      userID,
		Title:       title,
		Description: c.PostForm("description"),
		VideoURL:    result.URL,
		Status:      "ready",
	}
	if err := database.DB.Create(&video).Error; err != nil {
		util.RespondInternalError(c, "failed to create video")
		return
	}

	c.JSON(http.StatusCreated, video)
}

// GetUserVideos lists a user's videos, newest first
// GET /api/v1/users/:id/videos
func (h *Handlers) GetUserVideos(c *gin.Context) {
	limit, offset := util.ParsePagination(c, 20, 100)

	var videos []models.Video
	if err := database.DB.
		Where("user_id = ?", c.Param("id")).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&videos).Error; err != nil {
		util.RespondInternalError(c, "failed to load videos")
		return
	}

	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

// UpdateVideo edits a video's metadata
// PUT /api/v1/videos/:id
func (h *Handlers) UpdateVideo(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var video models.Video
	if err := database.DB.First(&video, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "video")
		return
	}
	if video.UserID != userID {
		util.RespondForbidden(c, "only the owner can update a video")
		return
	}

	var req struct {
		Title        *string `json:"title"`
		Description  *string `json:"description"`
		ThumbnailURL *string `json:"thumbnail_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			util.RespondValidationError(c, "title", "cannot be empty")
			return
		}
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.ThumbnailURL != nil {
		updates["thumbnail_url"] = *req.ThumbnailURL
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&video).Updates(updates).Error; err != nil {
			util.RespondInternalError(c, "failed to update video")
			return
		}
	}

	c.JSON(http.StatusOK, video)
}

// DeleteVideo removes a video the caller owns, including the stored
// object. Object deletion is best-effort: a stranded file is cheaper
// than a dangling record.
// DELETE /api/v1/videos/:id
func (h *Handlers) DeleteVideo(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var video models.Video
	if err := database.DB.First(&video, "id = ?", c.Param("id")).Error; err != nil {
		util.RespondNotFound(c, "video")
		return
	}
	if video.UserID != userID {
		util.RespondForbidden(c, "only the owner can delete a video")
		return
	}

	if err := database.DB.Delete(&video).Error; err != nil {
		util.RespondInternalError(c, "failed to delete video")
		return
	}

	if h.uploader != nil {
		if key := objectKeyFromURL(video.VideoURL); key != "" {
			if err := h.uploader.DeleteFile(c.Request.Context(), key); err != nil {
				logger.Warn("failed to delete video object", err)
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func objectKeyFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Path, "/")
}
