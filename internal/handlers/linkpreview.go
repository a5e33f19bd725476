package handlers

import (
	"net/http"

	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
)

// GetLinkPreview scrapes Open Graph metadata for a URL so the composer
// can show the card before the post is created
// GET /api/v1/link-preview?url=...
func (h *Handlers) GetLinkPreview(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		util.RespondValidationError(c, "url", "is required")
		return
	}

	preview, err := h.linkPreview.Fetch(c.Request.Context(), rawURL)
	if err != nil {
		util.RespondBadRequest(c, "could not fetch link preview")
		return
	}

	c.JSON(http.StatusOK, preview)
}
