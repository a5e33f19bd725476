package util

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination reads limit and offset query parameters with sane bounds.
// Limit defaults to defaultLimit and is clamped to maxLimit; offset defaults
// to zero and negative values are treated as zero.
func ParsePagination(c *gin.Context, defaultLimit, maxLimit int) (limit, offset int) {
	limit = defaultLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			offset = parsed
		}
	}
	return limit, offset
}
