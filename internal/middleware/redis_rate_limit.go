package middleware

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/carloshsbsilva/ringconnect/internal/cache"
	"github.com/carloshsbsilva/ringconnect/internal/logger"
	"github.com/carloshsbsilva/ringconnect/internal/metrics"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RedisRateLimitMiddleware creates a distributed rate limiter using Redis.
// Counts requests per client IP in a fixed window so the limit holds
// across multiple instances.
func RedisRateLimitMiddleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		redisClient := cache.GetRedisClient()
		if redisClient == nil {
			// Without Redis the limiter degrades to a pass-through
			logger.Log.Warn("Redis rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		key := fmt.Sprintf("rate_limit:%s", clientIP)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		count, err := redisClient.Incr(ctx, key)
		if err != nil {
			// A broken limiter must not open the API to unlimited traffic
			logger.Log.Error("rate limit check failed, rejecting request",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service temporarily unavailable"})
			c.Abort()
			return
		}

		if count == 1 {
			if err := redisClient.Expire(ctx, key, window); err != nil {
				logger.Log.Warn("failed to set rate limit expiration",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)
			}
		}

		if count > int64(maxRequests) {
			metrics.Get().RateLimitExceededTotal.WithLabelValues(c.FullPath(), c.Request.Method).Inc()
			logger.Log.Warn("rate limit exceeded",
				zap.String("client_ip", clientIP),
				zap.Int("max_requests", maxRequests),
				zap.Int64("current_requests", count),
			)
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":       "rate limit exceeded",
				"retry_after": window.Seconds(),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
