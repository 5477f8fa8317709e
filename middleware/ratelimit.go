package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mlmarch/mlmarch-gateway/errors"
	"github.com/mlmarch/mlmarch-gateway/logging"
	"github.com/mlmarch/mlmarch-gateway/ratelimit"
)

// RateLimiterMiddleware allows limit requests per client IP in each window.
// Limiter failures let the request through.
func RateLimiterMiddleware(limiter ratelimit.RateLimiter, limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		key := fmt.Sprintf("rate:ip:%s", ip)

		count, err := limiter.Hit(c, key, window)
		if err != nil {
			logging.FromContext(c.Request.Context()).Warn("rate limiter unavailable", "error", err)
			c.Next()
			return
		}

		if count > int64(limit) {
			errors.ErrorResponse(c, http.StatusTooManyRequests, "Too many requests. Please try again later")
			return
		}

		c.Next()
	}
}
