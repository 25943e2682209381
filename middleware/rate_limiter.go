// middleware/rate_limiter.go

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pingwise/clinic-api/db"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/util"
)

// RateLimiter enforces a per-client sliding window backed by Redis. The
// limiter is an optional tier: when Redis is down, or a check fails
// mid-flight, requests pass through unthrottled rather than failing the
// whole API on a cache outage.
func RateLimiter(limit int, per time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !db.Available() {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		allowed, err := db.RateLimit(c, clientIP, limit, per)
		if err != nil {
			logger.Warn("Rate limit check failed, allowing request",
				zap.Error(err), zap.String("ip", clientIP))
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Window", per.String())

		if !allowed {
			logger.Warn("Rate limit exceeded",
				zap.String("ip", clientIP),
				zap.Int("limit", limit),
				zap.Duration("window", per))
			c.JSON(http.StatusTooManyRequests, util.Envelope{
				Success: false,
				Message: "Too many requests, slow down",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
