// middleware/rate_limiter_test.go
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"github.com/pingwise/clinic-api/db"
	logger "github.com/pingwise/clinic-api/logging"
	"github.com/pingwise/clinic-api/middleware"
)

func limitedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RateLimiter(100, time.Minute))
	router.GET("/patients", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestRateLimiterDegradation(t *testing.T) {
	logger.InitLogger("../logging")
	defer logger.Sync()

	previous := db.RedisClient
	defer func() { db.RedisClient = previous }()

	t.Run("PassesThroughWhenRedisNotInitialized", func(t *testing.T) {
		db.RedisClient = nil
		router := limitedRouter()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/patients", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("AllowsRequestWhenRedisCheckFails", func(t *testing.T) {
		// A client whose connection attempts are refused: every limiter
		// call errors, and the request must still be served.
		db.RedisClient = redis.NewClient(&redis.Options{
			Addr:        "127.0.0.1:1",
			DialTimeout: 100 * time.Millisecond,
			ReadTimeout: 100 * time.Millisecond,
		})
		defer db.RedisClient.Close()
		router := limitedRouter()

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/patients", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
