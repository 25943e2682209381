// util/http_util.go
package util

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	logger "github.com/pingwise/clinic-api/logging"
)

// Envelope is the JSON wrapper returned by every handler.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method))
	c.JSON(code, Envelope{Success: false, Message: message})
}

func RespondWithData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Envelope{Success: true, Data: data})
}

func RespondWithMessage(c *gin.Context, code int, message string) {
	c.JSON(code, Envelope{Success: true, Message: message})
}

func GetUserIDFromContext(c *gin.Context) (string, error) {
	userID, exists := c.Get("userID")
	if !exists {
		return "", nil
	}
	return userID.(string), nil
}
