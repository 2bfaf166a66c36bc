package httpapi

import (
	"crypto/subtle"
	"net/http"
	"time"

	"calmcast/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// requestLogger tags every request with a short id and records the
// outcome at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := uuid.NewString()[:8]
		c.Set("request_id", reqID)
		c.Next()
		logger.Debugf("HTTP %s %s status=%d ip=%s dur=%s req=%s",
			c.Request.Method, c.Request.URL.Path, c.Writer.Status(), c.ClientIP(), time.Since(start), reqID)
	}
}

// apiKeyAuth rejects requests whose x-api-key header does not match
// the shared secret, before any model work happens. An empty
// configured secret locks the guarded routes entirely.
func apiKeyAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		presented := c.GetHeader("x-api-key")
		if secret == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "Invalid API key"})
			return
		}
		c.Next()
	}
}
