package handlers

import (
	"net/http"
	"strings"
	"time"

	"prtracker/internal/apperr"
	"prtracker/internal/authz"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionKey      = "session"
	requestIDKey    = "requestId"
	requestIDHeader = "X-Request-ID"
)

// requestLogger tags each request with an id and logs it once it completes.
func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(requestIDKey, id)
	c.Header(requestIDHeader, id)

	c.Next()

	h.log.Infow("http_request",
		"request_id", id,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (h *Handler) sessionMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "missing Authorization header",
		})
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid Authorization header format",
		})
		return
	}

	sess, err := h.services.ParseToken(parts[1])
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error": "invalid or expired token",
		})
		return
	}

	// store in Gin context
	c.Set(sessionKey, sess)
	c.Next()
}

func (h *Handler) adminOnly(c *gin.Context) {
	if err := sessionFrom(c).RequireAdmin(); err != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": apperr.MsgPermissionDenied})
		return
	}
	c.Next()
}

// sessionFrom returns the caller set by sessionMiddleware. A missing session
// yields the zero value, which has no scope at all.
func sessionFrom(c *gin.Context) authz.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return authz.Session{}
	}
	sess, _ := v.(authz.Session)
	return sess
}
