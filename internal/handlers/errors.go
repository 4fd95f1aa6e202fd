package handlers

import (
	"net/http"
	"strconv"

	"prtracker/internal/apperr"

	"github.com/gin-gonic/gin"
)

const errInvalidBody = "invalid request body"

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindPermissionDenied:
		return http.StatusForbidden
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// respondError maps a service error to its status. Storage failures are
// logged with their cause and answered with a generic message.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	kind := apperr.KindOf(err)
	switch kind {
	case apperr.KindStorage:
		h.logAndJSONError(c, http.StatusInternalServerError, apperr.MsgStorage, logKey, err, kv...)
	case apperr.KindValidation:
		h.log.Infow(logKey, append([]interface{}{"err", err, "request_id", c.GetString(requestIDKey)}, kv...)...)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": apperr.FieldOf(err)})
	default:
		h.log.Infow(logKey, append([]interface{}{"kind", kind.String(), "request_id", c.GetString(requestIDKey)}, kv...)...)
		c.JSON(statusFor(kind), gin.H{"error": err.Error()})
	}
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.log.Infow("bad_request_body", "err", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBody})
		return false
	}
	return true
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(c, "bad_path_id", apperr.Validation("id", "must be a positive integer"))
		return 0, false
	}
	return id, true
}

// optionalUserID reads ?user_id=. Absent means no filter.
func (h *Handler) optionalUserID(c *gin.Context) (*int64, bool) {
	raw, ok := c.GetQuery("user_id")
	if !ok || raw == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.respondError(c, "bad_user_id", apperr.Validation("user_id", "must be a positive integer"))
		return nil, false
	}
	return &id, true
}
