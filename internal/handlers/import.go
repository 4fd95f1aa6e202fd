package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"prtracker/internal/apperr"
	"prtracker/internal/service"

	"github.com/gin-gonic/gin"
)

// maxImportBodyBytes caps the legacy JSON body accepted by importLegacy.
var maxImportBodyBytes int64 = 10 << 20

// @Summary      Import legacy JSON records for a user
// @Description  The body is the legacy JSON array. Invalid entries are skipped and reported.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        kind     query  string  true  "weightlift or benchmark"
// @Param        user_id  query  int     true  "target user"
// @Success      200  {object}  service.ImportReport
// @Failure      400  {object}  map[string]string
// @Failure      413  {object}  map[string]string
// @Router       /api/v1/admin/import [post]
func (h *Handler) importLegacy(c *gin.Context) {
	kind, err := service.ParseImportKind(c.Query("kind"))
	if err != nil {
		h.respondError(c, "import_bad_kind", err)
		return
	}
	target, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil || target <= 0 {
		h.respondError(c, "import_bad_user", apperr.Validation("user_id", "must be a positive integer"))
		return
	}

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBodyBytes)
	report, err := h.services.ImportReader(c.Request.Context(), sessionFrom(c), kind, body, target)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Infow("import_body_too_large", "user_id", target, "limit", tooLarge.Limit)
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large", "field": "file"})
			return
		}
		h.respondError(c, "import_failed", err, "user_id", target, "kind", string(kind))
		return
	}
	h.log.Infow("import_done", "user_id", target, "kind", string(kind), "imported", report.Imported, "skipped", report.Skipped)
	c.JSON(http.StatusOK, report)
}
