package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Current personal records
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query  int  false  "whose PRs; defaults to the caller"
// @Success      200  {object}  models.CurrentPRs
// @Router       /api/v1/prs [get]
func (h *Handler) getPRs(c *gin.Context) {
	userID, ok := h.optionalUserID(c)
	if !ok {
		return
	}
	prs, err := h.services.CurrentPRs(c.Request.Context(), sessionFrom(c), userID)
	if err != nil {
		h.respondError(c, "prs_failed", err)
		return
	}
	c.JSON(http.StatusOK, prs)
}

// @Summary      Progress for one movement
// @Tags         stats
// @Produce      json
// @Security     BearerAuth
// @Param        movement  query  string  true   "catalog movement"
// @Param        user_id   query  int     false  "defaults to the caller"
// @Success      200  {object}  models.WeightliftProgress
// @Failure      400  {object}  map[string]string
// @Router       /api/v1/progress/weightlifts [get]
func (h *Handler) weightliftProgress(c *gin.Context) {
	userID, ok := h.optionalUserID(c)
	if !ok {
		return
	}
	p, err := h.services.WeightliftProgress(c.Request.Context(), sessionFrom(c), userID, c.Query("movement"))
	if err != nil {
		h.respondError(c, "weightlift_progress_failed", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) benchmarkProgress(c *gin.Context) {
	userID, ok := h.optionalUserID(c)
	if !ok {
		return
	}
	p, err := h.services.BenchmarkProgress(c.Request.Context(), sessionFrom(c), userID, c.Query("benchmark"))
	if err != nil {
		h.respondError(c, "benchmark_progress_failed", err)
		return
	}
	c.JSON(http.StatusOK, p)
}
