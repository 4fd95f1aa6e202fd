package handlers

import (
	"net/http"

	"prtracker/internal/service"

	"github.com/gin-gonic/gin"
)

// createWeightliftRequest posts a lift. UserID defaults to the caller.
type createWeightliftRequest struct {
	UserID *int64 `json:"user_id"`
	service.WeightliftInput
}

type createBenchmarkRequest struct {
	UserID *int64 `json:"user_id"`
	service.BenchmarkInput
}

type catalogResponse struct {
	Movements  []string `json:"movements"`
	Benchmarks []string `json:"benchmarks"`
	Units      []string `json:"units"`
}

// @Summary      Movement, benchmark and unit names
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  catalogResponse
// @Router       /api/v1/catalog [get]
func (h *Handler) getCatalog(c *gin.Context) {
	cat := h.services.Catalog
	c.JSON(http.StatusOK, catalogResponse{
		Movements:  cat.Movements(),
		Benchmarks: cat.Benchmarks(),
		Units:      cat.Units(),
	})
}

// @Summary      List weightlift records
// @Description  Users always see their own records; coaches and admins may filter by user_id.
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query  int  false  "owner filter"
// @Success      200  {array}   models.WeightliftRecord
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/weightlifts [get]
func (h *Handler) listWeightlifts(c *gin.Context) {
	filter, ok := h.optionalUserID(c)
	if !ok {
		return
	}
	recs, err := h.services.ListWeightlifts(c.Request.Context(), sessionFrom(c), filter)
	if err != nil {
		h.respondError(c, "weightlift_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

// @Summary      Log a weightlift
// @Tags         records
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  models.WeightliftRecord
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/v1/weightlifts [post]
func (h *Handler) createWeightlift(c *gin.Context) {
	var req createWeightliftRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	sess := sessionFrom(c)
	owner := sess.UserID
	if req.UserID != nil {
		owner = *req.UserID
	}

	rec, err := h.services.CreateWeightlift(c.Request.Context(), sess, owner, req.WeightliftInput)
	if err != nil {
		h.respondError(c, "weightlift_create_failed", err, "owner_id", owner)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) updateWeightlift(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var patch service.WeightliftPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}

	rec, err := h.services.UpdateWeightlift(c.Request.Context(), sessionFrom(c), id, patch)
	if err != nil {
		h.respondError(c, "weightlift_update_failed", err, "record_id", id)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) deleteWeightlift(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.services.DeleteWeightlift(c.Request.Context(), sessionFrom(c), id); err != nil {
		h.respondError(c, "weightlift_delete_failed", err, "record_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary      List benchmark records
// @Tags         records
// @Produce      json
// @Security     BearerAuth
// @Param        user_id  query  int  false  "owner filter"
// @Success      200  {array}   models.BenchmarkRecord
// @Router       /api/v1/benchmarks [get]
func (h *Handler) listBenchmarks(c *gin.Context) {
	filter, ok := h.optionalUserID(c)
	if !ok {
		return
	}
	recs, err := h.services.ListBenchmarks(c.Request.Context(), sessionFrom(c), filter)
	if err != nil {
		h.respondError(c, "benchmark_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (h *Handler) createBenchmark(c *gin.Context) {
	var req createBenchmarkRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	sess := sessionFrom(c)
	owner := sess.UserID
	if req.UserID != nil {
		owner = *req.UserID
	}

	rec, err := h.services.CreateBenchmark(c.Request.Context(), sess, owner, req.BenchmarkInput)
	if err != nil {
		h.respondError(c, "benchmark_create_failed", err, "owner_id", owner)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

func (h *Handler) updateBenchmark(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var patch service.BenchmarkPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}

	rec, err := h.services.UpdateBenchmark(c.Request.Context(), sessionFrom(c), id, patch)
	if err != nil {
		h.respondError(c, "benchmark_update_failed", err, "record_id", id)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func (h *Handler) deleteBenchmark(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.services.DeleteBenchmark(c.Request.Context(), sessionFrom(c), id); err != nil {
		h.respondError(c, "benchmark_delete_failed", err, "record_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
