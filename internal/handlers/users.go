package handlers

import (
	"net/http"

	"prtracker/internal/service"

	"github.com/gin-gonic/gin"
)

type changePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

type resetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}

// @Summary      Current account
// @Tags         account
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  models.User
// @Router       /api/v1/me [get]
func (h *Handler) getMe(c *gin.Context) {
	sess := sessionFrom(c)
	u, err := h.services.GetUser(c.Request.Context(), sess, sess.UserID)
	if err != nil {
		h.respondError(c, "me_failed", err, "user_id", sess.UserID)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	sess := sessionFrom(c)
	if err := h.services.ChangePassword(c.Request.Context(), sess, req.OldPassword, req.NewPassword); err != nil {
		h.respondError(c, "password_change_failed", err, "user_id", sess.UserID)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.services.ListUsers(c.Request.Context(), sessionFrom(c))
	if err != nil {
		h.respondError(c, "user_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// @Summary      Create an account with any role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      201  {object}  models.User
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/v1/admin/users [post]
func (h *Handler) createUser(c *gin.Context) {
	var in service.NewUserInput
	if ok := h.bindJSONOrBadRequest(c, &in); !ok {
		return
	}
	u, err := h.services.CreateUser(c.Request.Context(), sessionFrom(c), in)
	if err != nil {
		h.respondError(c, "user_create_failed", err, "username", in.Username)
		return
	}
	c.JSON(http.StatusCreated, u)
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var patch service.UserPatch
	if ok := h.bindJSONOrBadRequest(c, &patch); !ok {
		return
	}
	u, err := h.services.UpdateUser(c.Request.Context(), sessionFrom(c), id, patch)
	if err != nil {
		h.respondError(c, "user_update_failed", err, "user_id", id)
		return
	}
	c.JSON(http.StatusOK, u)
}

// @Summary      Delete an account and all of its records
// @Tags         admin
// @Security     BearerAuth
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/admin/users/{id} [delete]
func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.services.DeleteUser(c.Request.Context(), sessionFrom(c), id); err != nil {
		h.respondError(c, "user_delete_failed", err, "user_id", id)
		return
	}
	h.log.Infow("user_deleted", "user_id", id, "by", sessionFrom(c).UserID)
	c.Status(http.StatusNoContent)
}

func (h *Handler) resetPassword(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req resetPasswordRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if err := h.services.AdminResetPassword(c.Request.Context(), sessionFrom(c), id, req.Password); err != nil {
		h.respondError(c, "password_reset_failed", err, "user_id", id)
		return
	}
	c.Status(http.StatusNoContent)
}
