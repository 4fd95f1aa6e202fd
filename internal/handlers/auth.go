package handlers

import (
	"net/http"

	"prtracker/internal/authz"
	"prtracker/internal/service"

	"github.com/gin-gonic/gin"
)

// signUpRequest leaves field checks to the service so errors name the field.
type signUpRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse is returned by both sign-up and sign-in.
type TokenResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      201  {object}  TokenResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	var input signUpRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	u, err := h.services.Register(c.Request.Context(), service.RegisterInput{
		Username: input.Username,
		Password: input.Password,
		FullName: input.FullName,
	})
	if err != nil {
		h.respondError(c, "auth_sign_up_failed", err, "username", input.Username)
		return
	}
	h.log.Infow("auth_signed_up", "user_id", u.ID)
	h.respondWithToken(c, http.StatusCreated, authz.Session{UserID: u.ID, Role: u.Role})
}

// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Success      200  {object}  TokenResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	sess, err := h.services.Login(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, "auth_sign_in_failed", err, "username", input.Username)
		return
	}
	h.respondWithToken(c, http.StatusOK, sess)
}

func (h *Handler) respondWithToken(c *gin.Context, status int, sess authz.Session) {
	token, err := h.services.IssueToken(sess)
	if err != nil {
		h.respondError(c, "auth_issue_token_failed", err, "user_id", sess.UserID)
		return
	}
	c.JSON(status, TokenResponse{Token: token, UserID: sess.UserID, Role: string(sess.Role)})
}
