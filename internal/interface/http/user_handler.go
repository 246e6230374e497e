package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/taskvault/internal/application"
	"github.com/oksasatya/taskvault/internal/domain/entity"
	"github.com/oksasatya/taskvault/internal/interface/middleware"
	"github.com/oksasatya/taskvault/pkg/response"
	"github.com/oksasatya/taskvault/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// publicUser is the only shape an account ever takes in a response body.
// The credential hash stays server-side.
func publicUser(u *entity.User) gin.H {
	return gin.H{
		"id":         u.ID,
		"email":      u.Email,
		"created_at": u.CreatedAt,
		"updated_at": u.UpdatedAt,
	}
}

// Register handles POST /users. The first session token is issued right away
// and returned in the x-auth response header.
func (h *UserHandler) Register(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, token, err := h.Svc.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		status := http.StatusBadRequest
		msg := "registration failed"
		if errors.Is(err, application.ErrEmailTaken) {
			msg = "email already registered"
		} else if h.Logger != nil {
			h.Logger.WithError(err).Warn("register failed")
		}
		resp := response.Error[any](c, status, msg, nil)
		c.JSON(resp.Status, resp)
		return
	}

	c.Header(middleware.HeaderAuthToken, token)
	resp := response.Success(c, http.StatusOK, gin.H{"user": publicUser(u)}, "registered")
	c.JSON(resp.Status, resp)
}

// Login handles POST /users/login. A failed login is a 400 with one generic
// message whether the email is unknown or the password wrong.
func (h *UserHandler) Login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		c.JSON(resp.Status, resp)
		return
	}

	u, token, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		resp := response.Error[any](c, http.StatusBadRequest, "login failed", nil)
		c.JSON(resp.Status, resp)
		return
	}

	c.Header(middleware.HeaderAuthToken, token)
	resp := response.Success(c, http.StatusOK, gin.H{"user": publicUser(u)}, "login successful")
	c.JSON(resp.Status, resp)
}

// Me handles GET /users/me. The gate already resolved the identity.
func (h *UserHandler) Me(c *gin.Context) {
	u, ok := c.MustGet(middleware.CtxUserKey).(*entity.User)
	if !ok {
		resp := response.Error[any](c, http.StatusUnauthorized, "unauthorized", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success(c, http.StatusOK, gin.H{"user": publicUser(u)}, "profile")
	c.JSON(resp.Status, resp)
}

// Logout handles DELETE /users/me/token, revoking exactly the token the
// request was authenticated with.
func (h *UserHandler) Logout(c *gin.Context) {
	u, _ := c.MustGet(middleware.CtxUserKey).(*entity.User)
	token := c.GetString(middleware.CtxTokenKey)

	if err := h.Svc.RevokeToken(c.Request.Context(), u, token); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).WithField("user_id", u.ID).Warn("revoke token failed")
		}
		resp := response.Error[any](c, http.StatusBadRequest, "logout failed", nil)
		c.JSON(resp.Status, resp)
		return
	}
	resp := response.Success[any](c, http.StatusOK, nil, "logged out")
	c.JSON(resp.Status, resp)
}
