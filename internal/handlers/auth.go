package handlers

import (
	"errors"
	"net/http"

	"github.com/carloshsbsilva/ringconnect/internal/auth"
	"github.com/carloshsbsilva/ringconnect/internal/util"
	"github.com/gin-gonic/gin"
)

// Register creates a new account
// POST /api/v1/auth/register
func (h *Handlers) Register(c *gin.Context) {
	var req auth.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Register(req)
	if err != nil {
		if errors.Is(err, auth.ErrUserExists) {
			util.RespondConflict(c, "user")
			return
		}
		util.RespondInternalError(c, "failed to register")
		return
	}

	if resp.User.Profile != nil {
		h.syncProfileToSearch(resp.User.Profile)
	}

	c.JSON(http.StatusCreated, resp)
}

// Login authenticates with email and password
// POST /api/v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidCredentials) {
			util.RespondUnauthorized(c, "invalid email or password")
			return
		}
		util.RespondInternalError(c, "failed to login")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user
// GET /api/v1/auth/me
func (h *Handlers) Me(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}
