package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tripplanner/internal/http/middleware"
	"tripplanner/internal/services"
)

// POST /api/users
func (h *Handler) Register(c *gin.Context) {
	var in services.RegisterInput
	if !BindJSONOrError(c, &in) {
		return
	}
	res, err := h.userService(c).Register(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// POST /api/users/login
func (h *Handler) Login(c *gin.Context) {
	var in services.LoginInput
	if !BindJSONOrError(c, &in) {
		return
	}
	res, err := h.userService(c).Login(in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// GET /api/users/profile
func (h *Handler) GetProfile(c *gin.Context) {
	u, err := h.userService(c).GetProfile(middleware.GetUserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}

// PUT /api/users/profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var in services.ProfileUpdate
	if !BindJSONOrError(c, &in) {
		return
	}
	u, err := h.userService(c).UpdateProfile(middleware.GetUserID(c), in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u)
}
