package handler

import (
	"net/http"

	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) authLogin(c *gin.Context) {
	var input dto.LoginRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.LoginResponse{Success: false, Error: err.Error()})
		return
	}

	accessToken, err := h.services.Auth.Login(c.Request.Context(), input.Identifier, input.Secret)
	if err != nil {
		c.JSON(statusFromError(err), dto.LoginResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{Success: true, AccessToken: accessToken})
}

func (h *Handler) authSession(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	c.JSON(http.StatusOK, dto.SessionResponse{User: *user})
}

func (h *Handler) authLogout(c *gin.Context) {
	if err := h.services.Auth.Logout(c.Request.Context(), c.GetString(accessTokenKey)); err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
