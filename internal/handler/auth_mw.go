package handler

import (
	"net/http"
	"os"
	"strings"

	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/UniPortal/feed-service/pkg/utils"
	"github.com/gin-gonic/gin"
)

const (
	cachedUserKey  = "cached-user"
	accessTokenKey = "access-token"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func (h *Handler) authMiddleware(c *gin.Context) {
	accessToken := bearerToken(c)
	if accessToken == "" {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		c.Abort()
		return
	}

	user, err := h.getUserDataFromClaims(c.Request.Context(), claims, accessToken)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		c.Abort()
		return
	}

	c.Set(cachedUserKey, *user)
	c.Set(accessTokenKey, accessToken)

	c.Next()
}

// notRequiredAuthMiddleware attaches the user when a valid token is present
// and lets the request through otherwise.
func (h *Handler) notRequiredAuthMiddleware(c *gin.Context) {
	accessToken := bearerToken(c)
	if accessToken == "" {
		c.Next()
		return
	}

	claims, err := utils.DecodeJWT(accessToken, []byte(os.Getenv("ACCESS_SECRET")))
	if err != nil {
		c.Next()
		return
	}

	user, err := h.getUserDataFromClaims(c.Request.Context(), claims, accessToken)
	if err != nil {
		if !isNotAuthorized(err) {
			h.logger.Sugar().Errorf("failed to resolve optional viewer: %s", err.Error())
		}
		c.Next()
		return
	}

	c.Set(cachedUserKey, *user)
	c.Set(accessTokenKey, accessToken)

	c.Next()
}
