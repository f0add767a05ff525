package handler

import (
	"net/http"
	"strconv"

	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
)

func (h *Handler) notificationsGet(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	limit, err0 := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, err1 := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err0 != nil || err1 != nil || limit < 0 || offset < 0 {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errLimitMustBeInt.Error()))
		return
	}

	notifications, err := h.services.Notification.FindUserNotifications(c.Request.Context(), user.ID, limit, offset)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, notifications)
}

func (h *Handler) notificationsMarkRead(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	var input dto.MarkNotificationsReadRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if err := h.services.Notification.MarkRead(c.Request.Context(), user.ID, input.IDs); err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, ""))
}
