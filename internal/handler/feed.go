package handler

import (
	"net/http"
	"strings"

	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Upper bound on ids accepted by viewer-state, twice the largest batch.
const maxViewerStateIDs = 100

func (h *Handler) feedGet(c *gin.Context) {
	var input dto.GetFeedRequest
	if err := c.ShouldBindQuery(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	order, err := feedOrderFromQuery(input.Filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	department := strings.TrimSpace(input.Department)
	posts, err := h.services.Feed.Build(c.Request.Context(), h.viewerID(c), order, department, input.Limit)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.GetFeedResponse{
		Filter:     order,
		Department: department,
		Posts:      posts,
	})
}

func (h *Handler) feedViewerState(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	var input dto.ViewerStateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}
	if len(input.PostIDs) > maxViewerStateIDs || len(input.AuthorIDs) > maxViewerStateIDs {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errTooManyViewerStates.Error()))
		return
	}

	state, err := h.services.Interaction.ViewerState(c.Request.Context(), user.ID, input.PostIDs, input.AuthorIDs)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *Handler) usersFollow(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	followeeID, err := uuid.Parse(strings.TrimSpace(c.Param("userID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	resp, err := h.services.Interaction.ToggleFollow(c.Request.Context(), user.ID, followeeID)
	if err != nil {
		c.JSON(statusFromError(err), dto.ToggleFollowResponse{Success: false})
		return
	}

	c.JSON(http.StatusOK, resp)
}
