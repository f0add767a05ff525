package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/UniPortal/feed-service/internal/service"
	"github.com/gin-gonic/gin"
)

// feedOrderFromQuery defaults an empty filter to recent.
func feedOrderFromQuery(filter string) (model.FeedOrder, error) {
	filter = strings.ToLower(strings.TrimSpace(filter))
	if filter == "" {
		return model.FeedRecent, nil
	}
	order := model.FeedOrder(filter)
	if !order.Valid() {
		return "", service.ErrInvalidFeedFilter
	}
	return order, nil
}

func parsePostID(c *gin.Context) (int64, bool) {
	postID, err := strconv.ParseInt(strings.TrimSpace(c.Param("postID")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return 0, false
	}
	return postID, true
}

func (h *Handler) postsGetList(c *gin.Context) {
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

	posts, err := h.services.Post.FindFeed(c.Request.Context(), order, input.Department, input.Limit)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, posts)
}

func (h *Handler) postsCreate(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	var input dto.CreatePostRequest
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	image, err := c.FormFile("image")
	if err != nil {
		if !errors.Is(err, http.ErrMissingFile) {
			c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errImageMustBeAFile.Error()))
			return
		}
		image = nil
	}

	createdPost, err := h.services.Post.Create(c.Request.Context(), user.ID, input, image)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, *createdPost)
}

func (h *Handler) postsLike(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	resp, err := h.services.Interaction.ToggleLike(c.Request.Context(), postID, user.ID)
	if err != nil {
		c.JSON(statusFromError(err), dto.ToggleLikeResponse{Success: false})
		return
	}

	c.JSON(http.StatusOK, resp)
}
