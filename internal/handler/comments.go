package handler

import (
	"net/http"

	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/gin-gonic/gin"
)

// commentsGet returns the flat comment list of a post, unordered.
func (h *Handler) commentsGet(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	comments, err := h.services.Comment.FindPostComments(c.Request.Context(), postID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (h *Handler) commentsGetTree(c *gin.Context) {
	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	tree, err := h.services.Comment.FindPostCommentTree(c.Request.Context(), postID)
	if err != nil {
		c.JSON(statusFromError(err), dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, tree)
}

func (h *Handler) commentsCreate(c *gin.Context) {
	user := h.getCachedUserFromRequest(c)

	postID, ok := parsePostID(c)
	if !ok {
		return
	}

	var input dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.CreateCommentResponse{Success: false, Error: err.Error()})
		return
	}

	createdComment, err := h.services.Comment.Create(c.Request.Context(), user.ID, postID, input)
	if err != nil {
		c.JSON(statusFromError(err), dto.CreateCommentResponse{Success: false, Error: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, dto.CreateCommentResponse{Success: true, Comment: createdComment})
}
