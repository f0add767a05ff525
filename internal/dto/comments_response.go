package dto

import "github.com/UniPortal/feed-service/internal/model"

type CreateCommentResponse struct {
	Success bool           `json:"success"`
	Comment *model.Comment `json:"comment,omitempty"`
	Error   string         `json:"error,omitempty"`
}
