package dto

import (
	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/UniPortal/feed-service/internal/model"
)

type GetFeedResponse struct {
	Filter     model.FeedOrder `json:"filter"`
	Department string          `json:"department,omitempty"`
	Posts      []feed.PostView `json:"posts"`
}
