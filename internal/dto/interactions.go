package dto

import "github.com/google/uuid"

type ToggleLikeResponse struct {
	Success    bool  `json:"success"`
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likes_count"`
}

type ToggleFollowResponse struct {
	Success   bool `json:"success"`
	Following bool `json:"following"`
}

type ViewerStateRequest struct {
	PostIDs   []int64     `json:"post_ids"`
	AuthorIDs []uuid.UUID `json:"author_ids"`
}

type ViewerStateResponse struct {
	LikedPostIDs      []int64     `json:"liked_post_ids"`
	FollowedAuthorIDs []uuid.UUID `json:"followed_author_ids"`
}

type MarkNotificationsReadRequest struct {
	IDs []int64 `json:"ids"`
}
