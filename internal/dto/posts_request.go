package dto

type CreatePostRequest struct {
	Content    string `form:"content" json:"content"`
	Department string `form:"department" json:"department" binding:"required"`
}

type GetFeedRequest struct {
	Filter     string `form:"filter"`
	Department string `form:"department"`
	Limit      int    `form:"limit"`
}
