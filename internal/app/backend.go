package app

import (
	"context"
	"errors"

	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/google/uuid"
)

// ErrUnauthenticated means the session is missing or rejected. Callers send
// the user back to sign-in.
var ErrUnauthenticated = errors.New("not signed in")

type Session struct {
	UserID      uuid.UUID `json:"user_id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
}

type AuthResult struct {
	Success bool
	Error   string
}

type CommentResult struct {
	Success bool
	Comment *model.Comment
	Error   string
}

type PostResult struct {
	Success bool
	Error   string
}

// NewPost is a post draft. Image is optional.
type NewPost struct {
	Text       string
	Department string
	Image      []byte
	ImageName  string
}

// Backend is the hosted service the feed talks to. Implementations return
// ErrUnauthenticated when the session is rejected. Toggle and write calls
// report rejections through their result, and transport failures as errors.
type Backend interface {
	Authenticate(ctx context.Context, identifier string, secret string) (AuthResult, error)
	CurrentSession(ctx context.Context) (*Session, error)
	EndSession(ctx context.Context) error

	ListPosts(ctx context.Context, filter model.FeedOrder, department string, limit int) ([]model.FullPost, error)
	ListComments(ctx context.Context, postID int64) ([]model.FullComment, error)
	LikedPostIDs(ctx context.Context, postIDs []int64) ([]int64, error)
	FollowedAuthorIDs(ctx context.Context, authorIDs []uuid.UUID) ([]uuid.UUID, error)

	ToggleLike(ctx context.Context, postID int64) (feed.LikeResult, error)
	ToggleFollow(ctx context.Context, userID uuid.UUID) (feed.FollowResult, error)
	AddComment(ctx context.Context, postID int64, text string, parentID *int64) (CommentResult, error)
	CreatePost(ctx context.Context, post NewPost) (PostResult, error)
}
