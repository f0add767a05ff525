package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/google/uuid"
)

var errBackendDown = errors.New("backend unavailable")

type fakeBackend struct {
	mu sync.Mutex

	session  *Session
	posts    map[model.FeedOrder][]model.FullPost
	comments map[int64][]model.FullComment
	liked    []int64
	followed []uuid.UUID

	listErr     error
	commentsErr error
	likeResult  feed.LikeResult
	likeErr     error
	follow      feed.FollowResult
	addComment  CommentResult
	createPost  PostResult

	commentCalls map[int64]int
	listCalls    int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		posts:        make(map[model.FeedOrder][]model.FullPost),
		comments:     make(map[int64][]model.FullComment),
		commentCalls: make(map[int64]int),
	}
}

func (b *fakeBackend) Authenticate(ctx context.Context, identifier string, secret string) (AuthResult, error) {
	if secret != "right" {
		return AuthResult{Success: false, Error: "invalid credentials"}, nil
	}
	b.session = &Session{UserID: uuid.New(), Username: identifier}
	return AuthResult{Success: true}, nil
}

func (b *fakeBackend) CurrentSession(ctx context.Context) (*Session, error) {
	return b.session, nil
}

func (b *fakeBackend) EndSession(ctx context.Context) error {
	b.session = nil
	return nil
}

func (b *fakeBackend) ListPosts(ctx context.Context, filter model.FeedOrder, department string, limit int) ([]model.FullPost, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listCalls++
	if b.listErr != nil {
		return nil, b.listErr
	}
	return b.posts[filter], nil
}

func (b *fakeBackend) ListComments(ctx context.Context, postID int64) ([]model.FullComment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.commentCalls[postID]++
	if b.commentsErr != nil {
		return nil, b.commentsErr
	}
	return b.comments[postID], nil
}

func (b *fakeBackend) LikedPostIDs(ctx context.Context, postIDs []int64) ([]int64, error) {
	return b.liked, nil
}

func (b *fakeBackend) FollowedAuthorIDs(ctx context.Context, authorIDs []uuid.UUID) ([]uuid.UUID, error) {
	return b.followed, nil
}

func (b *fakeBackend) ToggleLike(ctx context.Context, postID int64) (feed.LikeResult, error) {
	return b.likeResult, b.likeErr
}

func (b *fakeBackend) ToggleFollow(ctx context.Context, userID uuid.UUID) (feed.FollowResult, error) {
	return b.follow, nil
}

func (b *fakeBackend) AddComment(ctx context.Context, postID int64, text string, parentID *int64) (CommentResult, error) {
	if b.addComment.Success {
		b.mu.Lock()
		b.comments[postID] = append(b.comments[postID], model.FullComment{
			Comment: model.Comment{
				ID:        int64(len(b.comments[postID]) + 100),
				PostID:    postID,
				ParentID:  parentID,
				Content:   text,
				CreatedAt: time.Now(),
			},
		})
		b.mu.Unlock()
	}
	return b.addComment, nil
}

func (b *fakeBackend) CreatePost(ctx context.Context, post NewPost) (PostResult, error) {
	return b.createPost, nil
}

func (b *fakeBackend) calls(postID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.commentCalls[postID]
}

func testPost(id int64, author uuid.UUID, likes int64) model.FullPost {
	content := fmt.Sprintf("post %d", id)
	return model.FullPost{
		Post: model.Post{
			ID:         id,
			AuthorID:   author,
			Content:    &content,
			Department: "Physics",
			LikesCount: likes,
			CreatedAt:  time.Date(2024, 3, 1, 12, 0, int(id), 0, time.UTC),
		},
		Author: model.UserAuthor{Username: "author"},
	}
}
