package app

import (
	"context"
	"testing"

	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(b *fakeBackend) *App {
	return New(zap.NewNop(), b, 0)
}

func signedIn(t *testing.T, a *App) *State {
	t.Helper()
	s := NewState()
	require.NoError(t, a.SignIn(context.Background(), s, "ada", "right"))
	return s
}

func TestSignIn_InvalidCredentials(t *testing.T) {
	a := newTestApp(newFakeBackend())
	s := NewState()

	err := a.SignIn(context.Background(), s, "ada", "wrong")

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Nil(t, s.Session)
}

func TestRestoreSession_NoSession(t *testing.T) {
	a := newTestApp(newFakeBackend())

	assert.ErrorIs(t, a.RestoreSession(context.Background(), NewState()), ErrUnauthenticated)
}

func TestReload_AugmentsViewerState(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)
	author := uuid.New()
	b.posts[model.FeedRecent] = []model.FullPost{
		testPost(1, author, 3),
		testPost(2, s.Session.UserID, 0),
	}
	b.liked = []int64{1}
	b.followed = []uuid.UUID{author}

	require.NoError(t, a.Reload(context.Background(), s, model.FeedRecent, ""))

	require.Len(t, s.Posts, 2)
	assert.True(t, *s.Posts[0].IsLiked)
	assert.True(t, *s.Posts[0].IsFollowing)
	assert.Equal(t, feed.FollowActive, s.Posts[0].FollowButton)
	assert.Nil(t, s.Posts[1].IsFollowing)
	assert.False(t, s.Posts[1].FollowActionable)
	assert.False(t, s.Loading)
}

func TestReload_AnonymousHasNoViewerState(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := NewState()
	b.posts[model.FeedRecent] = []model.FullPost{testPost(1, uuid.New(), 0)}

	require.NoError(t, a.Reload(context.Background(), s, "", ""))

	require.Len(t, s.Posts, 1)
	assert.Nil(t, s.Posts[0].IsLiked)
}

func TestReload_InvalidFilter(t *testing.T) {
	a := newTestApp(newFakeBackend())

	assert.ErrorIs(t, a.Reload(context.Background(), NewState(), "oldest", ""), ErrInvalidFilter)
}

func TestReload_StaleGenerationIsDiscarded(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)
	ctx := context.Background()
	b.posts[model.FeedRecent] = []model.FullPost{testPost(1, uuid.New(), 0)}
	b.posts[model.FeedPopular] = []model.FullPost{testPost(2, uuid.New(), 40)}

	recent, err := a.BeginReload(s, model.FeedRecent, "")
	require.NoError(t, err)
	popular, err := a.BeginReload(s, model.FeedPopular, "")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), recent.Generation)
	assert.Equal(t, uint64(2), popular.Generation)

	applied, err := a.CompleteReload(ctx, s, a.Fetch(ctx, popular))
	require.NoError(t, err)
	assert.True(t, applied)

	applied, err = a.CompleteReload(ctx, s, a.Fetch(ctx, recent))
	require.NoError(t, err)
	assert.False(t, applied)

	require.Len(t, s.Posts, 1)
	assert.Equal(t, int64(2), s.Posts[0].Post.ID)
	assert.Equal(t, model.FeedPopular, s.Filter)
}

func TestReload_StaleFailureDoesNotSetError(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := NewState()
	ctx := context.Background()

	first, err := a.BeginReload(s, model.FeedRecent, "")
	require.NoError(t, err)
	b.listErr = errBackendDown
	stale := a.Fetch(ctx, first)
	b.listErr = nil

	require.NoError(t, a.Reload(ctx, s, model.FeedPopular, ""))
	applied, err := a.CompleteReload(ctx, s, stale)

	assert.False(t, applied)
	assert.NoError(t, err)
	assert.NoError(t, s.LoadErr)
}

func TestReload_ReadFailureSetsErrorState(t *testing.T) {
	b := newFakeBackend()
	b.listErr = errBackendDown
	a := newTestApp(b)
	s := NewState()

	err := a.Reload(context.Background(), s, model.FeedRecent, "")

	assert.ErrorIs(t, err, errBackendDown)
	assert.ErrorIs(t, s.LoadErr, errBackendDown)
	assert.Empty(t, s.Posts)
}

func TestReload_RejectedSessionClearsSession(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)
	b.listErr = ErrUnauthenticated

	err := a.Reload(context.Background(), s, model.FeedRecent, "")

	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.Nil(t, s.Session)
}

func TestReload_LazyComments(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := NewState()
	ctx := context.Background()
	b.posts[model.FeedRecent] = []model.FullPost{
		testPost(1, uuid.New(), 0),
		testPost(2, uuid.New(), 0),
		testPost(3, uuid.New(), 0),
	}
	b.comments[3] = []model.FullComment{{Comment: model.Comment{ID: 9, PostID: 3}}}

	require.NoError(t, a.Reload(ctx, s, model.FeedRecent, ""))

	assert.Equal(t, 1, b.calls(1))
	assert.Equal(t, 1, b.calls(2))
	assert.Equal(t, 0, b.calls(3))
	assert.True(t, s.Posts[0].CommentsLoaded)
	assert.False(t, s.Posts[2].CommentsLoaded)

	a.PostVisible(ctx, s, 3)
	a.PostVisible(ctx, s, 3)
	a.PostVisible(ctx, s, 1)

	assert.Equal(t, 1, b.calls(3))
	assert.Equal(t, 1, b.calls(1))
	require.Len(t, s.Posts[2].Comments, 1)
	assert.Equal(t, int64(9), s.Posts[2].Comments[0].Comment.ID)

	require.NoError(t, a.Reload(ctx, s, model.FeedRecent, ""))
	a.PostVisible(ctx, s, 3)
	assert.Equal(t, 2, b.calls(3))
}

func TestPostVisible_FailedLoadCanRetry(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := NewState()
	ctx := context.Background()
	b.posts[model.FeedRecent] = []model.FullPost{
		testPost(1, uuid.New(), 0),
		testPost(2, uuid.New(), 0),
		testPost(3, uuid.New(), 0),
	}
	require.NoError(t, a.Reload(ctx, s, model.FeedRecent, ""))

	b.commentsErr = errBackendDown
	a.PostVisible(ctx, s, 3)
	assert.False(t, s.Posts[2].CommentsLoaded)
	notices := s.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Kind)

	b.commentsErr = nil
	a.PostVisible(ctx, s, 3)
	assert.True(t, s.Posts[2].CommentsLoaded)
	assert.Equal(t, 2, b.calls(3))
}

func TestToggleLike_Optimistic(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)
	ctx := context.Background()
	b.posts[model.FeedRecent] = []model.FullPost{testPost(1, uuid.New(), 5)}
	require.NoError(t, a.Reload(ctx, s, model.FeedRecent, ""))

	b.likeResult = feed.LikeResult{Success: true, Liked: true}
	require.NoError(t, a.ToggleLike(ctx, s, 1))

	post, ok := s.Post(1)
	require.True(t, ok)
	assert.Equal(t, int64(6), post.Post.LikesCount)
	assert.True(t, *post.IsLiked)
	assert.Empty(t, s.Notices())
}

func TestToggleLike_FailureKeepsState(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)
	ctx := context.Background()
	b.posts[model.FeedRecent] = []model.FullPost{testPost(1, uuid.New(), 5)}
	require.NoError(t, a.Reload(ctx, s, model.FeedRecent, ""))

	b.likeResult = feed.LikeResult{Success: false}
	err := a.ToggleLike(ctx, s, 1)

	assert.ErrorIs(t, err, feed.ErrLikeFailed)
	post, _ := s.Post(1)
	assert.Equal(t, int64(5), post.Post.LikesCount)
	assert.False(t, *post.IsLiked)
	notices := s.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Kind)
}

func TestToggleLike_TransportErrorIsFailure(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)
	ctx := context.Background()
	b.posts[model.FeedRecent] = []model.FullPost{testPost(1, uuid.New(), 5)}
	require.NoError(t, a.Reload(ctx, s, model.FeedRecent, ""))

	b.likeErr = errBackendDown
	assert.ErrorIs(t, a.ToggleLike(ctx, s, 1), feed.ErrLikeFailed)

	post, _ := s.Post(1)
	assert.Equal(t, int64(5), post.Post.LikesCount)
}

func TestToggleLike_MilestoneOnce(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)
	ctx := context.Background()
	b.posts[model.FeedRecent] = []model.FullPost{testPost(1, uuid.New(), 9)}
	require.NoError(t, a.Reload(ctx, s, model.FeedRecent, ""))

	b.likeResult = feed.LikeResult{Success: true, Liked: true}
	require.NoError(t, a.ToggleLike(ctx, s, 1))
	notices := s.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeMilestone, notices[0].Kind)

	b.likeResult = feed.LikeResult{Success: true, Liked: false}
	require.NoError(t, a.ToggleLike(ctx, s, 1))
	assert.Empty(t, s.Notices())

	post, _ := s.Post(1)
	assert.Equal(t, int64(9), post.Post.LikesCount)
	assert.Equal(t, 0, post.Rating.Stars)
}

func TestToggleLike_RequiresSession(t *testing.T) {
	a := newTestApp(newFakeBackend())

	assert.ErrorIs(t, a.ToggleLike(context.Background(), NewState(), 1), ErrUnauthenticated)
}

func TestToggleFollow_UpdatesEveryPostByAuthor(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)
	ctx := context.Background()
	author := uuid.New()
	b.posts[model.FeedRecent] = []model.FullPost{
		testPost(1, author, 0),
		testPost(2, uuid.New(), 0),
		testPost(3, author, 0),
	}
	require.NoError(t, a.Reload(ctx, s, model.FeedRecent, ""))

	b.follow = feed.FollowResult{Success: true, Following: true}
	require.NoError(t, a.ToggleFollow(ctx, s, author))

	assert.True(t, *s.Posts[0].IsFollowing)
	assert.False(t, *s.Posts[1].IsFollowing)
	assert.True(t, *s.Posts[2].IsFollowing)
	assert.Equal(t, feed.FollowActive, s.Posts[2].FollowButton)

	b.follow = feed.FollowResult{Success: false}
	assert.ErrorIs(t, a.ToggleFollow(ctx, s, author), feed.ErrFollowFailed)
	assert.True(t, *s.Posts[0].IsFollowing)
}

func TestToggleFollow_Self(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)

	assert.ErrorIs(t, a.ToggleFollow(context.Background(), s, s.Session.UserID), ErrCannotFollowYourself)
}

func TestAddComment(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)
	ctx := context.Background()
	b.posts[model.FeedRecent] = []model.FullPost{testPost(1, uuid.New(), 0)}
	require.NoError(t, a.Reload(ctx, s, model.FeedRecent, ""))

	assert.ErrorIs(t, a.AddComment(ctx, s, 1, "   ", nil), ErrCommentIsEmpty)

	b.addComment = CommentResult{Success: true}
	require.NoError(t, a.AddComment(ctx, s, 1, "first!", nil))

	post, _ := s.Post(1)
	assert.Equal(t, int64(1), post.Post.CommentsCount)
	require.Len(t, post.Comments, 1)
	assert.Equal(t, "first!", post.Comments[0].Comment.Content)
}

func TestAddComment_Failure(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)
	ctx := context.Background()
	b.posts[model.FeedRecent] = []model.FullPost{testPost(1, uuid.New(), 0)}
	require.NoError(t, a.Reload(ctx, s, model.FeedRecent, ""))

	b.addComment = CommentResult{Success: false, Error: "too long"}
	assert.Error(t, a.AddComment(ctx, s, 1, "hello", nil))

	post, _ := s.Post(1)
	assert.Equal(t, int64(0), post.Post.CommentsCount)
	notices := s.Notices()
	require.Len(t, notices, 1)
	assert.Equal(t, NoticeError, notices[0].Kind)
}

func TestCreatePost(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)
	ctx := context.Background()

	assert.ErrorIs(t, a.CreatePost(ctx, s, NewPost{Department: "Physics"}), ErrPostIsEmpty)
	assert.ErrorIs(t, a.CreatePost(ctx, s, NewPost{Text: "hi"}), ErrDepartmentIsRequired)

	b.createPost = PostResult{Success: true}
	require.NoError(t, a.CreatePost(ctx, s, NewPost{Text: "hi", Department: "Physics"}))
	assert.Equal(t, 1, b.listCalls)
}

func TestToggleDescription(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := NewState()
	ctx := context.Background()
	long := make([]byte, 300)
	for i := range long {
		long[i] = '<'
	}
	content := string(long)
	p := testPost(1, uuid.New(), 0)
	p.Post.Content = &content
	b.posts[model.FeedRecent] = []model.FullPost{p}
	require.NoError(t, a.Reload(ctx, s, model.FeedRecent, ""))

	require.True(t, s.Posts[0].Description.Truncated)
	require.NoError(t, a.ToggleDescription(s, 1))
	assert.True(t, s.Posts[0].Description.Expanded)
	assert.Equal(t, content, feed.Expand(s.Posts[0].Description))
}

func TestSignOut_DropsInFlightReload(t *testing.T) {
	b := newFakeBackend()
	a := newTestApp(b)
	s := signedIn(t, a)
	ctx := context.Background()
	b.posts[model.FeedRecent] = []model.FullPost{testPost(1, uuid.New(), 0)}

	pending, err := a.BeginReload(s, model.FeedRecent, "")
	require.NoError(t, err)
	require.NoError(t, a.SignOut(ctx, s))

	applied, err := a.CompleteReload(ctx, s, a.Fetch(ctx, pending))
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Nil(t, s.Session)
	assert.Empty(t, s.Posts)
}
