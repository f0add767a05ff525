package feed

import (
	"testing"

	"github.com/UniPortal/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func augmented(t *testing.T, viewer uuid.UUID, posts ...model.FullPost) []PostView {
	t.Helper()
	return AugmentViewerState(NewPostViews(posts), NewViewerContext(viewer, nil, nil))
}

func TestApplyOptimisticLike_Success(t *testing.T) {
	p := augmented(t, uuid.New(), post(1, uuid.New(), 5))[0]

	got, err := ApplyOptimisticLike(p, LikeResult{Success: true, Liked: true})

	require.NoError(t, err)
	assert.Equal(t, int64(6), got.Post.LikesCount)
	assert.True(t, *got.IsLiked)
}

func TestApplyOptimisticLike_Failure(t *testing.T) {
	p := augmented(t, uuid.New(), post(1, uuid.New(), 5))[0]

	got, err := ApplyOptimisticLike(p, LikeResult{Success: false, Liked: true})

	assert.ErrorIs(t, err, ErrLikeFailed)
	assert.Equal(t, int64(5), got.Post.LikesCount)
	assert.False(t, *got.IsLiked)
}

func TestApplyOptimisticLike_UnlikeFloorsAtZero(t *testing.T) {
	p := augmented(t, uuid.New(), post(1, uuid.New(), 0))[0]
	p.IsLiked = boolPtr(true)

	got, err := ApplyOptimisticLike(p, LikeResult{Success: true, Liked: false})

	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Post.LikesCount)
	assert.False(t, *got.IsLiked)
}

func TestApplyOptimisticLike_RecomputesRating(t *testing.T) {
	p := augmented(t, uuid.New(), post(1, uuid.New(), 9))[0]

	got, err := ApplyOptimisticLike(p, LikeResult{Success: true, Liked: true})

	require.NoError(t, err)
	assert.Equal(t, 1, got.Rating.Stars)
}

func TestApplyOptimisticFollow_UpdatesEveryPostByAuthor(t *testing.T) {
	viewer := uuid.New()
	author := uuid.New()
	other := uuid.New()
	posts := augmented(t, viewer,
		post(1, author, 0),
		post(2, other, 0),
		post(3, author, 0),
		post(4, viewer, 0),
	)

	got, err := ApplyOptimisticFollow(posts, author, FollowResult{Success: true, Following: true})

	require.NoError(t, err)
	assert.True(t, *got[0].IsFollowing)
	assert.Equal(t, FollowActive, got[0].FollowButton)
	assert.True(t, *got[2].IsFollowing)
	assert.False(t, *got[1].IsFollowing)
	assert.Nil(t, got[3].IsFollowing)

	back, err := ApplyOptimisticFollow(got, author, FollowResult{Success: true, Following: false})
	require.NoError(t, err)
	assert.Equal(t, FollowIdle, back[0].FollowButton)
	assert.False(t, *back[2].IsFollowing)
}

func TestApplyOptimisticFollow_FailureLeavesState(t *testing.T) {
	author := uuid.New()
	posts := augmented(t, uuid.New(), post(1, author, 0))

	got, err := ApplyOptimisticFollow(posts, author, FollowResult{Success: false, Following: true})

	assert.ErrorIs(t, err, ErrFollowFailed)
	assert.False(t, *got[0].IsFollowing)
	assert.Equal(t, FollowIdle, got[0].FollowButton)
}
