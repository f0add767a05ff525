package service

import (
	"context"
	"errors"
	"testing"

	"github.com/UniPortal/feed-service/internal/model"
	"github.com/UniPortal/feed-service/internal/rabbitmq"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestInteractionService(d *testDeps) Interaction {
	logger := zap.NewNop()
	return newInteractionService(logger, d.repo, newNotificationService(logger, d.repo, d.broker))
}

func TestInteractionService_ToggleLike_CrossingMilestone(t *testing.T) {
	d := newTestDeps()
	author := uuid.New()
	d.posts.posts[1] = fullPost(1, author, 9)
	d.interactions.liked = true
	d.interactions.likesCount = 10

	resp, err := newTestInteractionService(d).ToggleLike(context.Background(), 1, uuid.New())

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.Liked)
	assert.Equal(t, int64(10), resp.LikesCount)
	assert.Equal(t, []model.NotificationKind{model.NotificationLike, model.NotificationMilestone}, d.notifications.kinds())
	assert.Equal(t, []string{rabbitmq.NOTIFICATION_CREATED_QUEUE, rabbitmq.NOTIFICATION_CREATED_QUEUE}, d.broker.queues())
}

func TestInteractionService_ToggleLike_UnlikeNotifiesNobody(t *testing.T) {
	d := newTestDeps()
	d.posts.posts[1] = fullPost(1, uuid.New(), 10)
	d.interactions.liked = false
	d.interactions.likesCount = 9

	resp, err := newTestInteractionService(d).ToggleLike(context.Background(), 1, uuid.New())

	require.NoError(t, err)
	assert.False(t, resp.Liked)
	assert.Empty(t, d.notifications.kinds())
}

func TestInteractionService_ToggleLike_OwnPostNoLikeNotification(t *testing.T) {
	d := newTestDeps()
	author := uuid.New()
	d.posts.posts[1] = fullPost(1, author, 3)
	d.interactions.liked = true
	d.interactions.likesCount = 4

	_, err := newTestInteractionService(d).ToggleLike(context.Background(), 1, author)

	require.NoError(t, err)
	assert.Empty(t, d.notifications.kinds())
}

func TestInteractionService_ToggleLike_Errors(t *testing.T) {
	d := newTestDeps()
	s := newTestInteractionService(d)

	_, err := s.ToggleLike(context.Background(), 1, uuid.New())
	assert.ErrorIs(t, err, ErrPostNotFound)

	d.posts.posts[1] = fullPost(1, uuid.New(), 0)
	d.interactions.err = errors.New("boom")
	resp, err := s.ToggleLike(context.Background(), 1, uuid.New())
	assert.ErrorIs(t, err, ErrInternal)
	assert.False(t, resp.Success)
}

func TestInteractionService_ToggleFollow(t *testing.T) {
	d := newTestDeps()
	s := newTestInteractionService(d)
	me := uuid.New()

	_, err := s.ToggleFollow(context.Background(), me, me)
	assert.ErrorIs(t, err, ErrCannotFollowYourself)

	d.interactions.following = true
	resp, err := s.ToggleFollow(context.Background(), me, uuid.New())
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.Following)
	assert.Equal(t, []model.NotificationKind{model.NotificationFollow}, d.notifications.kinds())
}

func TestInteractionService_ViewerState(t *testing.T) {
	d := newTestDeps()
	followed := uuid.New()
	d.interactions.likedIDs = []int64{4, 7}
	d.interactions.followed = []uuid.UUID{followed}

	state, err := newTestInteractionService(d).ViewerState(context.Background(), uuid.New(), []int64{4, 5, 7}, []uuid.UUID{followed})

	require.NoError(t, err)
	assert.Equal(t, []int64{4, 7}, state.LikedPostIDs)
	assert.Equal(t, []uuid.UUID{followed}, state.FollowedAuthorIDs)
}
