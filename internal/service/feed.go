package service

import (
	"context"
	"time"

	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type feedService struct {
	logger      *zap.Logger
	posts       Post
	interaction Interaction
}

func newFeedService(logger *zap.Logger, posts Post, interaction Interaction) Feed {
	return &feedService{
		logger:      logger,
		posts:       posts,
		interaction: interaction,
	}
}

// Build returns a reconciled feed batch. Anonymous viewers (uuid.Nil) get
// posts without viewer state.
func (s *feedService) Build(ctx context.Context, viewerID uuid.UUID, order model.FeedOrder, department string, limit int) ([]feed.PostView, error) {
	start := time.Now()
	defer func() {
		feedBuildDuration.WithLabelValues(string(order)).Observe(time.Since(start).Seconds())
	}()

	posts, err := s.posts.FindFeed(ctx, order, department, limit)
	if err != nil {
		return nil, err
	}

	full := make([]model.FullPost, 0, len(posts))
	for _, p := range posts {
		if p != nil {
			full = append(full, *p)
		}
	}
	views := feed.NewPostViews(full)
	feedBatchSize.Observe(float64(len(views)))

	if viewerID == uuid.Nil {
		return views, nil
	}

	state, err := s.interaction.ViewerState(ctx, viewerID, feed.PostIDs(views), feed.AuthorIDs(views))
	if err != nil {
		return nil, err
	}

	vc := feed.NewViewerContext(viewerID, state.LikedPostIDs, state.FollowedAuthorIDs)
	return feed.AugmentViewerState(views, vc), nil
}
