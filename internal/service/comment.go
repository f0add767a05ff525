package service

import (
	"context"
	"errors"
	"strings"

	"github.com/UniPortal/feed-service/internal/config"
	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/UniPortal/feed-service/internal/repository"
	"github.com/UniPortal/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type commentService struct {
	logger        *zap.Logger
	repo          *repository.Repository
	notifications Notification
	feedConfig    config.FeedConfig
}

func newCommentService(logger *zap.Logger, repo *repository.Repository, notifications Notification, feedConfig config.FeedConfig) Comment {
	return &commentService{
		logger:        logger,
		repo:          repo,
		notifications: notifications,
		feedConfig:    feedConfig,
	}
}

// Create stores a comment. A reply addressed to another reply is attached to
// that reply's top-level comment so the thread stays one level deep.
func (s *commentService) Create(ctx context.Context, authorID uuid.UUID, postID int64, input dto.CreateCommentRequest) (*model.Comment, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	comment := model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  strings.TrimSpace(input.Content),
	}

	var parent *model.Comment
	if input.ParentID != nil {
		parent, err = s.findTopLevelParent(ctx, postID, *input.ParentID)
		if err != nil {
			return nil, err
		}
		comment.ParentID = &parent.ID
	}

	createdComment, err := s.repo.Postgres.Comment.Create(ctx, comment)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create comment on post(%d) by user(%s): %s", postID, authorID.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Postgres.Post.IncrCommentsCount(ctx, postID); err != nil {
		s.logger.Sugar().Errorf("failed to increment comments count of post(%d): %s", postID, err.Error())
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.PostCommentsKey(postID)).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete post(%d) comments from redis: %s", postID, err.Error())
	}
	invalidateFeeds(ctx, s.logger, s.repo)

	s.notifyComment(ctx, post.Post, parent, createdComment)

	return createdComment, nil
}

func (s *commentService) findTopLevelParent(ctx context.Context, postID int64, parentID int64) (*model.Comment, error) {
	parent, err := s.repo.Postgres.Comment.FindByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParentCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to find comment(%d) from postgres: %s", parentID, err.Error())
		return nil, ErrInternal
	}
	if parent.PostID != postID {
		return nil, ErrParentCommentNotFound
	}
	if !parent.IsReply() {
		return parent, nil
	}

	root, err := s.repo.Postgres.Comment.FindByID(ctx, *parent.ParentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrParentCommentNotFound
		}
		s.logger.Sugar().Errorf("failed to find comment(%d) from postgres: %s", *parent.ParentID, err.Error())
		return nil, ErrInternal
	}
	if root.IsReply() || root.PostID != postID {
		return nil, ErrParentCommentNotFound
	}

	return root, nil
}

func (s *commentService) notifyComment(ctx context.Context, post model.Post, parent *model.Comment, comment *model.Comment) {
	actor := comment.AuthorID
	postID := post.ID

	if parent != nil && parent.AuthorID != actor {
		s.notifications.Notify(ctx, model.Notification{
			UserID:  parent.AuthorID,
			ActorID: &actor,
			Kind:    model.NotificationReply,
			PostID:  &postID,
			Message: "replied to your comment",
		})
	}

	if post.AuthorID != actor && (parent == nil || parent.AuthorID != post.AuthorID) {
		s.notifications.Notify(ctx, model.Notification{
			UserID:  post.AuthorID,
			ActorID: &actor,
			Kind:    model.NotificationComment,
			PostID:  &postID,
			Message: "commented on your post",
		})
	}
}

func (s *commentService) FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error) {
	key := redisrepo.PostCommentsKey(postID)

	cachedComments, err := redisrepo.GetMany[model.FullComment](s.repo.Redis.Default, ctx, key)
	if err == nil {
		cacheLookups.WithLabelValues("comments", "hit").Inc()
		return cachedComments, nil
	}
	if err != redis.Nil {
		cacheLookups.WithLabelValues("comments", "error").Inc()
		s.logger.Sugar().Errorf("failed to get post(%d) comments from redis: %s", postID, err.Error())
	} else {
		cacheLookups.WithLabelValues("comments", "miss").Inc()
	}

	comments, err := s.repo.Postgres.Comment.FindPostComments(ctx, postID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find post(%d) comments from postgres: %s", postID, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, key, comments, s.feedConfig.CacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set post(%d) comments in redis: %s", postID, err.Error())
	}

	return comments, nil
}

func (s *commentService) FindPostCommentTree(ctx context.Context, postID int64) ([]feed.CommentNode, error) {
	comments, err := s.FindPostComments(ctx, postID)
	if err != nil {
		return nil, err
	}

	flat := make([]model.FullComment, 0, len(comments))
	for _, c := range comments {
		flat = append(flat, *c)
	}

	return feed.BuildCommentTree(flat), nil
}
