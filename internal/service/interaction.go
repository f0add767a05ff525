package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/UniPortal/feed-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type interactionService struct {
	logger        *zap.Logger
	repo          *repository.Repository
	notifications Notification
}

func newInteractionService(logger *zap.Logger, repo *repository.Repository, notifications Notification) Interaction {
	return &interactionService{
		logger:        logger,
		repo:          repo,
		notifications: notifications,
	}
}

func (s *interactionService) ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (dto.ToggleLikeResponse, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, postID)
	if err != nil {
		interactionTotal.WithLabelValues("like", "error").Inc()
		if errors.Is(err, pgx.ErrNoRows) {
			return dto.ToggleLikeResponse{}, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", postID, err.Error())
		return dto.ToggleLikeResponse{}, ErrInternal
	}

	liked, likesCount, err := s.repo.Postgres.Interaction.ToggleLike(ctx, postID, userID)
	if err != nil {
		interactionTotal.WithLabelValues("like", "error").Inc()
		s.logger.Sugar().Errorf("failed to toggle like of post(%d) by user(%s): %s", postID, userID.String(), err.Error())
		return dto.ToggleLikeResponse{}, ErrInternal
	}

	invalidateFeeds(ctx, s.logger, s.repo)

	if liked {
		interactionTotal.WithLabelValues("like", "liked").Inc()
		s.notifyLike(ctx, post.Post, userID, likesCount)
	} else {
		interactionTotal.WithLabelValues("like", "unliked").Inc()
	}

	return dto.ToggleLikeResponse{
		Success:    true,
		Liked:      liked,
		LikesCount: likesCount,
	}, nil
}

func (s *interactionService) notifyLike(ctx context.Context, post model.Post, userID uuid.UUID, likesCount int64) {
	postID := post.ID

	if post.AuthorID != userID {
		s.notifications.Notify(ctx, model.Notification{
			UserID:  post.AuthorID,
			ActorID: &userID,
			Kind:    model.NotificationLike,
			PostID:  &postID,
			Message: "liked your post",
		})
	}

	if rating, ok := feed.Milestone(likesCount-1, likesCount); ok {
		s.notifications.Notify(ctx, model.Notification{
			UserID:  post.AuthorID,
			Kind:    model.NotificationMilestone,
			PostID:  &postID,
			Message: fmt.Sprintf("your post reached %d stars: %s", rating.Stars, rating.Label),
		})
	}
}

func (s *interactionService) ToggleFollow(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (dto.ToggleFollowResponse, error) {
	if followerID == followeeID {
		return dto.ToggleFollowResponse{}, ErrCannotFollowYourself
	}

	following, err := s.repo.Postgres.Interaction.ToggleFollow(ctx, followerID, followeeID)
	if err != nil {
		interactionTotal.WithLabelValues("follow", "error").Inc()
		s.logger.Sugar().Errorf("failed to toggle follow of user(%s) by user(%s): %s", followeeID.String(), followerID.String(), err.Error())
		return dto.ToggleFollowResponse{}, ErrInternal
	}

	if following {
		interactionTotal.WithLabelValues("follow", "followed").Inc()
		s.notifications.Notify(ctx, model.Notification{
			UserID:  followeeID,
			ActorID: &followerID,
			Kind:    model.NotificationFollow,
			Message: "started following you",
		})
	} else {
		interactionTotal.WithLabelValues("follow", "unfollowed").Inc()
	}

	return dto.ToggleFollowResponse{
		Success:   true,
		Following: following,
	}, nil
}

// ViewerState fetches the liked and followed sets for a batch concurrently.
func (s *interactionService) ViewerState(ctx context.Context, userID uuid.UUID, postIDs []int64, authorIDs []uuid.UUID) (dto.ViewerStateResponse, error) {
	var resp dto.ViewerStateResponse

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		liked, err := s.repo.Postgres.Interaction.FindLikedPostIDs(gctx, userID, postIDs)
		if err != nil {
			return fmt.Errorf("liked posts: %w", err)
		}
		resp.LikedPostIDs = liked
		return nil
	})
	g.Go(func() error {
		followed, err := s.repo.Postgres.Interaction.FindFollowedAuthorIDs(gctx, userID, authorIDs)
		if err != nil {
			return fmt.Errorf("followed authors: %w", err)
		}
		resp.FollowedAuthorIDs = followed
		return nil
	})

	if err := g.Wait(); err != nil {
		s.logger.Sugar().Errorf("failed to find viewer(%s) state: %s", userID.String(), err.Error())
		return dto.ViewerStateResponse{}, ErrInternal
	}

	return resp, nil
}
