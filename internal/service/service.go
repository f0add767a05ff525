package service

import (
	"context"
	"mime/multipart"

	"github.com/UniPortal/feed-service/internal/config"
	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/UniPortal/feed-service/internal/repository"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type Post interface {
	Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest, image *multipart.FileHeader) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	FindFeed(ctx context.Context, order model.FeedOrder, department string, limit int) ([]*model.FullPost, error)
}

type Comment interface {
	Create(ctx context.Context, authorID uuid.UUID, postID int64, input dto.CreateCommentRequest) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error)
	FindPostCommentTree(ctx context.Context, postID int64) ([]feed.CommentNode, error)
}

type Interaction interface {
	ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (dto.ToggleLikeResponse, error)
	ToggleFollow(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (dto.ToggleFollowResponse, error)
	ViewerState(ctx context.Context, userID uuid.UUID, postIDs []int64, authorIDs []uuid.UUID) (dto.ViewerStateResponse, error)
}

type Feed interface {
	Build(ctx context.Context, viewerID uuid.UUID, order model.FeedOrder, department string, limit int) ([]feed.PostView, error)
}

type Notification interface {
	Notify(ctx context.Context, notification model.Notification)
	FindUserNotifications(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, userID uuid.UUID, ids []int64) error
}

type UserCache interface {
	CreateOrGet(ctx context.Context, id uuid.UUID, accessToken string) (*model.CachedUser, error)
	Create(ctx context.Context, cachedUser model.CachedUser) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
}

type Catalog interface {
	Faculties(ctx context.Context) ([]*model.Faculty, error)
	Departments(ctx context.Context, facultyID int64) ([]*model.Department, error)
	Papers(ctx context.Context, departmentID int64, level *int, semester *int) ([]*model.Paper, error)
}

type Auth interface {
	Login(ctx context.Context, identifier string, secret string) (string, error)
	Logout(ctx context.Context, accessToken string) error
}

// Broker is the message queue the services publish to and consume from.
type Broker interface {
	Publish(ctx context.Context, queue string, body interface{}) error
	Consume(queue string) (<-chan amqp.Delivery, error)
}

type Service struct {
	Post
	Comment
	Interaction
	Feed
	Notification
	UserCache
	Catalog
	Auth

	userCache *userCacheService
}

func New(logger *zap.Logger, repo *repository.Repository, broker Broker, feedConfig config.FeedConfig) *Service {
	notifications := newNotificationService(logger, repo, broker)
	posts := newPostService(logger, repo, broker, feedConfig)
	userCache := newUserCacheService(logger, repo, broker)
	interaction := newInteractionService(logger, repo, notifications)

	return &Service{
		Post:         posts,
		Comment:      newCommentService(logger, repo, notifications, feedConfig),
		Interaction:  interaction,
		Feed:         newFeedService(logger, posts, interaction),
		Notification: notifications,
		UserCache:    userCache,
		Catalog:      newCatalogService(logger, repo),
		Auth:         newAuthService(logger),
		userCache:    userCache,
	}
}

// StartConsumeAll blocks consuming every queue this service listens on.
func (s *Service) StartConsumeAll(ctx context.Context) {
	s.userCache.consumeUserUpdates(ctx)
}
