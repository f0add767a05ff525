package postgres

import (
	"context"
	"errors"

	"github.com/UniPortal/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const MAX_LIMIT = 50

var ErrFieldsNotAllowedToUpdate = errors.New("fields are not allowed to update")

func maxLimit(limit *int) {
	if *limit <= 0 || *limit > MAX_LIMIT {
		*limit = MAX_LIMIT
	}
}

type Post interface {
	Create(ctx context.Context, post model.Post) (*model.Post, error)
	FindByID(ctx context.Context, id int64) (*model.FullPost, error)
	FindFeed(ctx context.Context, order model.FeedOrder, department *string, limit int) ([]*model.FullPost, error)
	IncrCommentsCount(ctx context.Context, postID int64) error
}

type Comment interface {
	Create(ctx context.Context, comment model.Comment) (*model.Comment, error)
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error)
}

type Interaction interface {
	ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (liked bool, likesCount int64, err error)
	ToggleFollow(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error)
	FindLikedPostIDs(ctx context.Context, userID uuid.UUID, postIDs []int64) ([]int64, error)
	FindFollowedAuthorIDs(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) ([]uuid.UUID, error)
}

type Notification interface {
	Create(ctx context.Context, notification model.Notification) (*model.Notification, error)
	FindUserNotifications(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.Notification, error)
	MarkRead(ctx context.Context, userID uuid.UUID, ids []int64) error
}

type UserCache interface {
	Create(ctx context.Context, cachedUser model.CachedUser) error
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error)
}

type Catalog interface {
	FindFaculties(ctx context.Context) ([]*model.Faculty, error)
	FindDepartments(ctx context.Context, facultyID int64) ([]*model.Department, error)
	FindPapers(ctx context.Context, departmentID int64, level *int, semester *int) ([]*model.Paper, error)
}

type PostgresRepository struct {
	Post
	Comment
	Interaction
	Notification
	UserCache
	Catalog
}

func New(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{
		Post:         newPostRepo(db),
		Comment:      newCommentRepo(db),
		Interaction:  newInteractionRepo(db),
		Notification: newNotificationRepo(db),
		UserCache:    newUserCacheRepo(db),
		Catalog:      newCatalogRepo(db),
	}
}
