package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"sync"
	"time"

	"github.com/UniPortal/feed-service/internal/config"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/UniPortal/feed-service/internal/repository"
	"github.com/UniPortal/feed-service/internal/repository/postgres"
	"github.com/UniPortal/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

var testFeedConfig = config.FeedConfig{DefaultLimit: 20, CacheTTL: time.Hour}

// =============================================================================
// Redis
// =============================================================================

type fakeRedis struct {
	mu     sync.Mutex
	data   map[string]string
	getErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: make(map[string]string)}
}

func (r *fakeRedis) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = fmt.Sprint(value)
	return nil
}

func (r *fakeRedis) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = string(b)
	return nil
}

func (r *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.getErr != nil {
		return redis.NewStringResult("", r.getErr)
	}
	v, ok := r.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (r *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := r.data[k]; ok {
			delete(r.data, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (r *fakeRedis) Incr(ctx context.Context, key string) *redis.IntCmd {
	return redis.NewIntResult(1, nil)
}

func (r *fakeRedis) Keys(ctx context.Context, pattern string) *redis.StringSliceCmd {
	r.mu.Lock()
	defer r.mu.Unlock()
	var keys []string
	for k := range r.data {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}
	return redis.NewStringSliceResult(keys, nil)
}

func (r *fakeRedis) has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.data[key]
	return ok
}

// =============================================================================
// Postgres
// =============================================================================

type fakePostRepo struct {
	posts       map[int64]*model.FullPost
	feed        []*model.FullPost
	feedCalls   int
	lastOrder   model.FeedOrder
	lastDept    *string
	lastLimit   int
	created     []model.Post
	commentIncr map[int64]int
	err         error
}

func (r *fakePostRepo) Create(ctx context.Context, post model.Post) (*model.Post, error) {
	if r.err != nil {
		return nil, r.err
	}
	post.ID = int64(len(r.created) + 1)
	post.CreatedAt = time.Now()
	r.created = append(r.created, post)
	return &post, nil
}

func (r *fakePostRepo) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.posts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return p, nil
}

func (r *fakePostRepo) FindFeed(ctx context.Context, order model.FeedOrder, department *string, limit int) ([]*model.FullPost, error) {
	r.feedCalls++
	r.lastOrder = order
	r.lastDept = department
	r.lastLimit = limit
	if r.err != nil {
		return nil, r.err
	}
	return r.feed, nil
}

func (r *fakePostRepo) IncrCommentsCount(ctx context.Context, postID int64) error {
	if r.commentIncr == nil {
		r.commentIncr = make(map[int64]int)
	}
	r.commentIncr[postID]++
	return nil
}

type fakeCommentRepo struct {
	comments map[int64]*model.Comment
	full     []*model.FullComment
	created  []model.Comment
}

func (r *fakeCommentRepo) Create(ctx context.Context, comment model.Comment) (*model.Comment, error) {
	comment.ID = int64(1000 + len(r.created))
	comment.CreatedAt = time.Now()
	r.created = append(r.created, comment)
	return &comment, nil
}

func (r *fakeCommentRepo) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return c, nil
}

func (r *fakeCommentRepo) FindPostComments(ctx context.Context, postID int64) ([]*model.FullComment, error) {
	return r.full, nil
}

type fakeInteractionRepo struct {
	liked      bool
	likesCount int64
	following  bool
	likedIDs   []int64
	followed   []uuid.UUID
	err        error
}

func (r *fakeInteractionRepo) ToggleLike(ctx context.Context, postID int64, userID uuid.UUID) (bool, int64, error) {
	return r.liked, r.likesCount, r.err
}

func (r *fakeInteractionRepo) ToggleFollow(ctx context.Context, followerID uuid.UUID, followeeID uuid.UUID) (bool, error) {
	return r.following, r.err
}

func (r *fakeInteractionRepo) FindLikedPostIDs(ctx context.Context, userID uuid.UUID, postIDs []int64) ([]int64, error) {
	return r.likedIDs, r.err
}

func (r *fakeInteractionRepo) FindFollowedAuthorIDs(ctx context.Context, userID uuid.UUID, authorIDs []uuid.UUID) ([]uuid.UUID, error) {
	return r.followed, r.err
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []model.Notification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	notification.ID = int64(len(r.created) + 1)
	r.created = append(r.created, notification)
	return &notification, nil
}

func (r *fakeNotificationRepo) FindUserNotifications(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.Notification, error) {
	var out []*model.Notification
	for i := range r.created {
		if r.created[i].UserID == userID {
			out = append(out, &r.created[i])
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, userID uuid.UUID, ids []int64) error {
	return nil
}

func (r *fakeNotificationRepo) kinds() []model.NotificationKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.NotificationKind, 0, len(r.created))
	for _, n := range r.created {
		out = append(out, n.Kind)
	}
	return out
}

type fakeUserCacheRepo struct {
	users   map[uuid.UUID]*model.CachedUser
	updates map[uuid.UUID]map[string]interface{}
}

func (r *fakeUserCacheRepo) Create(ctx context.Context, cachedUser model.CachedUser) error {
	r.users[cachedUser.ID] = &cachedUser
	return nil
}

func (r *fakeUserCacheRepo) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	for field := range updates {
		if field == "password" {
			return postgres.ErrFieldsNotAllowedToUpdate
		}
	}
	r.updates[id] = updates
	return nil
}

func (r *fakeUserCacheRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return u, nil
}

type fakeCatalogRepo struct {
	faculties    []*model.Faculty
	departments  []*model.Department
	papers       []*model.Paper
	calls        int
	lastID       int64
	lastLevel    *int
	lastSemester *int
	err          error
}

func (r *fakeCatalogRepo) FindFaculties(ctx context.Context) ([]*model.Faculty, error) {
	r.calls++
	return r.faculties, r.err
}

func (r *fakeCatalogRepo) FindDepartments(ctx context.Context, facultyID int64) ([]*model.Department, error) {
	r.calls++
	r.lastID = facultyID
	return r.departments, r.err
}

func (r *fakeCatalogRepo) FindPapers(ctx context.Context, departmentID int64, level *int, semester *int) ([]*model.Paper, error) {
	r.calls++
	r.lastID = departmentID
	r.lastLevel = level
	r.lastSemester = semester
	return r.papers, r.err
}

// =============================================================================
// Broker
// =============================================================================

type publishedMsg struct {
	queue string
	body  interface{}
}

type fakeBroker struct {
	mu        sync.Mutex
	published []publishedMsg
}

func (b *fakeBroker) Publish(ctx context.Context, queue string, body interface{}) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, publishedMsg{queue: queue, body: body})
	return nil
}

func (b *fakeBroker) Consume(queue string) (<-chan amqp.Delivery, error) {
	ch := make(chan amqp.Delivery)
	close(ch)
	return ch, nil
}

func (b *fakeBroker) queues() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.published))
	for _, m := range b.published {
		out = append(out, m.queue)
	}
	return out
}

// =============================================================================
// Wiring
// =============================================================================

type testDeps struct {
	repo          *repository.Repository
	redis         *fakeRedis
	posts         *fakePostRepo
	comments      *fakeCommentRepo
	interactions  *fakeInteractionRepo
	notifications *fakeNotificationRepo
	users         *fakeUserCacheRepo
	catalog       *fakeCatalogRepo
	broker        *fakeBroker
}

func newTestDeps() *testDeps {
	d := &testDeps{
		redis:         newFakeRedis(),
		posts:         &fakePostRepo{posts: make(map[int64]*model.FullPost)},
		comments:      &fakeCommentRepo{comments: make(map[int64]*model.Comment)},
		interactions:  &fakeInteractionRepo{},
		notifications: &fakeNotificationRepo{},
		users: &fakeUserCacheRepo{
			users:   make(map[uuid.UUID]*model.CachedUser),
			updates: make(map[uuid.UUID]map[string]interface{}),
		},
		catalog: &fakeCatalogRepo{},
		broker:  &fakeBroker{},
	}
	d.repo = &repository.Repository{
		Postgres: &postgres.PostgresRepository{
			Post:         d.posts,
			Comment:      d.comments,
			Interaction:  d.interactions,
			Notification: d.notifications,
			UserCache:    d.users,
			Catalog:      d.catalog,
		},
		Redis: &redisrepo.RedisRepository{Default: d.redis},
	}
	return d
}

func fullPost(id int64, author uuid.UUID, likes int64) *model.FullPost {
	content := fmt.Sprintf("post %d", id)
	return &model.FullPost{
		Post: model.Post{
			ID:         id,
			AuthorID:   author,
			Content:    &content,
			Department: "Physics",
			LikesCount: likes,
		},
		Author: model.UserAuthor{Username: "author"},
	}
}
