package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/UniPortal/feed-service/internal/config"
	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/UniPortal/feed-service/internal/rabbitmq"
	"github.com/UniPortal/feed-service/internal/repository"
	"github.com/UniPortal/feed-service/internal/repository/postgres"
	"github.com/UniPortal/feed-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const postImagesPath = "post-images"

var allowedImageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

type postService struct {
	logger     *zap.Logger
	repo       *repository.Repository
	broker     Broker
	feedConfig config.FeedConfig
	httpClient *http.Client
	cdnOrigin  string
}

func newPostService(logger *zap.Logger, repo *repository.Repository, broker Broker, feedConfig config.FeedConfig) *postService {
	return &postService{
		logger:     logger,
		repo:       repo,
		broker:     broker,
		feedConfig: feedConfig,
		httpClient: &http.Client{},
		cdnOrigin:  viper.GetString("cdn.origin"),
	}
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, input dto.CreatePostRequest, image *multipart.FileHeader) (*model.Post, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" && image == nil {
		return nil, ErrPostIsEmpty
	}

	post := model.Post{
		AuthorID:   authorID,
		Department: strings.TrimSpace(input.Department),
	}
	if content != "" {
		post.Content = &content
	}

	if image != nil {
		url, err := s.uploadPostImage(ctx, image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = &url
	}

	createdPost, err := s.repo.Postgres.Post.Create(ctx, post)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create user(%s) post: %s", authorID.String(), err.Error())
		return nil, ErrInternal
	}

	s.invalidateFeeds(ctx)

	msg := dto.MQPostCreatedMsg{
		PostID:     createdPost.ID,
		UserID:     createdPost.AuthorID,
		Department: createdPost.Department,
		CreatedAt:  createdPost.CreatedAt,
	}
	if err := s.broker.Publish(ctx, rabbitmq.POST_CREATED_QUEUE, msg); err != nil {
		s.logger.Sugar().Errorf("failed to publish post(%d) created message: %s", createdPost.ID, err.Error())
	}

	return createdPost, nil
}

func (s *postService) uploadPostImage(ctx context.Context, fileHeader *multipart.FileHeader) (string, error) {
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return "", ErrFileMustBeImage
	}
	if _, ok := allowedImageExtensions[strings.ToLower(filepath.Ext(fileHeader.Filename))]; !ok {
		return "", ErrFileMustHaveAValidExtension
	}

	file, err := fileHeader.Open()
	if err != nil {
		s.logger.Sugar().Errorf("failed to open file: %s", err.Error())
		return "", ErrInternal
	}
	defer file.Close()

	return s.uploadImageToCDN(ctx, postImagesPath, file, fileHeader)
}

func (s *postService) uploadImageToCDN(ctx context.Context, path string, file multipart.File, fileHeader *multipart.FileHeader) (string, error) {
	endpoint := "/upload"
	url := s.cdnOrigin + endpoint

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	fileWriter, err := writer.CreateFormFile("file", fileHeader.Filename)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create file part for CDN request: %s", err.Error())
		return "", ErrInternal
	}

	if _, err := io.Copy(fileWriter, file); err != nil {
		s.logger.Sugar().Errorf("failed to copy file content for CDN request: %s", err.Error())
		return "", ErrInternal
	}

	if err := writer.WriteField("path", path); err != nil {
		s.logger.Sugar().Errorf("failed to write path field for CDN request: %s", err.Error())
		return "", ErrInternal
	}

	if err := writer.Close(); err != nil {
		s.logger.Sugar().Errorf("failed to close writer for CDN request: %s", err.Error())
		return "", ErrInternal
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &requestBody)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create CDN request: %s", err.Error())
		return "", ErrInternal
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Add("type", "IMAGE")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Sugar().Errorf("failed to do CDN request: %s", err.Error())
		return "", ErrFailedToUploadPostImageToCDN
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Sugar().Errorf("failed to read response body from CDN: %s", err.Error())
		return "", ErrInternal
	}

	if resp.StatusCode != http.StatusOK {
		var bodyJSON map[string]interface{}
		if err := json.Unmarshal(body, &bodyJSON); err != nil {
			s.logger.Sugar().Errorf("failed to decode error response from CDN: %s", err.Error())
		} else {
			s.logger.Sugar().Errorf("ERROR from CDN endpoint(%s), code(%d), details: %s", endpoint, resp.StatusCode, bodyJSON["details"])
		}
		return "", ErrFailedToUploadPostImageToCDN
	}

	return strings.TrimSpace(string(body)), nil
}

func (s *postService) FindByID(ctx context.Context, id int64) (*model.FullPost, error) {
	post, err := s.repo.Postgres.Post.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		s.logger.Sugar().Errorf("failed to find post(%d) from postgres: %s", id, err.Error())
		return nil, ErrInternal
	}

	return post, nil
}

// FindFeed returns a batch of posts ordered per order. Batches are cached in
// redis and dropped whenever posts, likes or comments change.
func (s *postService) FindFeed(ctx context.Context, order model.FeedOrder, department string, limit int) ([]*model.FullPost, error) {
	if !order.Valid() {
		return nil, ErrInvalidFeedFilter
	}
	if limit <= 0 {
		limit = s.feedConfig.DefaultLimit
	}
	if limit > postgres.MAX_LIMIT {
		limit = postgres.MAX_LIMIT
	}
	department = strings.TrimSpace(department)
	key := redisrepo.FeedKey(string(order), department, limit)

	cachedPosts, err := redisrepo.GetMany[model.FullPost](s.repo.Redis.Default, ctx, key)
	if err == nil {
		cacheLookups.WithLabelValues("feed", "hit").Inc()
		return cachedPosts, nil
	}
	if err != redis.Nil {
		cacheLookups.WithLabelValues("feed", "error").Inc()
		s.logger.Sugar().Errorf("failed to get feed(%s) from redis: %s", key, err.Error())
	} else {
		cacheLookups.WithLabelValues("feed", "miss").Inc()
	}

	var dept *string
	if department != "" {
		dept = &department
	}

	posts, err := s.repo.Postgres.Post.FindFeed(ctx, order, dept, limit)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find feed(%s) from postgres: %s", key, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, key, posts, s.feedConfig.CacheTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set feed(%s) in redis: %s", key, err.Error())
	}

	return posts, nil
}

func (s *postService) invalidateFeeds(ctx context.Context) {
	invalidateFeeds(ctx, s.logger, s.repo)
}

func invalidateFeeds(ctx context.Context, logger *zap.Logger, repo *repository.Repository) {
	if err := redisrepo.DelPattern(repo.Redis.Default, ctx, redisrepo.FEED_PATTERN); err != nil {
		logger.Sugar().Errorf("failed to invalidate feeds in redis: %s", err.Error())
	}
}
