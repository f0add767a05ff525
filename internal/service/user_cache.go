package service

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

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

var errFailedToFetchUser = errors.New("failed to fetch user")

type userCacheService struct {
	logger         *zap.Logger
	repo           *repository.Repository
	broker         Broker
	httpClient     *http.Client
	userServiceAPI string
}

func newUserCacheService(logger *zap.Logger, repo *repository.Repository, broker Broker) *userCacheService {
	return &userCacheService{
		logger:         logger,
		repo:           repo,
		broker:         broker,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		userServiceAPI: viper.GetString("user-service.api"),
	}
}

func (s *userCacheService) CreateOrGet(ctx context.Context, id uuid.UUID, accessToken string) (*model.CachedUser, error) {
	cachedUser, err := s.FindByID(ctx, id)
	if err == nil {
		return cachedUser, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	fetchedUser, err := s.fetchUser(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	if err := s.Create(ctx, *fetchedUser); err != nil {
		return nil, err
	}

	return fetchedUser, nil
}

func (s *userCacheService) fetchUser(ctx context.Context, accessToken string) (*model.CachedUser, error) {
	endpoint := "/users/@me"
	url := s.userServiceAPI + endpoint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create request to user-service: %s", err.Error())
		return nil, ErrInternal
	}

	req.Header.Add("Authorization", "Bearer "+accessToken)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		s.logger.Sugar().Errorf("failed to send request to user-service: %s", err.Error())
		return nil, ErrInternal
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.logger.Sugar().Errorf("failed to read response body from user-service: %s", err.Error())
		return nil, ErrInternal
	}

	if resp.StatusCode != http.StatusOK {
		var bodyJSON map[string]interface{}
		if err := json.Unmarshal(body, &bodyJSON); err != nil {
			s.logger.Sugar().Errorf("failed to decode error response from user-service: %s", err.Error())
		} else {
			s.logger.Sugar().Errorf("ERROR from user-service endpoint(%s), details: %s", endpoint, bodyJSON["details"])
		}
		return nil, errFailedToFetchUser
	}

	var user model.CachedUser
	if err := json.Unmarshal(body, &user); err != nil {
		s.logger.Sugar().Errorf("failed to decode user response body from user-service: %s", err.Error())
		return nil, ErrInternal
	}

	return &user, nil
}

func (s *userCacheService) Create(ctx context.Context, cachedUser model.CachedUser) error {
	if err := s.repo.Postgres.UserCache.Create(ctx, cachedUser); err != nil {
		s.logger.Sugar().Errorf("failed to create cached user(%s): %s", cachedUser.ID.String(), err.Error())
		return ErrInternal
	}

	return nil
}

func (s *userCacheService) Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	if err := s.repo.Postgres.UserCache.Update(ctx, id, updates); err != nil {
		if errors.Is(err, postgres.ErrFieldsNotAllowedToUpdate) {
			return errInvalidUserUpdate
		}
		s.logger.Sugar().Errorf("failed to update cached user(%s): %s", id.String(), err.Error())
		return ErrInternal
	}

	if err := s.repo.Redis.Default.Del(ctx, redisrepo.UserCacheKey(id.String())).Err(); err != nil {
		s.logger.Sugar().Errorf("failed to delete cached user(%s) from redis: %s", id.String(), err.Error())
	}

	// Author profiles are denormalized into cached feeds and comment lists.
	invalidateFeeds(ctx, s.logger, s.repo)
	if err := redisrepo.DelPattern(s.repo.Redis.Default, ctx, redisrepo.POST_COMMENTS_PATTERN); err != nil {
		s.logger.Sugar().Errorf("failed to invalidate cached comments after user(%s) update: %s", id.String(), err.Error())
	}

	return nil
}

func (s *userCacheService) FindByID(ctx context.Context, id uuid.UUID) (*model.CachedUser, error) {
	cachedUser, err := redisrepo.Get[model.CachedUser](s.repo.Redis.Default, ctx, redisrepo.UserCacheKey(id.String()))
	if err == nil && cachedUser != nil {
		cacheLookups.WithLabelValues("user", "hit").Inc()
		return cachedUser, nil
	}
	if err != nil && err != redis.Nil {
		cacheLookups.WithLabelValues("user", "error").Inc()
		s.logger.Sugar().Errorf("failed to get cached user(%s) from redis: %s", id.String(), err.Error())
	} else {
		cacheLookups.WithLabelValues("user", "miss").Inc()
	}

	user, err := s.repo.Postgres.UserCache.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}

		s.logger.Sugar().Errorf("failed to get cached user(%s) from postgres: %s", id.String(), err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, redisrepo.UserCacheKey(id.String()), user, time.Hour); err != nil {
		s.logger.Sugar().Errorf("failed to set user(%s) in redis: %s", id.String(), err.Error())
	}

	return user, nil
}

func (s *userCacheService) consumeUserUpdates(ctx context.Context) {
	queue := rabbitmq.USER_INFO_UPDATED_QUEUE
	msgs, err := s.broker.Consume(queue)
	if err != nil {
		s.logger.Sugar().Errorf("failed to start consume updates from queue(%s): %s", queue, err.Error())
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}
			if err := s.handleUserUpdate(ctx, msg.Body); err != nil {
				msg.Nack(false, errors.Is(err, ErrInternal))
				continue
			}
			msg.Ack(false)
		}
	}
}

var errInvalidUserUpdate = errors.New("invalid user update message")

// handleUserUpdate applies one user.info.updated message. ErrInternal means
// the message may succeed on redelivery.
func (s *userCacheService) handleUserUpdate(ctx context.Context, body []byte) error {
	var data map[string]interface{}
	if err := json.Unmarshal(body, &data); err != nil {
		s.logger.Sugar().Errorf("failed to unmarshal json in queue(%s): %s", rabbitmq.USER_INFO_UPDATED_QUEUE, err.Error())
		return errInvalidUserUpdate
	}

	userIDString, exists := data["user_id"].(string)
	if !exists {
		s.logger.Sugar().Errorf("'user_id' field is not provided")
		return errInvalidUserUpdate
	}
	userID, err := uuid.Parse(userIDString)
	if err != nil {
		s.logger.Sugar().Errorf("provided an invalid user_id")
		return errInvalidUserUpdate
	}

	delete(data, "user_id")

	return s.Update(ctx, userID, data)
}
