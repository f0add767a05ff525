package service

import (
	"context"
	"fmt"
	"time"

	"github.com/UniPortal/feed-service/internal/model"
	"github.com/UniPortal/feed-service/internal/repository"
	"github.com/UniPortal/feed-service/internal/repository/redisrepo"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// The catalog changes rarely, so it is cached longer than feeds.
const catalogTTL = 24 * time.Hour

type catalogService struct {
	logger *zap.Logger
	repo   *repository.Repository
}

func newCatalogService(logger *zap.Logger, repo *repository.Repository) Catalog {
	return &catalogService{
		logger: logger,
		repo:   repo,
	}
}

func (s *catalogService) Faculties(ctx context.Context) ([]*model.Faculty, error) {
	return cachedList(ctx, s, "faculties", s.repo.Postgres.Catalog.FindFaculties)
}

func (s *catalogService) Departments(ctx context.Context, facultyID int64) ([]*model.Department, error) {
	path := fmt.Sprintf("faculties:%d:departments", facultyID)
	return cachedList(ctx, s, path, func(ctx context.Context) ([]*model.Department, error) {
		return s.repo.Postgres.Catalog.FindDepartments(ctx, facultyID)
	})
}

func (s *catalogService) Papers(ctx context.Context, departmentID int64, level *int, semester *int) ([]*model.Paper, error) {
	path := fmt.Sprintf("departments:%d:papers:%s:%s", departmentID, optInt(level), optInt(semester))
	return cachedList(ctx, s, path, func(ctx context.Context) ([]*model.Paper, error) {
		return s.repo.Postgres.Catalog.FindPapers(ctx, departmentID, level, semester)
	})
}

func cachedList[T any](ctx context.Context, s *catalogService, path string, load func(context.Context) ([]*T, error)) ([]*T, error) {
	key := redisrepo.CatalogKey(path)

	cached, err := redisrepo.GetMany[T](s.repo.Redis.Default, ctx, key)
	if err == nil {
		cacheLookups.WithLabelValues("catalog", "hit").Inc()
		return cached, nil
	}
	if err != redis.Nil {
		cacheLookups.WithLabelValues("catalog", "error").Inc()
		s.logger.Sugar().Errorf("failed to get catalog(%s) from redis: %s", path, err.Error())
	} else {
		cacheLookups.WithLabelValues("catalog", "miss").Inc()
	}

	items, err := load(ctx)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find catalog(%s) from postgres: %s", path, err.Error())
		return nil, ErrInternal
	}

	if err := s.repo.Redis.Default.SetJSON(ctx, key, items, catalogTTL); err != nil {
		s.logger.Sugar().Errorf("failed to set catalog(%s) in redis: %s", path, err.Error())
	}

	return items, nil
}

func optInt(v *int) string {
	if v == nil {
		return "any"
	}
	return fmt.Sprint(*v)
}
