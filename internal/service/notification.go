package service

import (
	"context"

	"github.com/UniPortal/feed-service/internal/dto"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/UniPortal/feed-service/internal/rabbitmq"
	"github.com/UniPortal/feed-service/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type notificationService struct {
	logger *zap.Logger
	repo   *repository.Repository
	broker Broker
}

func newNotificationService(logger *zap.Logger, repo *repository.Repository, broker Broker) Notification {
	return &notificationService{
		logger: logger,
		repo:   repo,
		broker: broker,
	}
}

// Notify stores a notification and announces it on the queue. Failures are
// logged only: a notification never fails the write that caused it.
func (s *notificationService) Notify(ctx context.Context, notification model.Notification) {
	created, err := s.repo.Postgres.Notification.Create(ctx, notification)
	if err != nil {
		s.logger.Sugar().Errorf("failed to create %s notification for user(%s): %s", notification.Kind, notification.UserID.String(), err.Error())
		return
	}

	msg := dto.MQNotificationCreatedMsg{
		NotificationID: created.ID,
		UserID:         created.UserID,
		Kind:           string(created.Kind),
		Message:        created.Message,
	}
	if err := s.broker.Publish(ctx, rabbitmq.NOTIFICATION_CREATED_QUEUE, msg); err != nil {
		s.logger.Sugar().Errorf("failed to publish notification(%d): %s", created.ID, err.Error())
	}
}

func (s *notificationService) FindUserNotifications(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.Notification, error) {
	notifications, err := s.repo.Postgres.Notification.FindUserNotifications(ctx, userID, limit, offset)
	if err != nil {
		s.logger.Sugar().Errorf("failed to find user(%s) notifications: %s", userID.String(), err.Error())
		return nil, ErrInternal
	}

	return notifications, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID uuid.UUID, ids []int64) error {
	if err := s.repo.Postgres.Notification.MarkRead(ctx, userID, ids); err != nil {
		s.logger.Sugar().Errorf("failed to mark user(%s) notifications read: %s", userID.String(), err.Error())
		return ErrInternal
	}

	return nil
}
