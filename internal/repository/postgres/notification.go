package postgres

import (
	"context"
	"time"

	"github.com/UniPortal/feed-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type notificationRepo struct {
	db *pgxpool.Pool
}

func newNotificationRepo(db *pgxpool.Pool) Notification {
	return &notificationRepo{
		db: db,
	}
}

func (r *notificationRepo) Create(ctx context.Context, notification model.Notification) (*model.Notification, error) {
	notification.CreatedAt = time.Now()
	notification.Read = false
	if err := r.db.QueryRow(
		ctx,
		"INSERT INTO notifications(user_id, actor_id, kind, post_id, message, created_at) VALUES($1, $2, $3, $4, $5, $6) RETURNING id",
		notification.UserID,
		notification.ActorID,
		notification.Kind,
		notification.PostID,
		notification.Message,
		notification.CreatedAt,
	).Scan(&notification.ID); err != nil {
		return nil, err
	}

	return &notification, nil
}

func (r *notificationRepo) FindUserNotifications(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*model.Notification, error) {
	maxLimit(&limit)

	rows, err := r.db.Query(
		ctx,
		`SELECT n.id, n.user_id, n.actor_id, n.kind, n.post_id, n.message, n.read, n.created_at
		FROM notifications n
		WHERE n.user_id = $1
		ORDER BY n.created_at DESC
		LIMIT $2
		OFFSET $3`,
		userID,
		limit,
		offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []*model.Notification{}
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(
			&n.ID,
			&n.UserID,
			&n.ActorID,
			&n.Kind,
			&n.PostID,
			&n.Message,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, err
		}
		notifications = append(notifications, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepo) MarkRead(ctx context.Context, userID uuid.UUID, ids []int64) error {
	if len(ids) == 0 {
		_, err := r.db.Exec(ctx, "UPDATE notifications SET read = TRUE WHERE user_id = $1", userID)
		return err
	}

	_, err := r.db.Exec(ctx, "UPDATE notifications SET read = TRUE WHERE user_id = $1 AND id = ANY($2)", userID, ids)
	return err
}
