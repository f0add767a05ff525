package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationKind string

const (
	NotificationLike      NotificationKind = "like"
	NotificationComment   NotificationKind = "comment"
	NotificationReply     NotificationKind = "reply"
	NotificationFollow    NotificationKind = "follow"
	NotificationMilestone NotificationKind = "milestone"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	ActorID   *uuid.UUID       `json:"actor_id"`
	Kind      NotificationKind `json:"kind"`
	PostID    *int64           `json:"post_id"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
