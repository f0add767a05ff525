package dto

import (
	"time"

	"github.com/google/uuid"
)

type MQPostCreatedMsg struct {
	PostID     int64     `json:"post_id"`
	UserID     uuid.UUID `json:"user_id"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}

type MQNotificationCreatedMsg struct {
	NotificationID int64     `json:"notification_id"`
	UserID         uuid.UUID `json:"user_id"`
	Kind           string    `json:"kind"`
	Message        string    `json:"message"`
}
