package model

import "github.com/google/uuid"

type CachedUser struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	AvatarURL   string    `json:"avatar_url"`
	Department  string    `json:"department"`
}

// UserAuthor is the author profile denormalized onto posts and comments.
// Every field except Username may be missing upstream.
type UserAuthor struct {
	Username    string  `json:"username"`
	DisplayName *string `json:"display_name"`
	AvatarURL   *string `json:"avatar_url"`
	Department  *string `json:"department"`
}
