package dto

import "github.com/UniPortal/feed-service/internal/model"

type LoginRequest struct {
	Identifier string `json:"identifier" binding:"required"`
	Secret     string `json:"secret" binding:"required"`
}

type LoginResponse struct {
	Success     bool   `json:"success"`
	AccessToken string `json:"access_token,omitempty"`
	Error       string `json:"error,omitempty"`
}

type SessionResponse struct {
	User model.CachedUser `json:"user"`
}
