package feed

import (
	"strings"

	"github.com/UniPortal/feed-service/internal/model"
	"github.com/google/uuid"
)

const (
	UnknownName       = "Unknown"
	UnknownInitials   = "U"
	PlaceholderAvatar = "/static/img/avatar-placeholder.png"
	GeneralDepartment = "General"
)

// Author is the render-ready author profile. Missing upstream fields are
// replaced by fixed fallbacks so rendering never fails on them.
type Author struct {
	ID         uuid.UUID `json:"id"`
	Username   string    `json:"username"`
	Name       string    `json:"name"`
	Initials   string    `json:"initials"`
	AvatarURL  string    `json:"avatar_url"`
	HasAvatar  bool      `json:"has_avatar"`
	Color      string    `json:"color"`
	Department string    `json:"department"`
}

func NewAuthor(id uuid.UUID, a model.UserAuthor) Author {
	name := strings.TrimSpace(deref(a.DisplayName))
	if name == "" {
		name = strings.TrimSpace(a.Username)
	}
	if name == "" {
		name = UnknownName
	}

	author := Author{
		ID:         id,
		Username:   a.Username,
		Name:       name,
		Initials:   Initials(name),
		AvatarURL:  PlaceholderAvatar,
		Color:      AvatarColor(name),
		Department: GeneralDepartment,
	}
	if avatar := strings.TrimSpace(deref(a.AvatarURL)); avatar != "" {
		author.AvatarURL = avatar
		author.HasAvatar = true
	}
	if dept := strings.TrimSpace(deref(a.Department)); dept != "" {
		author.Department = dept
	}

	return author
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
