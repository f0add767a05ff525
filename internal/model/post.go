package model

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID            int64     `json:"id"`
	AuthorID      uuid.UUID `json:"author_id"`
	Content       *string   `json:"content"`
	ImageURL      *string   `json:"image_url"`
	Department    string    `json:"department"`
	LikesCount    int64     `json:"likes_count"`
	CommentsCount int64     `json:"comments_count"`
	SharesCount   int64     `json:"shares_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type FullPost struct {
	Post   Post       `json:"post"`
	Author UserAuthor `json:"author"`
}

// FeedOrder selects how a feed batch is ordered.
type FeedOrder string

const (
	// FeedRecent orders by creation time, newest first.
	FeedRecent FeedOrder = "recent"
	// FeedPopular orders by likes among posts with at least PopularMinLikes.
	FeedPopular FeedOrder = "popular"
)

const PopularMinLikes = 5

func (o FeedOrder) Valid() bool {
	return o == FeedRecent || o == FeedPopular
}
