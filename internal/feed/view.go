package feed

import (
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/google/uuid"
)

// FollowButton is one of two mutually exclusive label/icon pairs.
type FollowButton struct {
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

var (
	FollowIdle   = FollowButton{Label: "Follow", Icon: "+"}
	FollowActive = FollowButton{Label: "Following", Icon: "✓"}
)

func followButton(following bool) FollowButton {
	if following {
		return FollowActive
	}
	return FollowIdle
}

// PostView is the per-render view model of a post. IsLiked and IsFollowing
// stay nil until AugmentViewerState runs.
type PostView struct {
	Post             model.Post    `json:"post"`
	Author           Author        `json:"author"`
	Description      Description   `json:"description"`
	Rating           StarRating    `json:"rating"`
	IsLiked          *bool         `json:"is_liked"`
	IsFollowing      *bool         `json:"is_following"`
	FollowActionable bool          `json:"follow_actionable"`
	FollowButton     FollowButton  `json:"follow_button"`
	Comments         []CommentNode `json:"comments"`
	CommentsLoaded   bool          `json:"comments_loaded"`
}

func NewPostView(p model.FullPost) PostView {
	content := ""
	if p.Post.Content != nil {
		content = *p.Post.Content
	}
	return PostView{
		Post:         p.Post,
		Author:       NewAuthor(p.Post.AuthorID, p.Author),
		Description:  Truncate(content),
		Rating:       ComputeStarRating(p.Post.LikesCount),
		FollowButton: FollowIdle,
	}
}

func NewPostViews(posts []model.FullPost) []PostView {
	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		views = append(views, NewPostView(p))
	}
	return views
}

// ViewerContext is what the viewer has liked and followed, scoped to the
// currently loaded batch.
type ViewerContext struct {
	ViewerID  uuid.UUID
	Liked     map[int64]struct{}
	Following map[uuid.UUID]struct{}
}

func NewViewerContext(viewerID uuid.UUID, likedPostIDs []int64, followedAuthorIDs []uuid.UUID) ViewerContext {
	vc := ViewerContext{
		ViewerID:  viewerID,
		Liked:     make(map[int64]struct{}, len(likedPostIDs)),
		Following: make(map[uuid.UUID]struct{}, len(followedAuthorIDs)),
	}
	for _, id := range likedPostIDs {
		vc.Liked[id] = struct{}{}
	}
	for _, id := range followedAuthorIDs {
		vc.Following[id] = struct{}{}
	}
	return vc
}

// AugmentViewerState returns copies of posts with viewer-relative flags set.
// Following state is left unset on the viewer's own posts.
func AugmentViewerState(posts []PostView, viewer ViewerContext) []PostView {
	out := make([]PostView, len(posts))
	for i, p := range posts {
		_, liked := viewer.Liked[p.Post.ID]
		p.IsLiked = boolPtr(liked)

		if p.Post.AuthorID == viewer.ViewerID {
			p.IsFollowing = nil
			p.FollowActionable = false
			p.FollowButton = FollowIdle
		} else {
			_, following := viewer.Following[p.Post.AuthorID]
			p.IsFollowing = boolPtr(following)
			p.FollowActionable = true
			p.FollowButton = followButton(following)
		}

		out[i] = p
	}
	return out
}

// PostIDs and AuthorIDs list the identifiers a batch needs viewer state for.
func PostIDs(posts []PostView) []int64 {
	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.Post.ID)
	}
	return ids
}

func AuthorIDs(posts []PostView) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(posts))
	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		if _, ok := seen[p.Post.AuthorID]; ok {
			continue
		}
		seen[p.Post.AuthorID] = struct{}{}
		ids = append(ids, p.Post.AuthorID)
	}
	return ids
}

func boolPtr(b bool) *bool {
	return &b
}
