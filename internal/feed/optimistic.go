package feed

import "github.com/google/uuid"

// LikeResult is the outcome of the external toggle-like call.
type LikeResult struct {
	Success bool `json:"success"`
	Liked   bool `json:"liked"`
}

// FollowResult is the outcome of the external toggle-follow call.
type FollowResult struct {
	Success   bool `json:"success"`
	Following bool `json:"following"`
}

// ApplyOptimisticLike applies a toggle-like result to a post view. A failed
// result returns the post untouched together with ErrLikeFailed.
func ApplyOptimisticLike(post PostView, res LikeResult) (PostView, error) {
	if !res.Success {
		return post, ErrLikeFailed
	}

	wasLiked := post.IsLiked != nil && *post.IsLiked
	switch {
	case res.Liked && !wasLiked:
		post.Post.LikesCount++
	case !res.Liked && wasLiked:
		if post.Post.LikesCount > 0 {
			post.Post.LikesCount--
		}
	}

	post.IsLiked = boolPtr(res.Liked)
	post.Rating = ComputeStarRating(post.Post.LikesCount)
	return post, nil
}

// ApplyOptimisticFollow applies a toggle-follow result to every post by
// authorID. The viewer's own posts never carry follow state and are skipped.
// On failure the input is returned as is with ErrFollowFailed.
func ApplyOptimisticFollow(posts []PostView, authorID uuid.UUID, res FollowResult) ([]PostView, error) {
	if !res.Success {
		return posts, ErrFollowFailed
	}

	out := make([]PostView, len(posts))
	for i, p := range posts {
		if p.Post.AuthorID == authorID && p.FollowActionable {
			p.IsFollowing = boolPtr(res.Following)
			p.FollowButton = followButton(res.Following)
		}
		out[i] = p
	}
	return out, nil
}
