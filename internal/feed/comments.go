package feed

import (
	"sort"

	"github.com/UniPortal/feed-service/internal/model"
)

type CommentView struct {
	Comment model.Comment `json:"comment"`
	Author  Author        `json:"author"`
}

// CommentNode is a top-level comment with its direct replies.
type CommentNode struct {
	CommentView
	Replies []CommentView `json:"replies"`
}

// BuildCommentTree assembles a two-level tree from a flat comment list.
// Top-level comments and the replies under each are ordered newest first,
// ties keeping input order. A reply is attached only to a top-level parent;
// replies to replies and replies to unknown comments are dropped.
func BuildCommentTree(comments []model.FullComment) []CommentNode {
	top := make([]CommentNode, 0, len(comments))
	replies := make(map[int64][]CommentView)
	seen := make(map[int64]struct{})

	for _, c := range comments {
		view := CommentView{
			Comment: c.Comment,
			Author:  NewAuthor(c.Comment.AuthorID, c.Author),
		}
		if c.Comment.ParentID == nil {
			if _, dup := seen[c.Comment.ID]; dup {
				continue
			}
			seen[c.Comment.ID] = struct{}{}
			top = append(top, CommentNode{CommentView: view})
			continue
		}
		parentID := *c.Comment.ParentID
		replies[parentID] = append(replies[parentID], view)
	}

	sort.SliceStable(top, func(i, j int) bool {
		return top[i].Comment.CreatedAt.After(top[j].Comment.CreatedAt)
	})

	for i := range top {
		children := replies[top[i].Comment.ID]
		if children == nil {
			children = []CommentView{}
		}
		sort.SliceStable(children, func(a, b int) bool {
			return children[a].Comment.CreatedAt.After(children[b].Comment.CreatedAt)
		})
		top[i].Replies = children
	}

	return top
}
