package app

import (
	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/UniPortal/feed-service/internal/model"
)

type NoticeKind string

const (
	NoticeError     NoticeKind = "error"
	NoticeMilestone NoticeKind = "milestone"
	NoticeInfo      NoticeKind = "info"
)

// Notice is a transient message for the user.
type Notice struct {
	Kind    NoticeKind
	Message string
}

// State is everything the feed screen shows. It is owned by one goroutine;
// App methods take it explicitly and mutate it in place.
type State struct {
	Session    *Session
	Filter     model.FeedOrder
	Department string
	Posts      []feed.PostView
	Loading    bool
	// LoadErr is set when the last reload failed. It clears on the next
	// successful reload.
	LoadErr error

	generation feed.Generation
	lazy       *feed.LazyLoader
	notices    []Notice
}

func NewState() *State {
	return &State{
		Filter: model.FeedRecent,
		lazy:   feed.NewLazyLoader(),
	}
}

// Generation is the tag of the most recent reload.
func (s *State) Generation() uint64 {
	return s.generation.Current()
}

// Notices returns and clears pending notices.
func (s *State) Notices() []Notice {
	out := s.notices
	s.notices = nil
	return out
}

func (s *State) notify(kind NoticeKind, message string) {
	s.notices = append(s.notices, Notice{Kind: kind, Message: message})
}

func (s *State) indexOf(postID int64) int {
	for i := range s.Posts {
		if s.Posts[i].Post.ID == postID {
			return i
		}
	}
	return -1
}

// Post returns the loaded view of postID.
func (s *State) Post(postID int64) (feed.PostView, bool) {
	i := s.indexOf(postID)
	if i < 0 {
		return feed.PostView{}, false
	}
	return s.Posts[i], true
}
