package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/UniPortal/feed-service/internal/feed"
	"github.com/UniPortal/feed-service/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultBatchSize = 20

var (
	ErrPostNotLoaded        = errors.New("post is not loaded")
	ErrCommentIsEmpty       = errors.New("comment is empty")
	ErrPostIsEmpty          = errors.New("post must have text or an image")
	ErrDepartmentIsRequired = errors.New("department is required")
	ErrCannotFollowYourself = errors.New("you cannot follow yourself")
	ErrInvalidFilter        = errors.New("invalid feed filter")
)

// App drives a State against a Backend.
type App struct {
	logger    *zap.Logger
	backend   Backend
	batchSize int
}

func New(logger *zap.Logger, backend Backend, batchSize int) *App {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &App{
		logger:    logger,
		backend:   backend,
		batchSize: batchSize,
	}
}

// =============================================================================
// Session
// =============================================================================

func (a *App) SignIn(ctx context.Context, s *State, identifier string, secret string) error {
	res, err := a.backend.Authenticate(ctx, identifier, secret)
	if err != nil {
		a.logger.Sugar().Errorf("failed to authenticate: %s", err.Error())
		return err
	}
	if !res.Success {
		if res.Error != "" {
			return fmt.Errorf("%w: %s", ErrUnauthenticated, res.Error)
		}
		return ErrUnauthenticated
	}

	return a.RestoreSession(ctx, s)
}

// RestoreSession loads the current session into s, or returns
// ErrUnauthenticated when there is none.
func (a *App) RestoreSession(ctx context.Context, s *State) error {
	session, err := a.backend.CurrentSession(ctx)
	if err != nil {
		return a.readFailed(s, "session", err)
	}
	if session == nil {
		s.Session = nil
		return ErrUnauthenticated
	}

	s.Session = session
	return nil
}

func (a *App) SignOut(ctx context.Context, s *State) error {
	if err := a.backend.EndSession(ctx); err != nil && !errors.Is(err, ErrUnauthenticated) {
		a.logger.Sugar().Errorf("failed to end session: %s", err.Error())
		return err
	}

	s.Session = nil
	s.Posts = nil
	s.Loading = false
	s.LoadErr = nil
	s.generation.Next()
	s.lazy = feed.NewLazyLoader()
	return nil
}

// =============================================================================
// Loading
// =============================================================================

// Pending is a reload that has been started but whose result is not applied
// yet.
type Pending struct {
	Generation uint64
	Filter     model.FeedOrder
	Department string
	ViewerID   uuid.UUID
}

// Batch is the fetched result of a Pending reload.
type Batch struct {
	Pending
	Posts []feed.PostView
	Err   error
}

// Reload fetches a new batch for filter and department and applies it.
func (a *App) Reload(ctx context.Context, s *State, filter model.FeedOrder, department string) error {
	pending, err := a.BeginReload(s, filter, department)
	if err != nil {
		return err
	}
	_, err = a.CompleteReload(ctx, s, a.Fetch(ctx, pending))
	return err
}

// BeginReload switches the filter and starts a new generation. Results of any
// earlier generation are discarded once this one begins.
func (a *App) BeginReload(s *State, filter model.FeedOrder, department string) (Pending, error) {
	if filter == "" {
		filter = model.FeedRecent
	}
	if !filter.Valid() {
		return Pending{}, ErrInvalidFilter
	}

	s.Filter = filter
	s.Department = strings.TrimSpace(department)
	s.Loading = true

	p := Pending{
		Generation: s.generation.Next(),
		Filter:     s.Filter,
		Department: s.Department,
	}
	if s.Session != nil {
		p.ViewerID = s.Session.UserID
	}
	return p, nil
}

// Fetch runs the network part of a reload. It does not touch State, so it may
// run on any goroutine.
func (a *App) Fetch(ctx context.Context, p Pending) Batch {
	batch := Batch{Pending: p}

	posts, err := a.backend.ListPosts(ctx, p.Filter, p.Department, a.batchSize)
	if err != nil {
		batch.Err = err
		return batch
	}
	views := feed.NewPostViews(posts)

	if p.ViewerID == uuid.Nil {
		batch.Posts = views
		return batch
	}

	var (
		liked    []int64
		followed []uuid.UUID
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		liked, err = a.backend.LikedPostIDs(gctx, feed.PostIDs(views))
		return err
	})
	g.Go(func() error {
		var err error
		followed, err = a.backend.FollowedAuthorIDs(gctx, feed.AuthorIDs(views))
		return err
	})
	if err := g.Wait(); err != nil {
		batch.Err = err
		return batch
	}

	batch.Posts = feed.AugmentViewerState(views, feed.NewViewerContext(p.ViewerID, liked, followed))
	return batch
}

// CompleteReload applies b to s unless a newer reload has begun since b was
// started. It reports whether b was applied.
func (a *App) CompleteReload(ctx context.Context, s *State, b Batch) (bool, error) {
	if !s.generation.IsCurrent(b.Generation) {
		a.logger.Sugar().Debugf("dropping stale feed batch(%d), current is %d", b.Generation, s.generation.Current())
		return false, nil
	}

	s.Loading = false
	if b.Err != nil {
		s.Posts = nil
		return true, a.readFailed(s, "posts", b.Err)
	}

	s.LoadErr = nil
	s.Posts = b.Posts
	eager := s.lazy.Reset(b.Generation, feed.PostIDs(s.Posts))
	a.loadComments(ctx, s, eager)

	return true, nil
}

// PostVisible loads comments of a post the first time it scrolls into view in
// the current batch.
func (a *App) PostVisible(ctx context.Context, s *State, postID int64) {
	if s.lazy.Batch() != s.generation.Current() {
		return
	}
	if !s.lazy.Visible(postID) {
		return
	}
	a.loadComments(ctx, s, []int64{postID})
}

// loadComments fetches comments for postIDs concurrently and attaches the
// trees. A failed post is left unloaded so it can be retried.
func (a *App) loadComments(ctx context.Context, s *State, postIDs []int64) {
	if len(postIDs) == 0 {
		return
	}
	generation := s.generation.Current()

	results := make([][]model.FullComment, len(postIDs))
	errs := make([]error, len(postIDs))
	var g errgroup.Group
	for i, postID := range postIDs {
		g.Go(func() error {
			results[i], errs[i] = a.backend.ListComments(ctx, postID)
			return nil
		})
	}
	_ = g.Wait()

	if !s.generation.IsCurrent(generation) {
		return
	}

	for i, postID := range postIDs {
		idx := s.indexOf(postID)
		if idx < 0 {
			continue
		}
		if errs[i] != nil {
			s.lazy.Forget(postID)
			if errors.Is(errs[i], ErrUnauthenticated) {
				s.Session = nil
			}
			a.logger.Sugar().Errorf("failed to load post(%d) comments: %s", postID, errs[i].Error())
			s.notify(NoticeError, "Couldn't load comments. Try again.")
			continue
		}
		s.Posts[idx].Comments = feed.BuildCommentTree(results[i])
		s.Posts[idx].CommentsLoaded = true
	}
}

func (a *App) readFailed(s *State, what string, err error) error {
	if errors.Is(err, ErrUnauthenticated) {
		s.Session = nil
		return ErrUnauthenticated
	}
	a.logger.Sugar().Errorf("failed to load %s: %s", what, err.Error())
	s.LoadErr = err
	return err
}

// =============================================================================
// Interactions
// =============================================================================

// ToggleLike toggles the viewer's like on a loaded post. A failed toggle
// leaves the post as it was and queues an error notice.
func (a *App) ToggleLike(ctx context.Context, s *State, postID int64) error {
	if s.Session == nil {
		return ErrUnauthenticated
	}
	idx := s.indexOf(postID)
	if idx < 0 {
		return ErrPostNotLoaded
	}

	res, err := a.backend.ToggleLike(ctx, postID)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			s.Session = nil
			return err
		}
		a.logger.Sugar().Errorf("failed to toggle like on post(%d): %s", postID, err.Error())
		res = feed.LikeResult{Success: false}
	}

	before := s.Posts[idx]
	after, err := feed.ApplyOptimisticLike(before, res)
	if err != nil {
		s.notify(NoticeError, "Couldn't update like. Try again.")
		return err
	}
	s.Posts[idx] = after

	if rating, ok := feed.Milestone(before.Post.LikesCount, after.Post.LikesCount); ok {
		s.notify(NoticeMilestone, fmt.Sprintf("This post is now %s with %d likes!", rating.Label, after.Post.LikesCount))
	}

	return nil
}

// ToggleFollow toggles following authorID and updates every loaded post by
// that author.
func (a *App) ToggleFollow(ctx context.Context, s *State, authorID uuid.UUID) error {
	if s.Session == nil {
		return ErrUnauthenticated
	}
	if authorID == s.Session.UserID {
		return ErrCannotFollowYourself
	}

	res, err := a.backend.ToggleFollow(ctx, authorID)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			s.Session = nil
			return err
		}
		a.logger.Sugar().Errorf("failed to toggle follow of user(%s): %s", authorID.String(), err.Error())
		res = feed.FollowResult{Success: false}
	}

	posts, err := feed.ApplyOptimisticFollow(s.Posts, authorID, res)
	if err != nil {
		s.notify(NoticeError, "Couldn't update follow. Try again.")
		return err
	}
	s.Posts = posts

	return nil
}

// AddComment posts a comment or a reply. On success the post's comments are
// refetched.
func (a *App) AddComment(ctx context.Context, s *State, postID int64, text string, parentID *int64) error {
	if s.Session == nil {
		return ErrUnauthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrCommentIsEmpty
	}
	if s.indexOf(postID) < 0 {
		return ErrPostNotLoaded
	}

	res, err := a.backend.AddComment(ctx, postID, text, parentID)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			s.Session = nil
			return err
		}
		a.logger.Sugar().Errorf("failed to add comment to post(%d): %s", postID, err.Error())
		s.notify(NoticeError, "Couldn't post comment. Try again.")
		return err
	}
	if !res.Success {
		s.notify(NoticeError, "Couldn't post comment. Try again.")
		return fmt.Errorf("add comment: %s", res.Error)
	}

	if idx := s.indexOf(postID); idx >= 0 {
		s.Posts[idx].Post.CommentsCount++
	}
	a.loadComments(ctx, s, []int64{postID})

	return nil
}

// CreatePost publishes a draft and reloads the current feed.
func (a *App) CreatePost(ctx context.Context, s *State, post NewPost) error {
	if s.Session == nil {
		return ErrUnauthenticated
	}
	post.Text = strings.TrimSpace(post.Text)
	post.Department = strings.TrimSpace(post.Department)
	if post.Text == "" && len(post.Image) == 0 {
		return ErrPostIsEmpty
	}
	if post.Department == "" {
		return ErrDepartmentIsRequired
	}

	res, err := a.backend.CreatePost(ctx, post)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			s.Session = nil
			return err
		}
		a.logger.Sugar().Errorf("failed to create post: %s", err.Error())
		s.notify(NoticeError, "Couldn't publish post. Try again.")
		return err
	}
	if !res.Success {
		s.notify(NoticeError, "Couldn't publish post. Try again.")
		return fmt.Errorf("create post: %s", res.Error)
	}

	s.notify(NoticeInfo, "Post published.")
	return a.Reload(ctx, s, s.Filter, s.Department)
}

// ToggleDescription expands or collapses a post's text.
func (a *App) ToggleDescription(s *State, postID int64) error {
	idx := s.indexOf(postID)
	if idx < 0 {
		return ErrPostNotLoaded
	}
	s.Posts[idx].Description = s.Posts[idx].Description.Toggle()
	return nil
}
