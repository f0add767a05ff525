package feed

// EagerCommentPosts is how many posts at the top of a batch load their
// comments without waiting to become visible.
const EagerCommentPosts = 2

// LazyLoader decides when a post's comments are fetched. Every post in a
// batch loads its comments at most once.
type LazyLoader struct {
	batch  uint64
	known  map[int64]struct{}
	loaded map[int64]struct{}
}

func NewLazyLoader() *LazyLoader {
	return &LazyLoader{
		known:  make(map[int64]struct{}),
		loaded: make(map[int64]struct{}),
	}
}

// Reset starts tracking a new batch and returns the posts to load eagerly.
// Those posts are already marked as loaded.
func (l *LazyLoader) Reset(batch uint64, postIDs []int64) []int64 {
	l.batch = batch
	l.known = make(map[int64]struct{}, len(postIDs))
	l.loaded = make(map[int64]struct{}, len(postIDs))
	for _, id := range postIDs {
		l.known[id] = struct{}{}
	}

	n := min(EagerCommentPosts, len(postIDs))
	eager := make([]int64, 0, n)
	for _, id := range postIDs[:n] {
		l.loaded[id] = struct{}{}
		eager = append(eager, id)
	}
	return eager
}

func (l *LazyLoader) Batch() uint64 {
	return l.batch
}

// Visible marks a post as seen and reports whether its comments should be
// fetched now.
func (l *LazyLoader) Visible(postID int64) bool {
	if _, ok := l.known[postID]; !ok {
		return false
	}
	if _, ok := l.loaded[postID]; ok {
		return false
	}
	l.loaded[postID] = struct{}{}
	return true
}

// Forget lets a post load again, used when a fetch for it failed.
func (l *LazyLoader) Forget(postID int64) {
	delete(l.loaded, postID)
}
