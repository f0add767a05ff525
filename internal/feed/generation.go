package feed

import "sync/atomic"

// Generation tags successive fetches so results of a superseded fetch can be
// recognised and dropped.
type Generation struct {
	current atomic.Uint64
}

// Next starts a new generation and returns its tag.
func (g *Generation) Next() uint64 {
	return g.current.Add(1)
}

func (g *Generation) Current() uint64 {
	return g.current.Load()
}

func (g *Generation) IsCurrent(tag uint64) bool {
	return tag == g.current.Load()
}
