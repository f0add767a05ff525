package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLazyLoader_EagerThenVisibleOnce(t *testing.T) {
	l := NewLazyLoader()

	eager := l.Reset(1, []int64{10, 20, 30, 40})

	assert.Equal(t, []int64{10, 20}, eager)
	assert.False(t, l.Visible(10), "eager posts are already loaded")
	assert.True(t, l.Visible(30))
	assert.False(t, l.Visible(30))
	assert.False(t, l.Visible(99), "unknown posts never load")
}

func TestLazyLoader_ResetStartsOver(t *testing.T) {
	l := NewLazyLoader()
	l.Reset(1, []int64{1, 2, 3})
	assert.True(t, l.Visible(3))

	eager := l.Reset(2, []int64{3})

	assert.Equal(t, []int64{3}, eager)
	assert.Equal(t, uint64(2), l.Batch())
	assert.False(t, l.Visible(1))
}

func TestLazyLoader_Forget(t *testing.T) {
	l := NewLazyLoader()
	l.Reset(1, []int64{1, 2, 3})
	assert.True(t, l.Visible(3))

	l.Forget(3)

	assert.True(t, l.Visible(3))
}

func TestGeneration(t *testing.T) {
	var g Generation

	first := g.Next()
	second := g.Next()

	assert.False(t, g.IsCurrent(first))
	assert.True(t, g.IsCurrent(second))
	assert.Equal(t, second, g.Current())
}
