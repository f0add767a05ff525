package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeStarRating_Thresholds(t *testing.T) {
	cases := []struct {
		likes int64
		stars int
		label string
	}{
		{0, 0, "New"},
		{9, 0, "New"},
		{10, 1, "Rising"},
		{24, 1, "Rising"},
		{25, 2, "Popular"},
		{50, 3, "Trending"},
		{99, 3, "Trending"},
		{100, 4, "Hot"},
		{250, MaxStars, "Legendary"},
		{100000, MaxStars, "Legendary"},
	}
	for _, tc := range cases {
		r := ComputeStarRating(tc.likes)
		assert.Equal(t, tc.stars, r.Stars, "likes=%d", tc.likes)
		assert.Equal(t, tc.label, r.Label, "likes=%d", tc.likes)
	}
}

func TestComputeStarRating_Monotonic(t *testing.T) {
	prev := ComputeStarRating(0).Stars
	for likes := int64(1); likes <= 400; likes++ {
		stars := ComputeStarRating(likes).Stars
		assert.GreaterOrEqual(t, stars, prev, "likes=%d", likes)
		assert.LessOrEqual(t, stars, MaxStars)
		prev = stars
	}
}

func TestMilestone_FlagsEachCrossingOnce(t *testing.T) {
	crossings := 0
	for likes := int64(0); likes < 400; likes++ {
		if _, ok := Milestone(likes, likes+1); ok {
			crossings++
		}
	}
	assert.Equal(t, MaxStars, crossings)
}

func TestMilestone_OnlyOnNewLike(t *testing.T) {
	r, ok := Milestone(9, 10)
	assert.True(t, ok)
	assert.Equal(t, 1, r.Stars)

	_, ok = Milestone(10, 9)
	assert.False(t, ok, "unlike is never a milestone")

	_, ok = Milestone(10, 10)
	assert.False(t, ok, "unchanged count is never a milestone")

	_, ok = Milestone(10, 11)
	assert.False(t, ok)

	_, ok = Milestone(8, 10)
	assert.False(t, ok, "jumps are not a single new like")
}
